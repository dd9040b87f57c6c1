// Package screen provides a driver capturing the contents of a display.
// Importing the package registers one driver per active display; display 0
// is preferred.
package screen

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/kbinani/screenshot"
	"github.com/pion/mediafilter/pkg/driver"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
)

// capturer grabs one display.
type capturer interface {
	Bounds(displayIndex int) image.Rectangle
	Capture(displayIndex int) (*image.RGBA, error)
}

type systemCapturer struct{}

func (systemCapturer) Bounds(displayIndex int) image.Rectangle {
	return screenshot.GetDisplayBounds(displayIndex)
}

func (systemCapturer) Capture(displayIndex int) (*image.RGBA, error) {
	return screenshot.CaptureDisplay(displayIndex)
}

type screen struct {
	displayIndex int
	capturer     capturer
	mu           sync.Mutex
	doneCh       chan struct{}
}

func init() {
	activeDisplays := screenshot.NumActiveDisplays()
	for i := 0; i < activeDisplays; i++ {
		priority := driver.PriorityNormal
		if i == 0 {
			priority = driver.PriorityHigh
		}

		s := newScreen(i, systemCapturer{})
		driver.GetManager().Register(s, driver.Info{
			Label:      fmt.Sprint(i),
			DeviceType: driver.Screen,
			Priority:   priority,
		})
	}
}

func newScreen(displayIndex int, c capturer) *screen {
	return &screen{
		displayIndex: displayIndex,
		capturer:     c,
	}
}

func (s *screen) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doneCh = make(chan struct{})
	return nil
}

func (s *screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doneCh != nil {
		close(s.doneCh)
		s.doneCh = nil
	}
	return nil
}

func (s *screen) VideoRecord(selectedProp prop.Media) (video.Reader, error) {
	s.mu.Lock()
	doneCh := s.doneCh
	s.mu.Unlock()

	r := video.ReaderFunc(func() (img image.Image, release func(), err error) {
		select {
		case <-doneCh:
			return nil, func() {}, io.EOF
		default:
		}

		img, err = s.capturer.Capture(s.displayIndex)
		return img, func() {}, err
	})
	return r, nil
}

func (s *screen) Properties() []prop.Media {
	resolution := s.capturer.Bounds(s.displayIndex)
	supportedProp := prop.Media{
		Video: prop.Video{
			Width:       resolution.Dx(),
			Height:      resolution.Dy(),
			FrameFormat: frame.FormatRGBA,
		},
	}
	return []prop.Media{supportedProp}
}
