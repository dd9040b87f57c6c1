// Package videotest provides a synthetic video driver: color bars, a
// skin-tone swatch, a gray gradation and a noise area. Importing the package
// registers it with the driver manager under the label "VideoTest".
package videotest

import (
	"context"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/pion/mediafilter/pkg/driver"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
)

// Label is the label the driver is registered with.
const Label = "VideoTest"

func init() {
	driver.GetManager().Register(
		newVideoTest(),
		driver.Info{Label: Label, DeviceType: driver.TestPattern, Priority: driver.PriorityLow},
	)
}

// bars holds the top row colors, left to right. The last one is a skin tone.
var bars = [][3]uint8{
	{191, 191, 191},
	{191, 191, 0},
	{0, 191, 191},
	{0, 191, 0},
	{191, 0, 191},
	{191, 0, 0},
	{220, 170, 140},
}

type dummy struct {
	closed <-chan struct{}
	cancel func()
	tick   *time.Ticker
}

func newVideoTest() *dummy {
	return &dummy{}
}

func (d *dummy) Open() error {
	ctx, cancel := context.WithCancel(context.Background())
	d.closed = ctx.Done()
	d.cancel = cancel
	return nil
}

func (d *dummy) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	if d.tick != nil {
		d.tick.Stop()
	}
	return nil
}

// Pattern draws the test pattern into a new width x height frame. The noise
// area is left black.
func Pattern(width, height int) *frame.Frame {
	f := frame.New(width, height)
	hColorBarEnd := height * 3 / 4
	wGradationEnd := width * 5 / 7
	for y := 0; y < hColorBarEnd; y++ {
		for x := 0; x < width; x++ {
			c := bars[x*len(bars)/width]
			f.SetRGB(x, y, c[0], c[1], c[2])
		}
	}
	for y := hColorBarEnd; y < height; y++ {
		for x := 0; x < wGradationEnd; x++ {
			v := uint8(x * 255 / wGradationEnd)
			f.SetRGB(x, y, v, v, v)
		}
	}
	return f
}

func (d *dummy) VideoRecord(p prop.Media) (video.Reader, error) {
	if p.FrameRate == 0 {
		p.FrameRate = 30
	}

	base := Pattern(p.Width, p.Height)
	out := base.Clone()
	hColorBarEnd := p.Height * 3 / 4
	wGradationEnd := p.Width * 5 / 7
	random := rand.New(rand.NewSource(0))

	tick := time.NewTicker(time.Duration(float32(time.Second) / p.FrameRate))
	d.tick = tick
	closed := d.closed

	r := video.ReaderFunc(func() (image.Image, func(), error) {
		select {
		case <-closed:
			return nil, func() {}, io.EOF
		default:
		}

		select {
		case <-closed:
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		copy(out.Pix, base.Pix)
		for y := hColorBarEnd; y < p.Height; y++ {
			for x := wGradationEnd; x < p.Width; x++ {
				// Noise
				v := uint8(random.Int31n(2) * 255)
				out.SetRGB(x, y, v, v, v)
			}
		}
		return out, func() {}, nil
	})

	return r, nil
}

func (d *dummy) Properties() []prop.Media {
	return []prop.Media{
		{
			Video: prop.Video{
				Width:       640,
				Height:      480,
				FrameFormat: frame.FormatRGB24,
			},
		},
	}
}
