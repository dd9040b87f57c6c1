//go:build linux

package camera

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/blackjack/webcam"
	"github.com/pion/mediafilter/internal/logging"
	"github.com/pion/mediafilter/pkg/driver"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
)

const (
	maxEmptyFrameCount = 5
	// seconds
	frameTimeout = 5
)

var (
	errReadTimeout = errors.New("read timeout")
	errEmptyFrame  = errors.New("empty frame")

	logger = logging.NewLogger("mediafilter/driver/camera")
)

// fourcc builds a V4L2 pixel format code.
func fourcc(a, b, c, d byte) webcam.PixelFormat {
	return webcam.PixelFormat(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// V4L2 pixel formats, see linux/videodev2.h
var (
	pixFmtYUYV  = fourcc('Y', 'U', 'Y', 'V')
	pixFmtUYVY  = fourcc('U', 'Y', 'V', 'Y')
	pixFmtNV12  = fourcc('N', 'V', '1', '2')
	pixFmtNV21  = fourcc('N', 'V', '2', '1')
	pixFmtI420  = fourcc('Y', 'U', '1', '2')
	pixFmtRGB24 = fourcc('R', 'G', 'B', '3')
	pixFmtMJPEG = fourcc('M', 'J', 'P', 'G')
)

// Camera implementation using v4l2
// Reference: https://linuxtv.org/downloads/v4l-dvb-apis/uapi/v4l/videodev.html#videodev
type camera struct {
	path            string
	cam             *webcam.Webcam
	formats         map[webcam.PixelFormat]frame.Format
	reversedFormats map[frame.Format]webcam.PixelFormat
	started         bool
	mutex           sync.Mutex
	cancel          func()
}

func init() {
	discovered := make(map[string]struct{})
	discover(discovered, "/dev/v4l/by-path/*")
	discover(discovered, "/dev/video*")
}

func discover(discovered map[string]struct{}, pattern string) {
	devices, err := filepath.Glob(pattern)
	if err != nil {
		// No v4l device.
		return
	}
	for _, device := range devices {
		label := filepath.Base(device)
		reallink, err := os.Readlink(device)
		if err != nil {
			reallink = label
		} else {
			reallink = filepath.Base(reallink)
		}
		if _, ok := discovered[reallink]; ok {
			continue
		}

		discovered[reallink] = struct{}{}
		cam := newCamera(device)
		priority := driver.PriorityNormal
		if reallink == "video0" {
			priority = driver.PriorityHigh
		}
		err = driver.GetManager().Register(cam, driver.Info{
			Label:      label + LabelSeparator + reallink,
			DeviceType: driver.Camera,
			Name:       device,
			Priority:   priority,
		})
		if err != nil {
			logger.Warnf("failed to register %s: %v", device, err)
		}
	}
}

func newCamera(path string) *camera {
	formats := map[webcam.PixelFormat]frame.Format{
		pixFmtYUYV:  frame.FormatYUYV,
		pixFmtUYVY:  frame.FormatUYVY,
		pixFmtNV12:  frame.FormatNV12,
		pixFmtNV21:  frame.FormatNV21,
		pixFmtI420:  frame.FormatI420,
		pixFmtRGB24: frame.FormatRGB24,
		pixFmtMJPEG: frame.FormatMJPEG,
	}

	reversedFormats := make(map[frame.Format]webcam.PixelFormat)
	for k, v := range formats {
		reversedFormats[v] = k
	}

	return &camera{
		path:            path,
		formats:         formats,
		reversedFormats: reversedFormats,
	}
}

func (c *camera) Open() error {
	cam, err := webcam.Open(c.path)
	if err != nil {
		return err
	}

	c.cam = cam
	logger.Debugf("opened %s", c.path)
	return nil
}

func (c *camera) Close() error {
	if c.cam == nil {
		return nil
	}

	if c.cancel != nil {
		// Let the reader knows that the caller has closed the camera
		c.cancel()
		// Wait until the reader unref the buffer
		c.mutex.Lock()
		defer c.mutex.Unlock()

		// Note: StopStreaming frees frame buffers even if they are still used in Go code.
		//       There is currently no convenient way to do this safely.
		//       So, consumer of this stream must close camera after unusing all images.
		c.cam.StopStreaming()
		c.cancel = nil
	}
	c.started = false
	err := c.cam.Close()
	c.cam = nil
	logger.Debugf("closed %s", c.path)
	return err
}

func (c *camera) VideoRecord(p prop.Media) (video.Reader, error) {
	decoder, err := frame.NewDecoder(p.FrameFormat)
	if err != nil {
		return nil, err
	}

	pf, ok := c.reversedFormats[p.FrameFormat]
	if !ok {
		return nil, errors.New("camera: unsupported frame format " + string(p.FrameFormat))
	}
	_, w, h, err := c.cam.SetImageFormat(pf, uint32(p.Width), uint32(p.Height))
	if err != nil {
		return nil, err
	}
	// The device may round the requested size.
	width, height := int(w), int(h)

	if err := c.cam.StartStreaming(); err != nil {
		return nil, err
	}
	c.started = true
	logger.Infof("streaming %s: %dx%d %s", c.path, width, height, p.FrameFormat)

	cam := c.cam

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	var buf []byte
	r := video.ReaderFunc(func() (img image.Image, release func(), err error) {
		// Lock to avoid accessing the buffer after StopStreaming()
		c.mutex.Lock()
		defer c.mutex.Unlock()

		// Wait until a frame is ready
		for i := 0; i < maxEmptyFrameCount; i++ {
			if ctx.Err() != nil {
				// Return EOF if the camera is already closed.
				return nil, func() {}, io.EOF
			}

			err := cam.WaitForFrame(frameTimeout)
			switch err.(type) {
			case nil:
			case *webcam.Timeout:
				return nil, func() {}, errReadTimeout
			default:
				// Camera has been stopped.
				return nil, func() {}, err
			}

			b, err := cam.ReadFrame()
			if err != nil {
				// Camera has been stopped.
				return nil, func() {}, err
			}

			// Frame is empty.
			// Retry reading and return errEmptyFrame if it exceeds maxEmptyFrameCount.
			if len(b) == 0 {
				continue
			}

			if len(b) > len(buf) {
				// Grow the intermediate buffer
				buf = make([]byte, len(b))
			}

			// move the memory from mmap to Go. This will guarantee that any data that's going out
			// from this reader will be Go safe. Otherwise, it's possible that outside of this reader
			// that this memory is still being used even after we close it.
			n := copy(buf, b)
			return decoder.Decode(buf[:n], width, height)
		}
		return nil, func() {}, errEmptyFrame
	})

	return r, nil
}

func (c *camera) Properties() []prop.Media {
	properties := make([]prop.Media, 0)
	for format := range c.cam.GetSupportedFormats() {
		frameFormat, ok := c.formats[format]
		if !ok {
			continue
		}
		for _, frameSize := range c.cam.GetSupportedFrameSizes(format) {
			properties = append(properties, prop.Media{
				Video: prop.Video{
					Width:       int(frameSize.MaxWidth),
					Height:      int(frameSize.MaxHeight),
					FrameFormat: frameFormat,
				},
			})
		}
	}
	return properties
}
