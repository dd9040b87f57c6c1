package mediafilter

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/pion/mediafilter/pkg/export"
	"github.com/pion/mediafilter/pkg/filter"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
)

// ErrNoFrame is returned when a frame is requested before the first cycle
// completed.
var ErrNoFrame = errors.New("no frame has been displayed yet")

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSelector makes the session apply the filter selected on s.
func WithSelector(s *filter.Selector) SessionOption {
	return func(sess *Session) {
		sess.selector = s
	}
}

// WithTransformers runs every source frame through transformFuncs before
// the filter, e.g. video.Throttle or video.DetectChanges.
func WithTransformers(transformFuncs ...video.TransformFunc) SessionOption {
	return func(sess *Session) {
		sess.transforms = append(sess.transforms, transformFuncs...)
	}
}

// WithPreviewSize sets the size Preview scales the displayed frame to. A
// non-positive width or height keeps the aspect ratio; both zero disables
// scaling.
func WithPreviewSize(width, height int, scaler video.Scaler) SessionOption {
	return func(sess *Session) {
		sess.previewWidth = width
		sess.previewHeight = height
		sess.scaler = scaler
	}
}

// WithExportOptions sets the encoder options Save uses.
func WithExportOptions(opts ...export.Option) SessionOption {
	return func(sess *Session) {
		sess.exportOpts = append(sess.exportOpts, opts...)
	}
}

// Session is the per-cycle loop: read a frame, run the selected filter and
// keep the result as the displayed frame. Next and Run must be called from
// one goroutine at a time; Select, Snapshot, Preview and Save may be called
// from anywhere.
type Session struct {
	source     video.Reader
	selector   *filter.Selector
	transforms []video.TransformFunc
	reader     video.Reader
	display    *video.FrameBuffer
	exportOpts []export.Option

	previewWidth, previewHeight int
	scaler                      video.Scaler

	mu     sync.Mutex
	frames atomic.Uint64

	closeOnce sync.Once
	closeErr  error
}

// NewSession creates a Session reading from src. If src implements
// io.Closer, Close closes it.
func NewSession(src video.Reader, opts ...SessionOption) *Session {
	s := &Session{
		source:  src,
		display: video.NewFrameBuffer(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.selector == nil {
		s.selector = filter.NewSelector()
	}

	transforms := make([]video.TransformFunc, 0, len(s.transforms)+1)
	transforms = append(transforms, s.transforms...)
	transforms = append(transforms, video.Filter(s.selector))
	s.reader = video.Merge(transforms...)(src)
	return s
}

// Next runs one cycle and returns the filtered frame. The frame stays valid
// until the next call to Next.
func (s *Session) Next() (*frame.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, release, err := s.reader.Read()
	if err != nil {
		return nil, err
	}
	defer release()

	f, ok := img.(*frame.Frame)
	if !ok {
		f = frame.FromImage(img)
	}
	s.display.StoreCopy(f)
	s.frames.Add(1)
	return f, nil
}

// Run runs cycles until ctx is done, the source ends or n frames were
// processed. n <= 0 runs without a limit. onFrame may be nil; an error it
// returns stops Run. The end of the source is not an error.
func (s *Session) Run(ctx context.Context, n int, onFrame func(*frame.Frame) error) error {
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if onFrame != nil {
			if err := onFrame(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Select switches the filter used from the next cycle on.
func (s *Session) Select(p filter.Params) {
	s.selector.Select(p)
}

// Current returns the active filter.
func (s *Session) Current() filter.Params {
	return s.selector.Current()
}

// Frames returns the number of completed cycles.
func (s *Session) Frames() uint64 {
	return s.frames.Load()
}

// Snapshot returns a copy of the displayed frame.
func (s *Session) Snapshot() (*frame.Frame, error) {
	f := s.display.Load()
	if f == nil {
		return nil, ErrNoFrame
	}
	return f, nil
}

// Preview returns a copy of the displayed frame scaled to the preview size.
func (s *Session) Preview() (*frame.Frame, error) {
	f, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if s.previewWidth == 0 && s.previewHeight == 0 {
		return f, nil
	}

	var dst frame.Frame
	if err := video.ScaleInto(&dst, f, s.previewWidth, s.previewHeight, s.scaler); err != nil {
		return nil, err
	}
	return &dst, nil
}

// Save writes the displayed frame to path and returns the path written. The
// encoding follows the extension; a path without one gets ".jpg".
func (s *Session) Save(path string) (string, error) {
	f, err := s.Snapshot()
	if err != nil {
		return "", err
	}
	return export.Save(path, f, s.exportOpts...)
}

// Close closes the source when it is an io.Closer.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if c, ok := s.source.(io.Closer); ok {
			s.closeErr = c.Close()
		}
	})
	return s.closeErr
}
