package video

import (
	"image"

	"github.com/pion/mediafilter/pkg/frame"
)

// FrameFilter transforms a Frame it takes ownership of. The returned Frame
// may be f itself.
type FrameFilter interface {
	Apply(f *frame.Frame) (*frame.Frame, error)
}

// FrameFilterFunc is a proxy type to make easier for users to implement FrameFilter
type FrameFilterFunc func(f *frame.Frame) (*frame.Frame, error)

func (fn FrameFilterFunc) Apply(f *frame.Frame) (*frame.Frame, error) {
	return fn(f)
}

// Filter returns a transform running every image through ff. Each image is
// first copied into a Frame owned by the transform, so the upstream image is
// released before ff runs. The output stays valid until the next Read.
func Filter(ff FrameFilter) TransformFunc {
	return func(r Reader) Reader {
		var owned frame.Frame
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := read(r)
			if err != nil {
				return nil, nopRelease, err
			}

			frame.Convert(&owned, img)
			release()

			out, err := ff.Apply(&owned)
			if err != nil {
				return nil, nopRelease, err
			}
			return out, nopRelease, nil
		})
	}
}
