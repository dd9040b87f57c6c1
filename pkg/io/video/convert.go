package video

import (
	"image"

	"github.com/pion/mediafilter/pkg/frame"
)

// ToFrame converts r to a new reader that will output images as
// *frame.Frame. The same Frame is reused by every Read and stays valid until
// the next one.
func ToFrame(r Reader) Reader {
	var dst frame.Frame
	return ReaderFunc(func() (image.Image, func(), error) {
		img, release, err := read(r)
		if err != nil {
			return nil, nopRelease, err
		}

		frame.Convert(&dst, img)
		release()
		return &dst, nopRelease, nil
	})
}
