package video

import (
	"image"
)

// Reader produces one image per Read. release hands the image back to its
// producer; the image must not be used after release is called.
type Reader interface {
	Read() (img image.Image, release func(), err error)
}

type ReaderFunc func() (img image.Image, release func(), err error)

func (rf ReaderFunc) Read() (img image.Image, release func(), err error) {
	img, release, err = rf()
	return
}

// TransformFunc produces a new Reader that will produces a transformed video
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}

func nopRelease() {}

// read calls r.Read and makes sure release is never nil.
func read(r Reader) (image.Image, func(), error) {
	img, release, err := r.Read()
	if release == nil {
		release = nopRelease
	}
	return img, release, err
}
