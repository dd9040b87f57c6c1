package video

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/pion/mediafilter/pkg/frame"
	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

var scalers = map[string]Scaler{
	"nearest":         ScalerNearestNeighbor,
	"approx-bilinear": ScalerApproxBiLinear,
	"bilinear":        ScalerBiLinear,
	"catmull-rom":     ScalerCatmullRom,
}

// ParseScaler returns the scaler named name: nearest, approx-bilinear,
// bilinear or catmull-rom. An empty name selects ScalerNearestNeighbor.
func ParseScaler(name string) (Scaler, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ScalerNearestNeighbor, nil
	}
	if s, ok := scalers[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("scaling: unknown scaler %q", name)
}

var errInvalidScaleSize = errors.New("scaling: width and height are both non-positive")

// ScaledSize returns the output size for an image of size src scaled to
// width x height. A non-positive width or height keeps the aspect ratio of
// src.
func ScaledSize(src image.Rectangle, width, height int) (int, int) {
	switch {
	case src.Empty():
		return 0, 0
	case width > 0 && height > 0:
		return width, height
	case height <= 0 && width > 0:
		return width, src.Dy() * width / src.Dx()
	case width <= 0 && height > 0:
		return src.Dx() * height / src.Dy(), height
	}
	return 0, 0
}

// ScaleInto scales src to width x height and stores the result in dst,
// reusing dst.Pix when possible. Setting scaler=nil uses
// ScalerNearestNeighbor.
func ScaleInto(dst *frame.Frame, src image.Image, width, height int, scaler Scaler) error {
	if width <= 0 && height <= 0 {
		return errInvalidScaleSize
	}
	if scaler == nil {
		scaler = ScalerNearestNeighbor
	}

	w, h := ScaledSize(src.Bounds(), width, height)
	size := w * h * frame.BytesPerPixel
	if cap(dst.Pix) < size {
		dst.Pix = make([]uint8, size)
	}
	dst.Pix = dst.Pix[:size]
	dst.Width, dst.Height = w, h
	if size == 0 {
		return nil
	}

	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return nil
}

// Scale returns video scaling transform producing *frame.Frame.
// Setting scaler=nil to use default scaler. (ScalerNearestNeighbor)
// Negative width or height value will keep the aspect ratio of incoming image.
func Scale(width, height int, scaler Scaler) TransformFunc {
	return func(r Reader) Reader {
		var dst frame.Frame
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := read(r)
			if err != nil {
				return nil, nopRelease, err
			}
			defer release()

			if err := ScaleInto(&dst, img, width, height, scaler); err != nil {
				return nil, nopRelease, err
			}
			return &dst, nopRelease, nil
		})
	}
}
