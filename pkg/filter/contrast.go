package filter

import (
	"math"

	"github.com/pion/mediafilter/pkg/frame"
)

// Contrast maps every channel value v to alpha*v + beta, rounded to the
// nearest integer and saturated to [0, 255]. alpha > 1 increases contrast,
// beta > 0 brightens. Contrast(f, 1, 0) returns f unchanged.
func Contrast(f *frame.Frame, alpha float64, beta int) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if alpha == 1 && beta == 0 {
		return f, nil
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = saturate(alpha*float64(v) + float64(beta))
	}
	for i, v := range f.Pix {
		f.Pix[i] = lut[v]
	}
	return f, nil
}

// saturate rounds v and clamps it to the 8-bit channel range.
func saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}
