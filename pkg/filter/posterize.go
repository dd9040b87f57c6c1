package filter

import "github.com/pion/mediafilter/pkg/frame"

// Posterize quantizes every channel to multiples of 255/(levels-1) using
// integer division. levels < 2 leaves f untouched.
//
// Rounding of the step size means some level counts yield fewer distinct
// values than requested, e.g. levels=3 gives a step of 127 and outputs
// 0, 127 and 254.
func Posterize(f *frame.Frame, levels int) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if levels < 2 {
		return f, nil
	}

	factor := 255 / (levels - 1)
	if factor < 1 {
		// levels > 256, only reachable without Sanitize
		return f, nil
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = uint8(v / factor * factor)
	}
	for i, v := range f.Pix {
		f.Pix[i] = lut[v]
	}
	return f, nil
}
