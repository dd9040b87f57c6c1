package filter

import (
	"errors"
	"fmt"

	"github.com/pion/mediafilter/pkg/frame"
)

// ErrInvalidSkinRange is returned by SkinRange.Validate.
var ErrInvalidSkinRange = errors.New("invalid skin range")

// SkinRange is an inclusive box in 8-bit HSV space (hue [0,180), saturation
// and value [0,255]). A pixel is skin when every channel lies within
// [Lower, Upper].
type SkinRange struct {
	Lower [3]uint8 `yaml:"lower"`
	Upper [3]uint8 `yaml:"upper"`
}

// DefaultSkinRange is the skin range used when none is configured.
var DefaultSkinRange = SkinRange{
	Lower: [3]uint8{0, 48, 80},
	Upper: [3]uint8{20, 255, 255},
}

// Contains reports whether the HSV triple lies in the range.
func (r SkinRange) Contains(h, s, v uint8) bool {
	return h >= r.Lower[0] && h <= r.Upper[0] &&
		s >= r.Lower[1] && s <= r.Upper[1] &&
		v >= r.Lower[2] && v <= r.Upper[2]
}

// Validate checks that every lower bound is at most its upper bound and
// that hue bounds stay below 180.
func (r SkinRange) Validate() error {
	for i := range r.Lower {
		if r.Lower[i] > r.Upper[i] {
			return fmt.Errorf("%w: channel %d lower %d > upper %d", ErrInvalidSkinRange, i, r.Lower[i], r.Upper[i])
		}
	}
	if r.Upper[0] >= 180 {
		return fmt.Errorf("%w: hue upper %d out of [0,180)", ErrInvalidSkinRange, r.Upper[0])
	}
	return nil
}

// ReplaceSkinTone paints every pixel whose HSV value lies in skin with the
// solid color c. ColorNone and unknown colors leave f untouched.
func ReplaceSkinTone(f *frame.Frame, c Color, skin SkinRange) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	rgb, ok := c.RGB()
	if !ok {
		return f, nil
	}

	for i := 0; i+frame.BytesPerPixel <= len(f.Pix); i += frame.BytesPerPixel {
		p := f.Pix[i : i+frame.BytesPerPixel : i+frame.BytesPerPixel]
		h, s, v := toHSV8(p[0], p[1], p[2])
		if skin.Contains(h, s, v) {
			copy(p, rgb[:])
		}
	}
	return f, nil
}
