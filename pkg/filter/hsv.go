package filter

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// toHSV8 converts an RGB pixel to the 8-bit HSV convention used by the skin
// range: hue in [0,180), saturation and value in [0,255].
func toHSV8(r, g, b uint8) (h, s, v uint8) {
	c := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
	hue, sat, val := c.Hsv()

	hh := int(math.Round(hue / 2))
	if hh >= 180 {
		hh -= 180
	}
	return uint8(hh), uint8(math.Round(sat * 255)), uint8(math.Round(val * 255))
}
