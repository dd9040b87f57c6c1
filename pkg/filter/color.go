package filter

import (
	"fmt"
	"strings"
)

// Color is the solid color skin pixels are replaced with by the Alien filter.
type Color int

// Replacement colors
const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
)

var colorNames = map[Color]string{
	ColorNone:  "none",
	ColorRed:   "red",
	ColorGreen: "green",
	ColorBlue:  "blue",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// RGB returns the color's channel values. ok is false for ColorNone and
// unknown colors.
func (c Color) RGB() (rgb [3]uint8, ok bool) {
	switch c {
	case ColorRed:
		return [3]uint8{255, 0, 0}, true
	case ColorGreen:
		return [3]uint8{0, 255, 0}, true
	case ColorBlue:
		return [3]uint8{0, 0, 255}, true
	}
	return rgb, false
}

// ParseColor parses a color name, ignoring case.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
