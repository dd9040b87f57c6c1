package prop

import (
	"fmt"
	"strings"

	"github.com/pion/mediafilter/pkg/frame"
)

// FrameFormatConstraint constrains the pixel format a driver delivers.
type FrameFormatConstraint interface {
	Compare(frame.Format) (float64, bool)
	Value() (frame.Format, bool)
}

// FrameFormat prefers one pixel format. Every format matches.
type FrameFormat frame.Format

// Compare implements FrameFormatConstraint.
func (f FrameFormat) Compare(a frame.Format) (float64, bool) {
	if frame.Format(f) != a {
		return 1, true
	}
	return 0, true
}

// Value implements FrameFormatConstraint.
func (f FrameFormat) Value() (frame.Format, bool) { return frame.Format(f), true }

func (f FrameFormat) String() string {
	return fmt.Sprintf("%s (ideal)", string(f))
}

// FrameFormatOneOf only matches the listed formats. It pins no single value,
// so the driver's format is kept.
type FrameFormatOneOf []frame.Format

// Compare implements FrameFormatConstraint.
func (f FrameFormatOneOf) Compare(a frame.Format) (float64, bool) {
	for _, format := range f {
		if format == a {
			return 0, true
		}
	}
	return 1, false
}

// Value implements FrameFormatConstraint.
func (FrameFormatOneOf) Value() (frame.Format, bool) { return "", false }

func (f FrameFormatOneOf) String() string {
	names := make([]string, len(f))
	for i, format := range f {
		names[i] = string(format)
	}
	return fmt.Sprintf("%s (one of)", strings.Join(names, ","))
}
