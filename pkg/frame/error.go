package frame

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFrameShape is matched by every error reporting a Frame whose
// pixel buffer doesn't agree with its dimensions.
var ErrInvalidFrameShape = errors.New("invalid frame shape")

// ShapeError tells the caller that a Frame's pixel buffer length doesn't
// match Width*Height*3, or that its dimensions are negative.
type ShapeError struct {
	Width, Height int
	Length        int
}

func (e *ShapeError) Error() string {
	if e.Width < 0 || e.Height < 0 {
		return fmt.Sprintf("%v: negative dimensions %dx%d", ErrInvalidFrameShape, e.Width, e.Height)
	}
	if e.Width > 0 && e.Height > math.MaxInt/BytesPerPixel/e.Width {
		return fmt.Sprintf("%v: %dx%d is too large, got %d bytes", ErrInvalidFrameShape, e.Width, e.Height, e.Length)
	}
	return fmt.Sprintf("%v: %dx%d requires %d bytes of RGB data, got %d",
		ErrInvalidFrameShape, e.Width, e.Height, e.Width*e.Height*BytesPerPixel, e.Length)
}

// Is makes errors.Is(err, ErrInvalidFrameShape) report true for any ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidFrameShape
}
