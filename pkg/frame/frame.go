package frame

import (
	"image"
	"image/color"
	"math"
)

// BytesPerPixel is the number of bytes a single RGB24 pixel occupies.
const BytesPerPixel = 3

// Frame is one captured or transformed image. Pix holds the pixels in
// R, G, B order, row-major from top to bottom, without padding. The pixel at
// (x, y) starts at Pix[(y*Width+x)*3].
//
// A Frame is owned by exactly one holder at a time. Filters take ownership of
// the Frame they are given and hand back either the same Frame or a new one.
type Frame struct {
	Width, Height int
	Pix           []uint8
}

// New allocates a black frame of the given size.
func New(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*BytesPerPixel),
	}
}

// FromPixels wraps pix as a Frame without copying. It fails with a
// *ShapeError when len(pix) doesn't match width*height*3.
func FromPixels(width, height int, pix []uint8) (*Frame, error) {
	f := &Frame{Width: width, Height: height, Pix: pix}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the Frame invariant len(Pix) == Width*Height*3.
func (f *Frame) Validate() error {
	if f == nil {
		return &ShapeError{}
	}
	if f.Width < 0 || f.Height < 0 ||
		// Width*Height*3 must not overflow
		(f.Width > 0 && f.Height > math.MaxInt/BytesPerPixel/f.Width) ||
		len(f.Pix) != f.Width*f.Height*BytesPerPixel {
		return &ShapeError{Width: f.Width, Height: f.Height, Length: len(f.Pix)}
	}
	return nil
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	clone := &Frame{Width: f.Width, Height: f.Height, Pix: make([]uint8, len(f.Pix))}
	copy(clone.Pix, f.Pix)
	return clone
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (f *Frame) PixOffset(x, y int) int {
	return (y*f.Width + x) * BytesPerPixel
}

// RGB returns the channel values of the pixel at (x, y).
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := f.PixOffset(x, y)
	s := f.Pix[i : i+3 : i+3] // Small capacity improves performance, see https://golang.org/issue/27857
	return s[0], s[1], s[2]
}

// SetRGB overwrites the pixel at (x, y).
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	i := f.PixOffset(x, y)
	s := f.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = r, g, b
}

func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := f.RGB(x, y)
	return color.RGBA{r, g, b, 0xFF}
}

// Set implements draw.Image so a Frame can be a scaling or drawing target.
// Alpha is dropped.
func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return
	}
	r, g, b, _ := c.RGBA()
	f.SetRGB(x, y, uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// ToRGBA copies f into a new *image.RGBA with an opaque alpha channel.
func (f *Frame) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(f.Bounds())
	j := 0
	for i := 0; i+2 < len(f.Pix); i += BytesPerPixel {
		dst.Pix[j+0] = f.Pix[i+0]
		dst.Pix[j+1] = f.Pix[i+1]
		dst.Pix[j+2] = f.Pix[i+2]
		dst.Pix[j+3] = 0xFF
		j += 4
	}
	return dst
}
