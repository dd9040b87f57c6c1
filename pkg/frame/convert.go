package frame

import (
	"image"
	"image/color"
)

// FromImage copies src into a newly allocated Frame. Alpha is dropped;
// premultiplied sources keep their premultiplied color values.
func FromImage(src image.Image) *Frame {
	var dst Frame
	Convert(&dst, src)
	return &dst
}

// Convert copies src into dst, reusing dst.Pix when it's large enough.
// dst never aliases memory owned by src.
func Convert(dst *Frame, src image.Image) {
	if dst == nil {
		panic("dst can't be nil")
	}

	bounds := src.Bounds()
	dx, dy := bounds.Dx(), bounds.Dy()
	size := dx * dy * BytesPerPixel
	if cap(dst.Pix) < size {
		dst.Pix = make([]uint8, size)
	}
	dst.Pix = dst.Pix[:size]
	dst.Width = dx
	dst.Height = dy

	switch s := src.(type) {
	case *Frame:
		copy(dst.Pix, s.Pix)
	case *image.RGBA:
		rgbaToRGB(dst.Pix, s.Pix, s.Stride, s.Rect, bounds)
	case *image.NRGBA:
		rgbaToRGB(dst.Pix, s.Pix, s.Stride, s.Rect, bounds)
	case *image.YCbCr:
		ycbcrToRGB(dst, s)
	default:
		i := 0
		for yi := bounds.Min.Y; yi < bounds.Max.Y; yi++ {
			for xi := bounds.Min.X; xi < bounds.Max.X; xi++ {
				r, g, b, _ := src.At(xi, yi).RGBA()
				dst.Pix[i+0] = uint8(r >> 8)
				dst.Pix[i+1] = uint8(g >> 8)
				dst.Pix[i+2] = uint8(b >> 8)
				i += BytesPerPixel
			}
		}
	}
}

func rgbaToRGB(dst, src []uint8, stride int, rect, bounds image.Rectangle) {
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := (y-rect.Min.Y)*stride + (bounds.Min.X-rect.Min.X)*4
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst[i+0] = src[j+0]
			dst[i+1] = src[j+1]
			dst[i+2] = src[j+2]
			i += BytesPerPixel
			j += 4
		}
	}
}

func ycbcrToRGB(dst *Frame, src *image.YCbCr) {
	bounds := src.Rect
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			yi := src.YOffset(x, y)
			ci := src.COffset(x, y)
			r, g, b := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
			dst.Pix[i+0] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = b
			i += BytesPerPixel
		}
	}
}
