package filter

import (
	"math"

	"github.com/pion/mediafilter/pkg/frame"
)

// Distort applies radial lens distortion. For every destination pixel the
// normalized radius r from the frame center is computed once; the offset
// from the center is scaled by (1 + kBarrel*r²) and then by
// (1 + kPincushion*r⁴), and the source is sampled bilinearly at the
// resulting position. Positions outside the frame produce black pixels.
//
// When both coefficients are zero (non-finite coefficients count as zero)
// f is returned untouched. Otherwise the result is a new Frame and f is left
// as it was.
func Distort(f *frame.Frame, kBarrel, kPincushion float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	kBarrel = finiteOrZero(kBarrel)
	kPincushion = finiteOrZero(kPincushion)
	if kBarrel == 0 && kPincushion == 0 {
		return f, nil
	}

	w, h := f.Width, f.Height
	dst := frame.New(w, h)
	if len(f.Pix) == 0 {
		return dst, nil
	}

	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		yn := (float64(y) - cy) / cy
		for x := 0; x < w; x++ {
			xn := (float64(x) - cx) / cx
			r2 := xn*xn + yn*yn
			dx, dy := xn, yn
			if kBarrel != 0 {
				scale := 1 + kBarrel*r2
				dx, dy = dx*scale, dy*scale
			}
			if kPincushion != 0 {
				scale := 1 + kPincushion*r2*r2
				dx, dy = dx*scale, dy*scale
			}
			i := dst.PixOffset(x, y)
			bilinearSample(f, dx*cx+cx, dy*cy+cy, dst.Pix[i:i+frame.BytesPerPixel])
		}
	}
	return dst, nil
}

// bilinearSample writes the interpolated color at (fx, fy) into out, or
// black when the point lies outside the frame.
func bilinearSample(f *frame.Frame, fx, fy float64, out []uint8) {
	w, h := f.Width, f.Height
	// Negated comparison also rejects NaN.
	if !(fx >= 0 && fx < float64(w) && fy >= 0 && fy < float64(h)) {
		out[0], out[1], out[2] = 0, 0, 0
		return
	}

	x, y := int(fx), int(fy)
	tx, ty := fx-float64(x), fy-float64(y)
	x1, y1 := x+1, y+1
	if x1 >= w {
		x1 = x
		tx = 0
	}
	if y1 >= h {
		y1 = y
		ty = 0
	}

	i00 := f.PixOffset(x, y)
	i10 := f.PixOffset(x1, y)
	i01 := f.PixOffset(x, y1)
	i11 := f.PixOffset(x1, y1)

	w00 := (1 - tx) * (1 - ty)
	w10 := tx * (1 - ty)
	w01 := (1 - tx) * ty
	w11 := tx * ty

	for c := 0; c < frame.BytesPerPixel; c++ {
		val := w00*float64(f.Pix[i00+c]) + w10*float64(f.Pix[i10+c]) +
			w01*float64(f.Pix[i01+c]) + w11*float64(f.Pix[i11+c])
		out[c] = saturate(val)
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
