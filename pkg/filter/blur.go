package filter

import (
	"sync"

	"github.com/pion/mediafilter/pkg/frame"
)

// MaxKernelSize is the largest box blur kernel side.
const MaxKernelSize = 255

var sumPool = sync.Pool{
	New: func() interface{} {
		return &[]int32{}
	},
}

// EffectiveKernelSize returns the kernel side BoxBlur uses for the requested
// size: at least 3, rounded up to the next odd number and capped at
// MaxKernelSize. A size below 1 returns 0, meaning no blur.
func EffectiveKernelSize(k int) int {
	switch {
	case k < 1:
		return 0
	case k < 3:
		return 3
	case k > MaxKernelSize:
		return MaxKernelSize
	}
	return k | 1
}

// BoxBlur replaces every channel value with the mean of the
// EffectiveKernelSize(k) square around it, rounded to the nearest integer.
// Pixels beyond the frame edge replicate the nearest edge pixel.
// kernelSize < 1 leaves f untouched.
func BoxBlur(f *frame.Frame, kernelSize int) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	size := EffectiveKernelSize(kernelSize)
	if size == 0 || len(f.Pix) == 0 {
		return f, nil
	}

	w, h := f.Width, f.Height
	radius := size / 2
	area := int32(size * size)

	hsumPtr := sumPool.Get().(*[]int32)
	defer sumPool.Put(hsumPtr)
	if cap(*hsumPtr) < len(f.Pix) {
		*hsumPtr = make([]int32, len(f.Pix))
	}
	hsum := (*hsumPtr)[:len(f.Pix)]

	// Horizontal pass: hsum holds the row-wise window totals.
	for y := 0; y < h; y++ {
		row := f.Pix[y*w*frame.BytesPerPixel : (y+1)*w*frame.BytesPerPixel]
		out := hsum[y*w*frame.BytesPerPixel : (y+1)*w*frame.BytesPerPixel]
		for c := 0; c < frame.BytesPerPixel; c++ {
			var sum int32
			for dx := -radius; dx <= radius; dx++ {
				sum += int32(row[clampIndex(dx, w)*frame.BytesPerPixel+c])
			}
			for x := 0; x < w; x++ {
				out[x*frame.BytesPerPixel+c] = sum
				in := clampIndex(x+radius+1, w)
				gone := clampIndex(x-radius, w)
				sum += int32(row[in*frame.BytesPerPixel+c]) - int32(row[gone*frame.BytesPerPixel+c])
			}
		}
	}

	// Vertical pass over hsum writes the averages back into f.
	stride := w * frame.BytesPerPixel
	for i := 0; i < stride; i++ {
		var sum int32
		for dy := -radius; dy <= radius; dy++ {
			sum += hsum[clampIndex(dy, h)*stride+i]
		}
		for y := 0; y < h; y++ {
			f.Pix[y*stride+i] = uint8((sum + area/2) / area)
			in := clampIndex(y+radius+1, h)
			gone := clampIndex(y-radius, h)
			sum += hsum[in*stride+i] - hsum[gone*stride+i]
		}
	}
	return f, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
