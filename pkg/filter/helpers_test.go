package filter

import (
	"math/rand"
	"testing"

	"github.com/pion/mediafilter/pkg/frame"
)

func randomFrame(t testing.TB, width, height int, seed int64) *frame.Frame {
	t.Helper()

	f := frame.New(width, height)
	r := rand.New(rand.NewSource(seed))
	r.Read(f.Pix)
	return f
}

func uniformFrame(width, height int, v uint8) *frame.Frame {
	f := frame.New(width, height)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

// every channel value 0..255 once per channel
func rampFrame() *frame.Frame {
	f := frame.New(256, 1)
	for x := 0; x < 256; x++ {
		f.SetRGB(x, 0, uint8(x), uint8(x), uint8(x))
	}
	return f
}
