package video

import (
	"image"
	"testing"

	"github.com/pion/mediafilter/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaledSize(t *testing.T) {
	src := image.Rect(0, 0, 640, 480)
	cases := []struct {
		name          string
		width, height int
		w, h          int
	}{
		{"fixed", 500, 500, 500, 500},
		{"keep aspect from width", 320, -1, 320, 240},
		{"keep aspect from height", 0, 120, 160, 120},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := ScaledSize(src, c.width, c.height)
			assert.Equal(t, c.w, w)
			assert.Equal(t, c.h, h)
		})
	}

	w, h := ScaledSize(image.Rectangle{}, 10, -1)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestScale(t *testing.T) {
	src := frame.New(4, 2)
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			if x < 2 {
				src.SetRGB(x, y, 255, 0, 0)
			} else {
				src.SetRGB(x, y, 0, 0, 255)
			}
		}
	}

	r := Scale(2, 1, nil)(ReaderFunc(func() (image.Image, func(), error) {
		return src, func() {}, nil
	}))
	out, _, err := r.Read()
	require.NoError(t, err)

	f := out.(*frame.Frame)
	assert.Equal(t, 2, f.Width)
	assert.Equal(t, 1, f.Height)
	assert.Equal(t, []uint8{255, 0, 0, 0, 0, 255}, f.Pix)
}

func TestScaleInvalidSize(t *testing.T) {
	var dst frame.Frame
	assert.Error(t, ScaleInto(&dst, frame.New(2, 2), 0, -1, nil))
}

func TestParseScaler(t *testing.T) {
	s, err := ParseScaler("BiLinear")
	require.NoError(t, err)
	assert.Equal(t, ScalerBiLinear, s)

	s, err = ParseScaler("")
	require.NoError(t, err)
	assert.Equal(t, ScalerNearestNeighbor, s)

	_, err = ParseScaler("lanczos")
	assert.Error(t, err)
}
