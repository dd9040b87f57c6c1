package filter

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/pion/mediafilter/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIdentity(t *testing.T) {
	identities := []Params{
		nil,
		OriginalParams{},
		ContrastParams{Alpha: 1, Beta: 0},
		PosterizeParams{Levels: 1},
		BlurParams{KernelSize: 0},
		AlienParams{Color: ColorNone},
		DistortParams{},
	}
	for _, p := range identities {
		f := randomFrame(t, 9, 7, 4)
		want := f.Clone()

		out, err := Apply(f, p)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, out.Pix, "%#v", p)
	}
}

func TestApplyDispatch(t *testing.T) {
	params := []Params{
		ContrastParams{Alpha: 2, Beta: 10},
		PosterizeParams{Levels: 4},
		BlurParams{KernelSize: 5},
		AlienParams{Color: ColorGreen},
		DistortParams{KBarrel: 0.4},
	}
	direct := []func(*frame.Frame) (*frame.Frame, error){
		func(f *frame.Frame) (*frame.Frame, error) { return Contrast(f, 2, 10) },
		func(f *frame.Frame) (*frame.Frame, error) { return Posterize(f, 4) },
		func(f *frame.Frame) (*frame.Frame, error) { return BoxBlur(f, 5) },
		func(f *frame.Frame) (*frame.Frame, error) { return ReplaceSkinTone(f, ColorGreen, DefaultSkinRange) },
		func(f *frame.Frame) (*frame.Frame, error) { return Distort(f, 0.4, 0) },
	}
	for i, p := range params {
		t.Run(string(p.ID()), func(t *testing.T) {
			got, err := Apply(randomFrame(t, 11, 8, 6), p)
			require.NoError(t, err)
			want, err := direct[i](randomFrame(t, 11, 8, 6))
			require.NoError(t, err)

			assert.Equal(t, want.Pix, got.Pix)
			assert.Equal(t, 11, got.Width)
			assert.Equal(t, 8, got.Height)
		})
	}
}

func TestInvalidFrameShape(t *testing.T) {
	shapes := map[string]func() *frame.Frame{
		"ShortBuffer": func() *frame.Frame {
			return &frame.Frame{Width: 2, Height: 2, Pix: make([]uint8, 11)}
		},
		// Width*Height*3 wraps around to 0
		"WrappedSize": func() *frame.Frame {
			return &frame.Frame{Width: math.MaxInt/2 + 1, Height: 4, Pix: []uint8{}}
		},
		"HugeSize": func() *frame.Frame {
			return &frame.Frame{Width: math.MaxInt, Height: math.MaxInt, Pix: make([]uint8, 3)}
		},
	}
	entries := map[string]func(*frame.Frame) (*frame.Frame, error){
		"Contrast":  func(f *frame.Frame) (*frame.Frame, error) { return Contrast(f, 1, 0) },
		"Posterize": func(f *frame.Frame) (*frame.Frame, error) { return Posterize(f, 1) },
		"BoxBlur":   func(f *frame.Frame) (*frame.Frame, error) { return BoxBlur(f, 3) },
		"Alien":     func(f *frame.Frame) (*frame.Frame, error) { return ReplaceSkinTone(f, ColorRed, DefaultSkinRange) },
		"Distort":   func(f *frame.Frame) (*frame.Frame, error) { return Distort(f, 0.1, 0) },
		"Apply":     func(f *frame.Frame) (*frame.Frame, error) { return Apply(f, OriginalParams{}) },
		"Selector":  NewSelector(WithInitial(BlurParams{KernelSize: 3})).Apply,
	}
	for name, fn := range entries {
		fn := fn
		t.Run(name, func(t *testing.T) {
			for shape, bad := range shapes {
				f := bad()
				out, err := fn(f)
				assert.Nil(t, out, shape)
				assert.ErrorIs(t, err, frame.ErrInvalidFrameShape, shape)

				var shapeErr *frame.ShapeError
				require.True(t, errors.As(err, &shapeErr), shape)
				assert.Equal(t, len(f.Pix), shapeErr.Length, shape)
			}

			_, err := fn(nil)
			assert.ErrorIs(t, err, frame.ErrInvalidFrameShape)
		})
	}
}

func TestSelector(t *testing.T) {
	s := NewSelector()
	assert.Equal(t, OriginalParams{}, s.Current())

	s.Select(ContrastParams{Alpha: 10, Beta: 0})
	assert.Equal(t, ContrastParams{Alpha: MaxAlpha}, s.Current())

	out, err := s.Apply(uniformFrame(2, 2, 50))
	require.NoError(t, err)
	assert.Equal(t, uniformFrame(2, 2, 150).Pix, out.Pix)

	s.Select(nil)
	assert.Equal(t, OriginalParams{}, s.Current())
}

func TestSelectorSkinRange(t *testing.T) {
	blue := SkinRange{Lower: [3]uint8{110, 200, 200}, Upper: [3]uint8{130, 255, 255}}
	s := NewSelector(WithSkinRange(blue), WithInitial(AlienParams{Color: ColorRed}))
	assert.Equal(t, blue, s.SkinRange())

	out, err := s.Apply(alienInput())
	require.NoError(t, err)

	want := alienInput()
	want.SetRGB(1, 0, 255, 0, 0)
	assert.Equal(t, want.Pix, out.Pix)
}

func TestSelectorConcurrentSelect(t *testing.T) {
	s := NewSelector()
	choices := []Params{
		OriginalParams{},
		ContrastParams{Alpha: 2},
		PosterizeParams{Levels: 3},
		BlurParams{KernelSize: 3},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Select(choices[i%len(choices)])
		}
	}()

	for i := 0; i < 200; i++ {
		out, err := s.Apply(uniformFrame(4, 4, 100))
		require.NoError(t, err)
		// each cycle sees exactly one filter, so the frame stays uniform
		for _, v := range out.Pix {
			if v != out.Pix[0] {
				t.Fatalf("cycle %d produced a mixed frame", i)
			}
		}
	}
	wg.Wait()
}
