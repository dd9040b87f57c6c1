package screen

import (
	"image"
	"io"
	"testing"

	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	rect     image.Rectangle
	captures int
}

func (f *fakeCapturer) Bounds(int) image.Rectangle { return f.rect }

func (f *fakeCapturer) Capture(int) (*image.RGBA, error) {
	f.captures++
	return image.NewRGBA(f.rect), nil
}

func TestScreen(t *testing.T) {
	c := &fakeCapturer{rect: image.Rect(0, 0, 320, 200)}
	s := newScreen(0, c)

	require.NoError(t, s.Open())
	assert.Equal(t, []prop.Media{{Video: prop.Video{Width: 320, Height: 200, FrameFormat: frame.FormatRGBA}}}, s.Properties())

	r, err := s.VideoRecord(s.Properties()[0])
	require.NoError(t, err)

	img, release, err := r.Read()
	require.NoError(t, err)
	release()
	assert.Equal(t, c.rect, img.Bounds())
	assert.Equal(t, 1, c.captures)

	require.NoError(t, s.Close())
	_, _, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, s.Close(), "closing twice must be safe")
}
