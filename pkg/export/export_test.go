package export

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pion/mediafilter/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "image/jpeg"
	_ "image/png"
)

func testFrame() *frame.Frame {
	f := frame.New(8, 6)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.SetRGB(x, y, uint8(x*30), uint8(y*40), 128)
		}
	}
	return f
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.jpg":     FormatJPEG,
		"a.JPEG":    FormatJPEG,
		"dir/b.png": FormatPNG,
		"c.bmp":     FormatBMP,
		"d.tif":     FormatTIFF,
		"e.TIFF":    FormatTIFF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("f.gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeLossless(t *testing.T) {
	f := testFrame()
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG: func(b *bytes.Buffer) (image.Image, error) {
			img, _, err := image.Decode(b)
			return img, err
		},
		FormatBMP: func(b *bytes.Buffer) (image.Image, error) {
			return bmp.Decode(b)
		},
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) {
			return tiff.Decode(b)
		},
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, format, WithTIFFCompression()))

			img, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, f.Pix, frame.FromImage(img).Pix)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, testFrame(), Format("gif")), ErrUnsupportedFormat)
	assert.ErrorIs(t, Encode(&buf, &frame.Frame{Width: 1, Height: 1}, FormatPNG), frame.ErrInvalidFrameShape)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(filepath.Join(dir, "nested", "snap"), testFrame(), WithQuality(95))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "snap.jpg"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 6, cfg.Height)

	_, err = Save(filepath.Join(dir, "snap.gif"), testFrame())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = os.Stat(filepath.Join(dir, "snap.gif"))
	assert.True(t, os.IsNotExist(err))
}
