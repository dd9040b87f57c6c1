package frame

import (
	"fmt"
	"image"
	"testing"
)

func TestDecodeRGB24(t *testing.T) {
	input := []byte{1, 2, 3, 4, 5, 6, 0xAA}

	img, _, err := decodeRGB24(input, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	f, ok := img.(*Frame)
	if !ok {
		t.Fatalf("expected *Frame, got %T", img)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("decoded frame is malformed: %v", err)
	}

	if _, _, err := decodeRGB24(input[:5], 2, 1); err == nil {
		t.Error("expected an error for a truncated frame")
	}
}

func TestDecodeRGBA(t *testing.T) {
	input := make([]byte, 16)
	img, _, err := decodeRGBA(input, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestNewDecoder(t *testing.T) {
	for format := range FrameSizeMap {
		if _, err := NewDecoder(format); err != nil {
			t.Errorf("%s: %v", format, err)
		}
	}
	if _, err := NewDecoder(FormatMJPEG); err != nil {
		t.Error(err)
	}
	if _, err := NewDecoder(Format("Z16")); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func BenchmarkFromImage(b *testing.B) {
	sizes := []struct {
		width, height int
	}{
		{640, 480},
		{1920, 1080},
	}
	for _, sz := range sizes {
		sz := sz
		b.Run(fmt.Sprintf("%dx%d", sz.width, sz.height), func(b *testing.B) {
			src := image.NewYCbCr(image.Rect(0, 0, sz.width, sz.height), image.YCbCrSubsampleRatio420)
			var dst Frame
			for i := 0; i < b.N; i++ {
				Convert(&dst, src)
			}
		})
	}
}
