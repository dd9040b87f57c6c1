// Package export writes frames to image files. The encoding is picked from
// the file extension: .jpg and .jpeg (the default when the path has no
// extension), .png, .bmp, .tif and .tiff.
package export

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pion/mediafilter/internal/logging"
	"github.com/pion/mediafilter/pkg/frame"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var logger = logging.NewLogger("mediafilter/export")

// Format is an image file encoding.
type Format string

// Supported formats
const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultExtension is appended to paths without an extension.
const DefaultExtension = ".jpg"

// DefaultJPEGQuality is used unless WithQuality says otherwise.
const DefaultJPEGQuality = jpeg.DefaultQuality

var extensions = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath returns the format matching the extension of path, ignoring
// case.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensions[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

type options struct {
	quality     int
	compressTIF bool
}

// Option configures an encoder.
type Option func(*options)

// WithQuality sets the JPEG quality, 1 to 100. Other formats ignore it.
func WithQuality(quality int) Option {
	return func(o *options) {
		if quality < 1 {
			quality = 1
		}
		if quality > 100 {
			quality = 100
		}
		o.quality = quality
	}
}

// WithTIFFCompression turns on deflate compression for TIFF output.
func WithTIFFCompression() Option {
	return func(o *options) {
		o.compressTIF = true
	}
}

// Encode writes f to w in the given format.
func Encode(w io.Writer, f *frame.Frame, format Format, opts ...Option) error {
	if err := f.Validate(); err != nil {
		return err
	}
	o := options{quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&o)
	}

	img := f.ToRGBA()
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: o.quality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		compression := tiff.Uncompressed
		if o.compressTIF {
			compression = tiff.Deflate
		}
		return tiff.Encode(w, img, &tiff.Options{Compression: compression})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Save writes f to path, creating missing parent directories. A path without
// extension gets DefaultExtension. It returns the path actually written.
func Save(path string, f *frame.Frame, opts ...Option) (string, error) {
	if filepath.Ext(path) == "" {
		path += DefaultExtension
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	if err := f.Validate(); err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, f, format, opts...); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("%s encode failed: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	logger.Infof("saved %dx%d frame to %s", f.Width, f.Height, path)
	return path, nil
}
