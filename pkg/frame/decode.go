package frame

import (
	"fmt"
	"image"
)

// Decoder turns a raw capture buffer into an image. The returned release
// func must be called once the image is no longer used.
type Decoder interface {
	Decode(frame []byte, width, height int) (image.Image, func(), error)
}

// decoderFunc is a proxy type for Decoder
type decoderFunc func(frame []byte, width, height int) (image.Image, func(), error)

func (f decoderFunc) Decode(frame []byte, width, height int) (image.Image, func(), error) {
	return f(frame, width, height)
}

// NewDecoder returns the decoder for f.
func NewDecoder(f Format) (Decoder, error) {
	var decoder decoderFunc

	switch f {
	case FormatI420:
		decoder = decodeI420
	case FormatNV21:
		decoder = decodeNV21
	case FormatNV12:
		decoder = decodeNV12
	case FormatYUY2:
		decoder = decodeYUY2
	case FormatUYVY:
		decoder = decodeUYVY
	case FormatRGBA:
		decoder = decodeRGBA
	case FormatRGB24:
		decoder = decodeRGB24
	case FormatMJPEG:
		decoder = decodeMJPEG
	default:
		return nil, fmt.Errorf("%s is not supported", f)
	}

	return decoder, nil
}
