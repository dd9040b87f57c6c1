package frame

// FrameSizeMap returns a function to get the number of bytes a frame will
// occupy in the given format. Compressed formats are absent.
var FrameSizeMap = map[Format]frameSizeFunc{
	FormatI420:  frameSizeI420,
	FormatNV21:  frameSizeNV21,
	FormatNV12:  frameSizeNV21, // NV12 and NV21 have the same frame size
	FormatYUY2:  frameSizeYUY2,
	FormatUYVY:  frameSizeYUY2, // UYVY and YUY2 have the same frame size
	FormatRGBA:  frameSizeRGBA,
	FormatRGB24: frameSizeRGB24,
}

type frameSizeFunc func(width, height int) uint

func frameSizeYUY2(width, height int) uint {
	return uint(2 * width * height)
}

func frameSizeI420(width, height int) uint {
	yi := width * height
	cbi := yi + width*height/4
	cri := cbi + width*height/4
	return uint(cri)
}

func frameSizeNV21(width, height int) uint {
	yi := width * height
	ci := yi + width*height/2
	return uint(ci)
}

func frameSizeRGBA(width, height int) uint {
	return uint(4 * width * height)
}

func frameSizeRGB24(width, height int) uint {
	return uint(BytesPerPixel * width * height)
}
