/*
Package filter implements the per-frame pixel transforms applied to live
video: contrast/brightness, posterization, box blur, skin tone replacement
("Alien") and lens distortion.

Exactly one filter is active per cycle. The active filter and its
parameters are described by a Params value, a closed set of variants:

	ContrastParams{Alpha: 1.4, Beta: 20}
	PosterizeParams{Levels: 4}
	BlurParams{KernelSize: 9}
	AlienParams{Color: ColorGreen}
	DistortParams{KBarrel: 0.3}
	OriginalParams{}

Apply dispatches a Frame to the filter named by its Params. Selector wraps
the same dispatch with a selection that can be changed from another
goroutine; a change takes effect on the next frame.

Every filter takes ownership of its input Frame. Point filters (contrast,
posterize, alien) and the box blur write their output into the input buffer;
lens distortion returns a new Frame. Degenerate parameters return the input
untouched. The only error is a malformed Frame, reported as a
*frame.ShapeError matching frame.ErrInvalidFrameShape.

Lens distortion samples the source bilinearly; destination pixels whose
source coordinate falls outside the frame are black.
*/
package filter
