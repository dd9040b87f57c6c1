package video

import (
	"image"
	"math"
	"time"

	"github.com/pion/mediafilter/pkg/prop"
)

// DetectChanges will detect frame and video property changes. For video property detection,
// since it's time related, interval will be used to determine the sample rate.
// Frame rate changes within fpsDiffTolerance don't trigger onChange.
func DetectChanges(interval time.Duration, fpsDiffTolerance float64, onChange func(prop.Media)) TransformFunc {
	return func(r Reader) Reader {
		var currentProp prop.Media
		var lastTaken time.Time
		var frames uint
		return ReaderFunc(func() (image.Image, func(), error) {
			var dirty bool

			img, release, err := read(r)
			if err != nil {
				return nil, nopRelease, err
			}

			bounds := img.Bounds()
			if currentProp.Width != bounds.Dx() {
				currentProp.Width = bounds.Dx()
				dirty = true
			}

			if currentProp.Height != bounds.Dy() {
				currentProp.Height = bounds.Dy()
				dirty = true
			}

			now := time.Now()
			elapsed := now.Sub(lastTaken)
			if elapsed >= interval {
				fps := float32(float64(frames) / elapsed.Seconds())
				if math.Abs(float64(fps-currentProp.FrameRate)) > fpsDiffTolerance {
					currentProp.FrameRate = fps
					dirty = true
				}
				frames = 0
				lastTaken = now
			}

			if dirty {
				onChange(currentProp)
			}

			frames++
			return img, release, nil
		})
	}
}
