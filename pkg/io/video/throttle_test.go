package video

import (
	"image"
	"runtime"
	"testing"
	"time"
)

func TestThrottle(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("Skipping because Darwin CI is not reliable for timing related tests.")
	}
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	var cntPush int
	trans := Throttle(50)
	r := trans(ReaderFunc(func() (image.Image, func(), error) {
		<-ticker.C
		cntPush++
		return img, func() {}, nil
	}))

	for i := 0; i < 20; i++ {
		_, _, err := r.Read()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	cntExpected := 20
	if cntPush < cntExpected*8/10 || cntExpected*12/10 < cntPush {
		t.Fatalf("Number of pushed images is expected to be %d, but pushed %d", cntExpected, cntPush)
	}
	t.Log(cntPush)
}

func TestThrottleReleasesDroppedFrames(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	var reads, releases int
	r := Throttle(10)(ReaderFunc(func() (image.Image, func(), error) {
		reads++
		return img, func() { releases++ }, nil
	}))

	_, release, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if releases != reads-1 {
		t.Errorf("expected %d dropped frames to be released, got %d", reads-1, releases)
	}
	release()
	if releases != reads {
		t.Errorf("expected the returned frame to be released by its release func")
	}
}

func TestThrottleDisabled(t *testing.T) {
	src := ReaderFunc(func() (image.Image, func(), error) {
		return nil, nil, nil
	})
	if r := Throttle(0)(src); r == nil {
		t.Fatal("expected a reader")
	}
}
