package prop

import (
	"testing"

	"github.com/pion/mediafilter/pkg/frame"
)

func TestCompareMatch(t *testing.T) {
	testDataSet := map[string]struct {
		a     MediaConstraints
		b     Media
		match bool
	}{
		"DeviceIDExactUnmatch": {
			MediaConstraints{DeviceID: StringExact("abc")},
			Media{DeviceID: "cde"},
			false,
		},
		"DeviceIDExactMatch": {
			MediaConstraints{DeviceID: StringExact("abc")},
			Media{DeviceID: "abc"},
			true,
		},
		"IntIdealUnmatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{Width: Int(30)}},
			Media{Video: Video{Width: 50}},
			true,
		},
		"IntExactUnmatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{Width: IntExact(30)}},
			Media{Video: Video{Width: 50}},
			false,
		},
		"IntExactMatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{Width: IntExact(30)}},
			Media{Video: Video{Width: 30}},
			true,
		},
		"FloatIdealUnmatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{FrameRate: Float(30)}},
			Media{Video: Video{FrameRate: 60}},
			true,
		},
		"FrameFormatOneOfMatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{
				FrameFormat: FrameFormatOneOf{frame.FormatYUYV, frame.FormatUYVY},
			}},
			Media{Video: Video{FrameFormat: frame.FormatYUYV}},
			true,
		},
		"FrameFormatOneOfUnmatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{
				FrameFormat: FrameFormatOneOf{frame.FormatYUYV, frame.FormatUYVY},
			}},
			Media{Video: Video{FrameFormat: frame.FormatMJPEG}},
			false,
		},
		"FrameFormatIdealUnmatch": {
			MediaConstraints{VideoConstraints: VideoConstraints{FrameFormat: FrameFormat(frame.FormatI420)}},
			Media{Video: Video{FrameFormat: frame.FormatMJPEG}},
			true,
		},
	}

	for name, testData := range testDataSet {
		testData := testData
		t.Run(name, func(t *testing.T) {
			_, match := testData.a.FitnessDistance(testData.b)
			if match != testData.match {
				t.Errorf("matching flag differs, expected: %v, got: %v", testData.match, match)
			}
		})
	}
}

func TestFitnessDistanceOrder(t *testing.T) {
	c := MediaConstraints{VideoConstraints: VideoConstraints{
		Width:  Int(640),
		Height: Int(480),
	}}

	near, ok := c.FitnessDistance(Media{Video: Video{Width: 640, Height: 360}})
	if !ok {
		t.Fatal("expected ideal constraints to always match")
	}
	far, _ := c.FitnessDistance(Media{Video: Video{Width: 1920, Height: 1080}})
	exact, _ := c.FitnessDistance(Media{Video: Video{Width: 640, Height: 480}})

	if exact != 0 {
		t.Errorf("expected zero distance for an exact match, got %f", exact)
	}
	if !(exact < near && near < far) {
		t.Errorf("expected %f < %f < %f", exact, near, far)
	}
}

func TestMergeWithZero(t *testing.T) {
	a := Media{Video: Video{Width: 30}}
	b := Media{Video: Video{Height: 100}}

	a.Merge(b)

	if a.Width != 30 {
		t.Errorf("expected a.Width to be 30, but got %d", a.Width)
	}
	if a.Height != 100 {
		t.Errorf("expected a.Height to be 100, but got %d", a.Height)
	}
}

func TestMergeWithSameField(t *testing.T) {
	a := Media{Video: Video{Width: 30}}
	b := Media{Video: Video{Width: 100}}

	a.Merge(b)

	if a.Width != 100 {
		t.Errorf("expected a.Width to be 100, but got %d", a.Width)
	}
}

func TestMergeConstraints(t *testing.T) {
	a := Media{Video: Video{Width: 30, Height: 20}}
	b := MediaConstraints{
		DeviceID: StringExact("cam0"),
		VideoConstraints: VideoConstraints{
			Width:       Int(100),
			FrameRate:   Float(30),
			FrameFormat: FrameFormatOneOf{frame.FormatMJPEG, frame.FormatYUYV},
		},
	}

	a.MergeConstraints(b)

	want := Media{
		DeviceID: "cam0",
		Video: Video{
			Width:       100,
			Height:      20,
			FrameRate:   30,
			FrameFormat: "", // one-of constraints have no single value
		},
	}
	if a != want {
		t.Errorf("expected %+v, got %+v", want, a)
	}
}

func TestCompareDistance(t *testing.T) {
	cases := []struct {
		name     string
		compare  func() (float64, bool)
		expected float64
		ok       bool
	}{
		{"IntIdealZeroes", func() (float64, bool) { return Int(0).Compare(0) }, 0, true},
		{"IntIdealHalf", func() (float64, bool) { return Int(640).Compare(320) }, 0.5, true},
		{"IntExact", func() (float64, bool) { return IntExact(640).Compare(320) }, 1, false},
		{"FloatIdealZeroes", func() (float64, bool) { return Float(0).Compare(0) }, 0, true},
		{"FloatIdealUnreported", func() (float64, bool) { return Float(30).Compare(0) }, 1, true},
		{"StringExact", func() (float64, bool) { return StringExact("a").Compare("a") }, 0, true},
		{"FrameFormatIdeal", func() (float64, bool) { return FrameFormat(frame.FormatI420).Compare(frame.FormatRGB24) }, 1, true},
		{"FrameFormatOneOf", func() (float64, bool) { return FrameFormatOneOf{frame.FormatRGB24}.Compare(frame.FormatRGB24) }, 0, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			dist, ok := c.compare()
			if dist != c.expected || ok != c.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", c.expected, c.ok, dist, ok)
			}
		})
	}
}

func TestString(t *testing.T) {
	c := MediaConstraints{VideoConstraints: VideoConstraints{Width: Int(640)}}
	s := c.String()
	if s == "" {
		t.Fatal("expected a description")
	}
	t.Log(s)
}
