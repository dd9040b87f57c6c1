package main

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pion/mediafilter"
	"github.com/pion/mediafilter/internal/config"
	"github.com/pion/mediafilter/pkg/driver"
	"github.com/pion/mediafilter/pkg/driver/videotest"
	"github.com/pion/mediafilter/pkg/filter"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSessionFlags(t *testing.T, args ...string) (*cobra.Command, *sessionOptions) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	o := &sessionOptions{}
	addSessionFlags(cmd, o)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, o
}

func TestSessionOptionsApply(t *testing.T) {
	cmd, o := parseSessionFlags(t, "--filter", "contrast", "--alpha", "2", "--color", "Red", "--width", "320")
	c := config.Default()
	require.NoError(t, o.apply(cmd, c))

	assert.Equal(t, "contrast", c.Filter.Active)
	assert.Equal(t, 2.0, c.Filter.Settings.Alpha)
	assert.Equal(t, filter.ColorRed, c.Filter.Settings.Color)
	assert.Equal(t, 320, c.Capture.Width)
	assert.Equal(t, 480, c.Capture.Height, "unset flags keep the config value")
	assert.Equal(t, 4, c.Filter.Settings.Levels)
}

func TestSessionOptionsApplyErrors(t *testing.T) {
	cases := map[string][]string{
		"UnknownColor":      {"--color", "purple"},
		"NegativeSize":      {"--width", "-1"},
		"NegativeFrameRate": {"--fps", "-5"},
	}
	for name, args := range cases {
		args := args
		t.Run(name, func(t *testing.T) {
			cmd, o := parseSessionFlags(t, args...)
			assert.Error(t, o.apply(cmd, config.Default()))
		})
	}
}

func TestSourceConstraints(t *testing.T) {
	c := config.CaptureConfig{
		Device:      videotest.Label,
		DeviceType:  string(driver.TestPattern),
		Width:       320,
		FrameRate:   15,
		FrameFormat: string(frame.FormatRGB24),
	}
	sc := sourceConstraints(c)
	assert.Equal(t, videotest.Label, sc.Label)
	assert.Nil(t, sc.DeviceID)
	assert.Equal(t, driver.TestPattern, sc.DeviceType)
	assert.Equal(t, prop.Int(320), sc.Width)
	assert.Nil(t, sc.Height)
	assert.Equal(t, prop.Float(15), sc.FrameRate)
	assert.Equal(t, prop.FrameFormat(frame.FormatRGB24), sc.FrameFormat)

	ds := driver.GetManager().Query(driver.FilterLabel(videotest.Label))
	require.Len(t, ds, 1)
	sc = sourceConstraints(config.CaptureConfig{Device: ds[0].ID()})
	assert.Equal(t, prop.StringExact(ds[0].ID()), sc.DeviceID)
	assert.Empty(t, sc.Label)

	sc = sourceConstraints(config.CaptureConfig{
		Width:       640,
		Height:      480,
		ExactSize:   true,
		FrameFormat: "MJPEG,YUY2",
	})
	assert.Equal(t, prop.IntExact(640), sc.Width)
	assert.Equal(t, prop.IntExact(480), sc.Height)
	assert.Equal(t, prop.FrameFormatOneOf{frame.FormatMJPEG, frame.FormatYUY2}, sc.FrameFormat)
}

func TestNewSelector(t *testing.T) {
	c := config.Default()
	c.Filter.Active = "posterize"
	c.Filter.Settings.Levels = 8

	s := newSelector(c)
	assert.Equal(t, filter.PosterizeParams{Levels: 8}, s.Current())
	assert.Equal(t, c.Filter.Skin, s.SkinRange())
}

func TestRunFilters(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	runFilters(cmd)

	out := buf.String()
	for _, id := range filter.IDs() {
		assert.Contains(t, out, string(id))
	}
	assert.Contains(t, out, "none|red|green|blue")
	assert.Contains(t, out, "kernel_size")
}

func TestFormatBound(t *testing.T) {
	assert.Equal(t, "3", formatBound(3))
	assert.Equal(t, "-255", formatBound(-255))
	assert.Equal(t, "0.5", formatBound(0.5))
}

func TestReadCommands(t *testing.T) {
	cfg = config.Default()
	src := frame.New(4, 4)
	s := mediafilter.NewSession(video.ReaderFunc(func() (image.Image, func(), error) {
		return src, func() {}, nil
	}))
	_, err := s.Next()
	require.NoError(t, err)

	dir := t.TempDir()
	in := strings.NewReader("Contrast\nset beta 40\nset alpha nope\nset gamma 1\nset levels\n\nbogus\nsave " + filepath.Join(dir, "shot.png") + "\nquit\nblur\n")
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	readCommands(ctx, cancel, in, &out, s)

	assert.Equal(t, filter.ContrastParams{Alpha: 1, Beta: 40}, s.Current())
	assert.Equal(t, 0, cfg.Filter.Settings.Beta, "set does not touch the loaded config")
	assert.Contains(t, out.String(), "set failed: invalid value for alpha")
	assert.Contains(t, out.String(), `set failed: unknown parameter "gamma"`)
	assert.Contains(t, out.String(), "usage: set <param> <value>")
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Contains(t, out.String(), "saved "+filepath.Join(dir, "shot.png"))
	assert.ErrorIs(t, ctx.Err(), context.Canceled, "quit cancels the run")
}

func TestSnapCommand(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	output := filepath.Join(t.TempDir(), "snap.png")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{
		"snap", output,
		"--device", videotest.Label,
		"--fps", "500",
		"--warmup", "1",
		"--filter", "posterize",
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Contains(t, buf.String(), "Saved "+output)
	_, err := os.Stat(output)
	assert.NoError(t, err)
}
