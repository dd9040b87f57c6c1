package main

import (
	"fmt"

	"github.com/pion/mediafilter"
	"github.com/pion/mediafilter/internal/config"
	"github.com/pion/mediafilter/pkg/driver"
	"github.com/pion/mediafilter/pkg/export"
	"github.com/pion/mediafilter/pkg/filter"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
	"github.com/spf13/cobra"
)

// sessionOptions holds the capture and filter flags shared by snap and run.
// Flags that are set override the config file.
type sessionOptions struct {
	Device     string
	DeviceType string
	Width      int
	Height     int
	FrameRate  float32

	Filter      string
	Alpha       float64
	Beta        int
	Levels      int
	KernelSize  int
	Color       string
	KBarrel     float64
	KPincushion float64
}

func addSessionFlags(cmd *cobra.Command, o *sessionOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.Device, "device", "d", "", "Driver label or ID (default: best match)")
	f.StringVar(&o.DeviceType, "device-type", "", "Driver type: camera, screen, testpattern")
	f.IntVar(&o.Width, "width", 0, "Capture width")
	f.IntVar(&o.Height, "height", 0, "Capture height")
	f.Float32Var(&o.FrameRate, "fps", 0, "Capture frame rate")

	f.StringVarP(&o.Filter, "filter", "f", "", "Filter: original, contrast, posterize, blur, alien, distort")
	f.Float64Var(&o.Alpha, "alpha", 0, "Contrast gain [0,3]")
	f.IntVar(&o.Beta, "beta", 0, "Brightness offset [-255,255]")
	f.IntVar(&o.Levels, "levels", 0, "Posterize levels [1,64]")
	f.IntVar(&o.KernelSize, "kernel-size", 0, "Blur kernel size [1,255]")
	f.StringVar(&o.Color, "color", "", "Alien skin color: none, red, green, blue")
	f.Float64Var(&o.KBarrel, "k-barrel", 0, "Barrel distortion coefficient")
	f.Float64Var(&o.KPincushion, "k-pincushion", 0, "Pincushion distortion coefficient")
}

// apply copies the flags set on cmd into c.
func (o *sessionOptions) apply(cmd *cobra.Command, c *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("device") {
		c.Capture.Device = o.Device
	}
	if changed("device-type") {
		c.Capture.DeviceType = o.DeviceType
	}
	if changed("width") {
		c.Capture.Width = o.Width
	}
	if changed("height") {
		c.Capture.Height = o.Height
	}
	if changed("fps") {
		c.Capture.FrameRate = o.FrameRate
	}

	s := &c.Filter.Settings
	if changed("filter") {
		c.Filter.Active = o.Filter
	}
	if changed("alpha") {
		s.Alpha = o.Alpha
	}
	if changed("beta") {
		s.Beta = o.Beta
	}
	if changed("levels") {
		s.Levels = o.Levels
	}
	if changed("kernel-size") {
		s.KernelSize = o.KernelSize
	}
	if changed("color") {
		color, err := filter.ParseColor(o.Color)
		if err != nil {
			return err
		}
		s.Color = color
	}
	if changed("k-barrel") {
		s.KBarrel = o.KBarrel
	}
	if changed("k-pincushion") {
		s.KPincushion = o.KPincushion
	}

	return config.Validate(c)
}

// sourceConstraints turns the capture section into source constraints.
// Device matches a driver ID first and a label otherwise.
func sourceConstraints(c config.CaptureConfig) mediafilter.SourceConstraints {
	var sc mediafilter.SourceConstraints
	sc.DeviceType = driver.DeviceType(c.DeviceType)
	if c.Device != "" {
		if len(driver.GetManager().Query(driver.FilterID(c.Device))) > 0 {
			sc.DeviceID = prop.StringExact(c.Device)
		} else {
			sc.Label = c.Device
		}
	}
	switch {
	case c.ExactSize:
		sc.Width = prop.IntExact(c.Width)
		sc.Height = prop.IntExact(c.Height)
	default:
		if c.Width > 0 {
			sc.Width = prop.Int(c.Width)
		}
		if c.Height > 0 {
			sc.Height = prop.Int(c.Height)
		}
	}
	if c.FrameRate > 0 {
		sc.FrameRate = prop.Float(c.FrameRate)
	}
	switch formats := c.FrameFormats(); len(formats) {
	case 0:
	case 1:
		sc.FrameFormat = prop.FrameFormat(formats[0])
	default:
		sc.FrameFormat = prop.FrameFormatOneOf(formats)
	}
	return sc
}

func newSelector(c *config.Config) *filter.Selector {
	initial := c.Filter.Settings.Params(filter.ParseID(c.Filter.Active))
	return filter.NewSelector(
		filter.WithSkinRange(c.Filter.Skin),
		filter.WithInitial(initial),
	)
}

// openSession opens the source described by c and wraps it in a Session.
func openSession(c *config.Config, transforms ...video.TransformFunc) (*mediafilter.Session, error) {
	scaler, err := video.ParseScaler(c.Preview.Scaler)
	if err != nil {
		return nil, err
	}

	src, err := mediafilter.OpenVideoSource(sourceConstraints(c.Capture))
	if err != nil {
		return nil, fmt.Errorf("failed to open video source: %w", err)
	}

	opts := []mediafilter.SessionOption{
		mediafilter.WithSelector(newSelector(c)),
		mediafilter.WithTransformers(transforms...),
		mediafilter.WithExportOptions(export.WithQuality(c.Output.Quality)),
	}
	if !c.Preview.Disabled() {
		opts = append(opts, mediafilter.WithPreviewSize(c.Preview.Width, c.Preview.Height, scaler))
	}
	return mediafilter.NewSession(src, opts...), nil
}
