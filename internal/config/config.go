// Package config loads the mediafilter YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pion/mediafilter/internal/logging"
	"github.com/pion/mediafilter/pkg/filter"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "MEDIAFILTER_CONFIG"

var logger = logging.NewLogger("mediafilter/config")

// Config represents the complete mediafilter configuration
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Capture  CaptureConfig `yaml:"capture"`
	Filter   FilterConfig  `yaml:"filter"`
	Preview  PreviewConfig `yaml:"preview"`
	Output   OutputConfig  `yaml:"output"`
}

// CaptureConfig selects and configures the frame source
type CaptureConfig struct {
	Device      string  `yaml:"device"`      // driver label or ID, empty picks the best match
	DeviceType  string  `yaml:"device_type"` // camera, screen, testpattern
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FrameRate   float32 `yaml:"frame_rate"`
	FrameFormat string  `yaml:"frame_format"` // preferred format, or a comma-separated list of accepted ones
	ExactSize   bool    `yaml:"exact_size"`   // reject drivers without the exact width and height
}

// FrameFormats splits FrameFormat into its entries.
func (c CaptureConfig) FrameFormats() []frame.Format {
	var formats []frame.Format
	for _, name := range strings.Split(c.FrameFormat, ",") {
		if name = strings.TrimSpace(name); name != "" {
			formats = append(formats, frame.Format(name))
		}
	}
	return formats
}

// FilterConfig holds the initial filter selection
type FilterConfig struct {
	Active   string           `yaml:"active"`
	Settings filter.Settings  `yaml:"settings"`
	Skin     filter.SkinRange `yaml:"skin"`
}

// PreviewConfig sizes the displayed frame. Zero width and height disable
// scaling.
type PreviewConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scaler string `yaml:"scaler"`
}

// Disabled reports whether frames are shown at capture size.
func (p PreviewConfig) Disabled() bool {
	return p.Width == 0 && p.Height == 0
}

// OutputConfig controls saved snapshots
type OutputConfig struct {
	Path    string `yaml:"path"`
	Quality int    `yaml:"quality"` // JPEG only
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: "",
		Capture: CaptureConfig{
			Width:     640,
			Height:    480,
			FrameRate: 30,
		},
		Filter: FilterConfig{
			Active:   string(filter.IDOriginal),
			Settings: filter.DefaultSettings(),
			Skin:     filter.DefaultSkinRange,
		},
		Preview: PreviewConfig{
			Width:  500,
			Height: 500,
			Scaler: "bilinear",
		},
		Output: OutputConfig{
			Path:    "capture.jpg",
			Quality: 90,
		},
	}
}

// ResolvePath returns path, or the value of EnvPath when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(EnvPath)
}

// Load reads and parses a YAML configuration file on top of Default. An
// empty path falls back to EnvPath; no path at all, or a missing file,
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	path = ResolvePath(path)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debugf("loaded config from %s", path)
	return cfg, nil
}

// Validate checks cross-field constraints the YAML schema can't express.
func Validate(cfg *Config) error {
	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}
	}

	c := cfg.Capture
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("capture: negative size %dx%d", c.Width, c.Height)
	}
	if c.FrameRate < 0 {
		return fmt.Errorf("capture: negative frame rate %v", c.FrameRate)
	}
	for _, format := range c.FrameFormats() {
		if _, err := frame.NewDecoder(format); err != nil {
			return fmt.Errorf("capture: %w", err)
		}
	}
	if c.ExactSize && (c.Width == 0 || c.Height == 0) {
		return fmt.Errorf("capture: exact_size needs both width and height")
	}

	if err := cfg.Filter.Skin.Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	p := cfg.Preview
	if p.Width <= 0 && p.Height <= 0 && !p.Disabled() {
		return fmt.Errorf("preview: invalid size %dx%d", p.Width, p.Height)
	}
	if _, err := video.ParseScaler(p.Scaler); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	if cfg.Output.Quality < 1 || cfg.Output.Quality > 100 {
		return fmt.Errorf("output: quality %d out of [1,100]", cfg.Output.Quality)
	}
	return nil
}
