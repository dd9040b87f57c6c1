package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID names a filter.
type ID string

// Filter identifiers
const (
	IDOriginal  ID = "Original"
	IDContrast  ID = "Contrast"
	IDPosterize ID = "Posterize"
	IDBlur      ID = "Blur"
	IDAlien     ID = "Alien"
	IDDistort   ID = "Distort"
)

// IDs returns every filter identifier in menu order.
func IDs() []ID {
	return []ID{IDOriginal, IDContrast, IDPosterize, IDBlur, IDAlien, IDDistort}
}

// ParseID matches name against the filter identifiers ignoring case.
// Unknown names map to IDOriginal.
func ParseID(name string) ID {
	name = strings.TrimSpace(name)
	for _, id := range IDs() {
		if strings.EqualFold(string(id), name) {
			return id
		}
	}
	return IDOriginal
}

// Params selects a filter together with its parameters. The set of
// implementations is closed to this package.
type Params interface {
	ID() ID
	isParams()
}

// OriginalParams passes frames through untouched.
type OriginalParams struct{}

// ContrastParams configures Contrast.
type ContrastParams struct {
	Alpha float64
	Beta  int
}

// PosterizeParams configures Posterize.
type PosterizeParams struct {
	Levels int
}

// BlurParams configures BoxBlur.
type BlurParams struct {
	KernelSize int
}

// AlienParams configures ReplaceSkinTone.
type AlienParams struct {
	Color Color
}

// DistortParams configures Distort.
type DistortParams struct {
	KBarrel     float64
	KPincushion float64
}

func (OriginalParams) ID() ID  { return IDOriginal }
func (ContrastParams) ID() ID  { return IDContrast }
func (PosterizeParams) ID() ID { return IDPosterize }
func (BlurParams) ID() ID      { return IDBlur }
func (AlienParams) ID() ID     { return IDAlien }
func (DistortParams) ID() ID   { return IDDistort }

func (OriginalParams) isParams()  {}
func (ContrastParams) isParams()  {}
func (PosterizeParams) isParams() {}
func (BlurParams) isParams()      {}
func (AlienParams) isParams()     {}
func (DistortParams) isParams()   {}

// Parameter limits
const (
	MinAlpha  = 0.0
	MaxAlpha  = 3.0
	MinBeta   = -255
	MaxBeta   = 255
	MinLevels = 1
	MaxLevels = 64
	MinKernel = 1
)

// Sanitize clamps the parameters of p into their accepted ranges. nil
// becomes OriginalParams.
func Sanitize(p Params) Params {
	switch v := p.(type) {
	case ContrastParams:
		alpha := finiteOrZero(v.Alpha)
		if math.IsInf(v.Alpha, 1) {
			alpha = MaxAlpha
		}
		v.Alpha = math.Max(MinAlpha, math.Min(MaxAlpha, alpha))
		v.Beta = clampInt(v.Beta, MinBeta, MaxBeta)
		return v
	case PosterizeParams:
		v.Levels = clampInt(v.Levels, MinLevels, MaxLevels)
		return v
	case BlurParams:
		v.KernelSize = clampInt(v.KernelSize, MinKernel, MaxKernelSize)
		return v
	case DistortParams:
		v.KBarrel = finiteOrZero(v.KBarrel)
		v.KPincushion = finiteOrZero(v.KPincushion)
		return v
	case nil:
		return OriginalParams{}
	}
	return p
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Settings holds the value of every filter parameter at once, the way a
// control panel shows them. Params picks the active subset.
type Settings struct {
	Alpha       float64 `yaml:"alpha"`
	Beta        int     `yaml:"beta"`
	Levels      int     `yaml:"levels"`
	KernelSize  int     `yaml:"kernel_size"`
	Color       Color   `yaml:"color"`
	KBarrel     float64 `yaml:"k_barrel"`
	KPincushion float64 `yaml:"k_pincushion"`
}

// DefaultSettings returns the initial control values.
func DefaultSettings() Settings {
	return Settings{
		Alpha:      1.0,
		Beta:       0,
		Levels:     4,
		KernelSize: 3,
		Color:      ColorNone,
	}
}

// Params builds the parameters of filter id from s. Unknown identifiers
// yield OriginalParams.
func (s Settings) Params(id ID) Params {
	switch id {
	case IDContrast:
		return ContrastParams{Alpha: s.Alpha, Beta: s.Beta}
	case IDPosterize:
		return PosterizeParams{Levels: s.Levels}
	case IDBlur:
		return BlurParams{KernelSize: s.KernelSize}
	case IDAlien:
		return AlienParams{Color: s.Color}
	case IDDistort:
		return DistortParams{KBarrel: s.KBarrel, KPincushion: s.KPincushion}
	}
	return OriginalParams{}
}

// Set parses value into the parameter called name, using the names listed
// by Ranges. Values are stored as given; Sanitize clamps them on Select.
// s is left unchanged on error.
func (s *Settings) Set(name, value string) error {
	next := *s
	var err error
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alpha":
		next.Alpha, err = strconv.ParseFloat(value, 64)
	case "beta":
		next.Beta, err = strconv.Atoi(value)
	case "levels":
		next.Levels, err = strconv.Atoi(value)
	case "kernel_size":
		next.KernelSize, err = strconv.Atoi(value)
	case "color":
		next.Color, err = ParseColor(value)
	case "k_barrel":
		next.KBarrel, err = strconv.ParseFloat(value, 64)
	case "k_pincushion":
		next.KPincushion, err = strconv.ParseFloat(value, 64)
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}
	*s = next
	return nil
}

// Range describes one tunable parameter.
type Range struct {
	Filter  ID
	Name    string
	Min     float64
	Max     float64
	Default float64
	// Choices lists the accepted values of enumerated parameters.
	Choices []string
}

// Ranges returns the parameter table in menu order. Distortion
// coefficients are unbounded; their Min and Max are infinite.
func Ranges() []Range {
	d := DefaultSettings()
	colors := make([]string, 0, len(colorNames))
	for _, c := range []Color{ColorNone, ColorRed, ColorGreen, ColorBlue} {
		colors = append(colors, c.String())
	}
	return []Range{
		{Filter: IDContrast, Name: "alpha", Min: MinAlpha, Max: MaxAlpha, Default: d.Alpha},
		{Filter: IDContrast, Name: "beta", Min: MinBeta, Max: MaxBeta, Default: float64(d.Beta)},
		{Filter: IDPosterize, Name: "levels", Min: MinLevels, Max: MaxLevels, Default: float64(d.Levels)},
		{Filter: IDBlur, Name: "kernel_size", Min: MinKernel, Max: MaxKernelSize, Default: float64(d.KernelSize)},
		{Filter: IDAlien, Name: "color", Min: float64(ColorNone), Max: float64(ColorBlue), Default: float64(d.Color), Choices: colors},
		{Filter: IDDistort, Name: "k_barrel", Min: math.Inf(-1), Max: math.Inf(1), Default: d.KBarrel},
		{Filter: IDDistort, Name: "k_pincushion", Min: math.Inf(-1), Max: math.Inf(1), Default: d.KPincushion},
	}
}
