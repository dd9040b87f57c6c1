package filter

import (
	"sync/atomic"

	"github.com/pion/mediafilter/internal/logging"
	"github.com/pion/mediafilter/pkg/frame"
)

var logger = logging.NewLogger("mediafilter/filter")

// Apply runs the filter selected by p on f using DefaultSkinRange.
// nil and unknown params return f untouched.
func Apply(f *frame.Frame, p Params) (*frame.Frame, error) {
	return apply(f, p, DefaultSkinRange)
}

func apply(f *frame.Frame, p Params, skin SkinRange) (*frame.Frame, error) {
	switch v := p.(type) {
	case ContrastParams:
		return Contrast(f, v.Alpha, v.Beta)
	case PosterizeParams:
		return Posterize(f, v.Levels)
	case BlurParams:
		return BoxBlur(f, v.KernelSize)
	case AlienParams:
		return ReplaceSkinTone(f, v.Color, skin)
	case DistortParams:
		return Distort(f, v.KBarrel, v.KPincushion)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithSkinRange sets the range the Alien filter treats as skin.
func WithSkinRange(r SkinRange) SelectorOption {
	return func(s *Selector) {
		s.skin = r
	}
}

// WithInitial sets the filter selected before the first Select.
func WithInitial(p Params) SelectorOption {
	return func(s *Selector) {
		s.current.Store(&selection{params: Sanitize(p)})
	}
}

type selection struct {
	params Params
}

// Selector holds the active filter. Select may be called from any goroutine
// while another goroutine runs Apply; each Apply uses the selection current
// when it starts.
type Selector struct {
	current atomic.Pointer[selection]
	skin    SkinRange
}

// NewSelector creates a Selector with OriginalParams active.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{skin: DefaultSkinRange}
	s.current.Store(&selection{params: OriginalParams{}})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select makes p the active filter, clamping its parameters.
func (s *Selector) Select(p Params) {
	p = Sanitize(p)
	prev := s.current.Swap(&selection{params: p})
	if prev == nil || prev.params != p {
		logger.Debugf("filter selected: %s %+v", p.ID(), p)
	}
}

// Current returns the active filter.
func (s *Selector) Current() Params {
	return s.current.Load().params
}

// SkinRange returns the range the Alien filter uses.
func (s *Selector) SkinRange() SkinRange {
	return s.skin
}

// Apply runs the active filter on f.
func (s *Selector) Apply(f *frame.Frame) (*frame.Frame, error) {
	return apply(f, s.current.Load().params, s.skin)
}
