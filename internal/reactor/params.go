package reactor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/bioreactor/internal/dynamo"
)

var (
	ErrZeroVolume   = fmt.Errorf("%w: reactor volume must be nonzero", dynamo.ErrParameterBounds)
	ErrZeroYield    = fmt.Errorf("%w: yield coefficient must be nonzero", dynamo.ErrParameterBounds)
	ErrUnknownParam = errors.New("reactor: unknown parameter")
)

// Params are the reactor and kinetic constants of one run.
type Params struct {
	MuMax         float64 `yaml:"mu_max" json:"mu_max"`                 // maximum specific growth rate, 1/h
	Ks            float64 `yaml:"ks" json:"ks"`                         // half-saturation constant, g/L
	Yield         float64 `yaml:"yield" json:"yield"`                   // g biomass / g substrate
	Volume        float64 `yaml:"volume" json:"volume"`                 // L
	Feed          float64 `yaml:"feed" json:"feed"`                     // L/h
	FeedSubstrate float64 `yaml:"feed_substrate" json:"feed_substrate"` // g/L
}

func (p Params) Validate() error {
	if p.Volume == 0 {
		return ErrZeroVolume
	}
	if p.Yield == 0 {
		return ErrZeroYield
	}
	return nil
}

// Dilution returns D = F/V. Callers must Validate first.
func (p Params) Dilution() float64 {
	return p.Feed / p.Volume
}

// Growth returns the Monod specific growth rate μ(s) and whether it is defined.
func (p Params) Growth(s float64) (float64, bool) {
	den := p.Ks + s
	if den == 0 {
		return 0, false
	}
	return p.MuMax * s / den, true
}

// SteadyState returns the non-trivial steady state. ok is false when the
// only steady state is washout (X = 0, S = Sr).
func (p Params) SteadyState() (x, s float64, ok bool) {
	if p.Validate() != nil {
		return 0, 0, false
	}
	d := p.Dilution()
	if d >= p.MuMax || d <= 0 {
		return 0, p.FeedSubstrate, false
	}
	s = p.Ks * d / (p.MuMax - d)
	if s >= p.FeedSubstrate {
		return 0, p.FeedSubstrate, false
	}
	return p.Yield * (p.FeedSubstrate - s), s, true
}

// Washout reports whether the dilution rate is too high to sustain biomass.
func (p Params) Washout() bool {
	_, _, ok := p.SteadyState()
	return !ok
}

// CriticalDilution is the dilution rate above which washout occurs: μ(Sr).
func (p Params) CriticalDilution() float64 {
	mu, _ := p.Growth(p.FeedSubstrate)
	return mu
}

var paramNames = map[string]func(*Params) *float64{
	"mu_max":         func(p *Params) *float64 { return &p.MuMax },
	"ks":             func(p *Params) *float64 { return &p.Ks },
	"yield":          func(p *Params) *float64 { return &p.Yield },
	"volume":         func(p *Params) *float64 { return &p.Volume },
	"feed":           func(p *Params) *float64 { return &p.Feed },
	"feed_substrate": func(p *Params) *float64 { return &p.FeedSubstrate },
}

func (p Params) GetParams() map[string]float64 {
	out := make(map[string]float64, len(paramNames))
	for name, field := range paramNames {
		out[name] = *field(&p)
	}
	return out
}

func (p *Params) SetParam(name string, value float64) error {
	field, ok := paramNames[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	*field(p) = value
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(paramNames))
	for name := range paramNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
