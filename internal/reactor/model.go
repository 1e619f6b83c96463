package reactor

import (
	"fmt"

	"github.com/san-kum/bioreactor/internal/dynamo"
)

// ErrSingularSaturation is returned when Ks + S is zero at an evaluated point.
var ErrSingularSaturation = fmt.Errorf("%w: Ks + S is zero", dynamo.ErrDomain)

// Model is the CSTB right-hand side over the state {X, S}. It is
// time-autonomous: Derive ignores t.
type Model struct {
	p Params
	d float64
}

// NewModel validates p and fixes the dilution rate for the run.
func NewModel(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{p: p, d: p.Dilution()}, nil
}

func (m *Model) StateDim() int { return 2 }

func (m *Model) Derive(x dynamo.State, _ float64) (dynamo.State, error) {
	X, S := x[0], x[1]
	den := m.p.Ks + S
	if den == 0 {
		return nil, ErrSingularSaturation
	}
	dx := (m.p.MuMax*X*S)/den - X*m.d
	ds := m.d*(m.p.FeedSubstrate-S) - (m.p.MuMax*S/den)*(X/m.p.Yield)
	return dynamo.State{dx, ds}, nil
}
