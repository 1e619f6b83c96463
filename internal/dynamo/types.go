package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an ODE right-hand side. Derive must not retain or mutate x.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) (State, error)
}

// CheckDim reports ErrDimensionMismatch when x does not fit sys.
func CheckDim(sys System, x State) error {
	if len(x) != sys.StateDim() {
		return fmt.Errorf("%w: state has %d components, system wants %d", ErrDimensionMismatch, len(x), sys.StateDim())
	}
	return nil
}
