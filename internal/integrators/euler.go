package integrators

import "github.com/san-kum/bioreactor/internal/dynamo"

// Euler is the explicit first-order stepper. It exists to compare against RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t float64, dt float64) (dynamo.State, error) {
	if err := dynamo.CheckDim(sys, x); err != nil {
		return nil, err
	}
	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result, nil
}
