package reactor

import (
	"errors"
	"fmt"

	"github.com/san-kum/bioreactor/internal/dynamo"
	"github.com/san-kum/bioreactor/internal/integrators"
)

// Integrate advances the reactor from (t0, x0, s0) by steps fixed RK4 steps
// of size h and returns steps+1 rows.
func Integrate(t0, x0, s0, y, h, muMax, ks, v, f, sr float64, steps int) (Trajectory, error) {
	p := Params{
		MuMax:         muMax,
		Ks:            ks,
		Yield:         y,
		Volume:        v,
		Feed:          f,
		FeedSubstrate: sr,
	}
	return Run(p, Point{T: t0, X: x0, S: s0}, h, steps)
}

// Run integrates p from init with the RK4 stepper.
func Run(p Params, init Point, h float64, steps int) (Trajectory, error) {
	return RunWith(p, init, h, steps, integrators.NewRK4())
}

// RunWith integrates p from init using integ. The step order is fixed: time
// advances by exactly h and the new row is appended after each step.
func RunWith(p Params, init Point, h float64, steps int, integ dynamo.Integrator) (Trajectory, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrNegativeSteps, steps)
	}
	model, err := NewModel(p)
	if err != nil {
		return nil, err
	}

	traj := make(Trajectory, 0, steps+1)
	traj = append(traj, init)

	t := init.T
	x := init.State()
	for i := 0; i < steps; i++ {
		next, err := integ.Step(model, x, t, h)
		if err != nil {
			return nil, stepError(i, t, x, err)
		}
		t += h
		x = next
		traj = append(traj, Point{T: t, X: x[0], S: x[1]})
	}

	return traj, nil
}

func stepError(step int, t float64, x dynamo.State, err error) error {
	var simErr *dynamo.SimulationError
	if errors.As(err, &simErr) {
		return err
	}
	return &dynamo.SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: err}
}
