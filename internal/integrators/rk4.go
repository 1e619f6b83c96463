package integrators

import "github.com/san-kum/bioreactor/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta stepper in increment form:
// each stage stores K = dt*f, and the update is x + (K1+2K2+2K3+K4)/6.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// stage evaluates sys at (x, t) and stores dt*f in k.
func stage(sys dynamo.System, x dynamo.State, t, dt float64, k dynamo.State) error {
	f, err := sys.Derive(x, t)
	if err != nil {
		return err
	}
	for i := range k {
		k[i] = dt * f[i]
	}
	return nil
}

// Step advances x by one step of size dt. Stage times t+dt/2, t+dt/2 and
// t+dt are passed to sys even when it is autonomous.
func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := dynamo.CheckDim(sys, x); err != nil {
		return nil, err
	}
	n := len(x)
	r.ensureScratch(n)

	if err := stage(sys, x, t, dt, r.k1); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + r.k1[i]/2
	}
	if err := stage(sys, r.scratch, t+dt/2, dt, r.k2); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + r.k2[i]/2
	}
	if err := stage(sys, r.scratch, t+dt/2, dt, r.k3); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + r.k3[i]
	}
	if err := stage(sys, r.scratch, t+dt, dt, r.k4); err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + (1.0/6.0)*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result, nil
}
