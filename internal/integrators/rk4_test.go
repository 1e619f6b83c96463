package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bioreactor/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{x[1], -x[0]}, nil
}

func (s *simpleDynamics) StateDim() int { return 2 }

// timeRecorder is dx/dt = t and records every stage time it sees.
type timeRecorder struct {
	times []float64
}

func (r *timeRecorder) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	r.times = append(r.times, t)
	return dynamo.State{t}, nil
}

func (r *timeRecorder) StateDim() int { return 1 }

var errBoom = errors.New("boom")

type failingDynamics struct {
	failOn int
	calls  int
}

func (f *failingDynamics) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, errBoom
	}
	return dynamo.State{0}, nil
}

func (f *failingDynamics) StateDim() int { return 1 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	var err error
	for i := 0; i < steps; i++ {
		x, err = integ.Step(dyn, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4StageTimes(t *testing.T) {
	rec := &timeRecorder{}
	integ := NewRK4()

	x, err := integ.Step(rec, dynamo.State{0}, 1.0, 0.5)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	want := []float64{1.0, 1.25, 1.25, 1.5}
	if len(rec.times) != len(want) {
		t.Fatalf("expected %d stage evaluations, got %d", len(want), len(rec.times))
	}
	for i := range want {
		if rec.times[i] != want[i] {
			t.Errorf("stage %d: time %v, want %v", i+1, rec.times[i], want[i])
		}
	}

	// x' = t is integrated exactly by RK4: (1.5^2 - 1^2)/2
	if math.Abs(x[0]-0.625) > 1e-12 {
		t.Errorf("expected 0.625, got %v", x[0])
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1.0, 0.0}

	next, err := integ.Step(&simpleDynamics{}, x, 0, 0.1)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if x[0] != 1.0 || x[1] != 0.0 {
		t.Errorf("input mutated: %v", x)
	}

	next[0] = 42
	again, _ := integ.Step(&simpleDynamics{}, x, 0, 0.1)
	if again[0] == 42 {
		t.Error("result aliases integrator scratch")
	}
}

func TestRK4PropagatesDeriveError(t *testing.T) {
	for stage := 1; stage <= 4; stage++ {
		dyn := &failingDynamics{failOn: stage}
		_, err := NewRK4().Step(dyn, dynamo.State{1}, 0, 0.1)
		if !errors.Is(err, errBoom) {
			t.Errorf("stage %d: expected errBoom, got %v", stage, err)
		}
		if dyn.calls != stage {
			t.Errorf("stage %d: derive called %d times after failure", stage, dyn.calls)
		}
	}
}

func TestStepDimensionMismatch(t *testing.T) {
	for _, name := range Names() {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		_, err = integ.Step(&simpleDynamics{}, dynamo.State{1}, 0, 0.1)
		if !errors.Is(err, dynamo.ErrDimensionMismatch) {
			t.Errorf("%s: expected ErrDimensionMismatch, got %v", name, err)
		}
	}
}

func TestEulerFirstOrder(t *testing.T) {
	x, err := NewEuler().Step(&simpleDynamics{}, dynamo.State{1.0, 0.0}, 0, 0.1)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if x[0] != 1.0 || x[1] != -0.1 {
		t.Errorf("unexpected euler step: %v", x)
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "euler" || names[1] != "rk4" {
		t.Errorf("unexpected names: %v", names)
	}

	if _, err := New("verlet"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}

	a, _ := New("rk4")
	b, _ := New("rk4")
	if a == b {
		t.Error("New should return independent instances")
	}
}
