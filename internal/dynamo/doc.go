// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for autonomous or time-dependent ODE systems (dX/dt = f(X, t))
//   - [Integrator]: single-step numerical integrator interface
//
// A [System] reports domain failures (a singular term, an undefined rate)
// through its error return. Integrators stop at the first such error and
// never substitute NaN or Inf for it.
//
// # Example
//
//	model, _ := reactor.NewModel(params)
//	integ := integrators.NewRK4()
//	next, err := integ.Step(model, dynamo.State{x, s}, t, h)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT thread-safe. Use one
// integrator per goroutine.
package dynamo
