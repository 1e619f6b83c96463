// Package reactor models a continuous stirred-tank bioreactor (CSTB) with
// Monod growth kinetics and integrates it with fixed-step RK4.
//
// The model tracks biomass X and substrate S (both g/L):
//
//	dX/dt = μ(S)·X − D·X
//	dS/dt = D·(Sr − S) − μ(S)·X/y
//	μ(S)  = μmax·S/(Ks + S),  D = F/V
//
// [Integrate] and [Run] return a [Trajectory] whose row i is the state after
// i steps of size h. Rows are never clamped: negative or diverging
// concentrations are valid output. Points where the model is undefined
// (V = 0, y = 0, Ks + S = 0) fail with an error wrapping [dynamo.ErrDomain]
// or [dynamo.ErrParameterBounds].
//
// # Example
//
//	traj, err := reactor.Integrate(0, 1.0, 10.0, 0.5, 0.1, 0.4, 2.0, 100, 10, 20, 5)
//	if err != nil {
//	    return err
//	}
//	last := traj.Last()
package reactor
