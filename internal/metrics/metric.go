// Package metrics summarizes a reactor trajectory after integration.
package metrics

import "github.com/san-kum/bioreactor/internal/reactor"

type Metric interface {
	Name() string
	Observe(p reactor.Point)
	Value() float64
	Reset()
}

// Evaluate resets each metric, feeds it every row of traj and collects the values.
func Evaluate(traj reactor.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range traj {
			m.Observe(p)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults returns the metrics reported for every run of p.
func Defaults(p reactor.Params) []Metric {
	return []Metric{
		NewProductivity(p),
		NewConversion(p),
		NewWashout(DefaultWashoutThreshold),
	}
}
