package metrics

import "github.com/san-kum/bioreactor/internal/reactor"

const DefaultWashoutThreshold = 1e-3

// Washout is the fraction of rows whose biomass is below threshold.
type Washout struct {
	threshold  float64
	violations int
	samples    int
}

func NewWashout(threshold float64) *Washout {
	return &Washout{threshold: threshold}
}

func (w *Washout) Name() string { return "washout" }

func (w *Washout) Observe(p reactor.Point) {
	w.samples++
	if p.X < w.threshold {
		w.violations++
	}
}

func (w *Washout) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return float64(w.violations) / float64(w.samples)
}

func (w *Washout) Reset() {
	w.violations = 0
	w.samples = 0
}
