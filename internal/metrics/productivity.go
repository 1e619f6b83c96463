package metrics

import "github.com/san-kum/bioreactor/internal/reactor"

// Productivity is the mean volumetric biomass productivity D·X, g/L/h.
type Productivity struct {
	dilution float64
	sum      float64
	samples  int
}

func NewProductivity(p reactor.Params) *Productivity {
	d := 0.0
	if p.Volume != 0 {
		d = p.Dilution()
	}
	return &Productivity{dilution: d}
}

func (m *Productivity) Name() string { return "productivity" }

func (m *Productivity) Observe(p reactor.Point) {
	m.sum += m.dilution * p.X
	m.samples++
}

func (m *Productivity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Productivity) Reset() {
	m.sum = 0
	m.samples = 0
}

// Conversion is the fraction of feed substrate consumed at the last observed row.
type Conversion struct {
	feed  float64
	last  float64
	valid bool
}

func NewConversion(p reactor.Params) *Conversion {
	return &Conversion{feed: p.FeedSubstrate}
}

func (m *Conversion) Name() string { return "conversion" }

func (m *Conversion) Observe(p reactor.Point) {
	m.last = p.S
	m.valid = true
}

func (m *Conversion) Value() float64 {
	if !m.valid || m.feed == 0 {
		return 0
	}
	return 1 - m.last/m.feed
}

func (m *Conversion) Reset() {
	m.last = 0
	m.valid = false
}
