package config

import (
	"sort"

	"github.com/san-kum/bioreactor/internal/reactor"
)

var Presets = map[string]*Config{
	"reference": {
		Integrator: "rk4",
		H:          0.1,
		Steps:      5,
		Init:       InitStateConfig{X: 1.0, S: 10.0},
		Params:     defaultParams(),
	},
	"startup": {
		Integrator: "rk4",
		H:          0.1,
		Steps:      1000,
		Init:       InitStateConfig{X: 0.1, S: 20.0},
		Params:     defaultParams(),
	},
	"steady": {
		Integrator: "rk4",
		H:          0.1,
		Steps:      500,
		Init:       InitStateConfig{X: 29.0 / 3.0, S: 2.0 / 3.0},
		Params:     defaultParams(),
	},
	"washout": {
		Integrator: "rk4",
		H:          0.1,
		Steps:      500,
		Init:       InitStateConfig{X: 5.0, S: 5.0},
		Params:     withFeed(defaultParams(), 50),
	},
	"batch": {
		Integrator: "rk4",
		H:          0.05,
		Steps:      800,
		Init:       InitStateConfig{X: 0.5, S: 20.0},
		Params:     withFeed(defaultParams(), 0),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultParams() reactor.Params {
	return DefaultConfig().Params
}

func withFeed(p reactor.Params, feed float64) reactor.Params {
	p.Feed = feed
	return p
}
