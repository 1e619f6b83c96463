package main

import (
	"fmt"

	"github.com/san-kum/bioreactor/internal/config"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	// Model inputs
	t0     float64
	x0     float64
	s0     float64
	yield  float64
	h      float64
	muMax  float64
	ks     float64
	volume float64
	feed   float64
	sr     float64
	steps  int
	// Config file and preset
	configFile string
	preset     string
	// Command options
	integratorName string
	format         string
	every          int
	out            string
	width          int
	height         int
	feeds          []float64
	saveConfig     string
)

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&t0, "t0", 0, "initial time (h)")
	f.Float64Var(&x0, "x0", config.DefaultX0, "initial biomass (g/L)")
	f.Float64Var(&s0, "s0", config.DefaultS0, "initial substrate (g/L)")
	f.Float64Var(&yield, "yield", config.DefaultYield, "yield coefficient (g biomass / g substrate)")
	f.Float64Var(&h, "h", config.DefaultH, "step size (h)")
	f.Float64Var(&muMax, "mumax", config.DefaultMuMax, "maximum growth rate (1/h)")
	f.Float64Var(&ks, "ks", config.DefaultKs, "half-saturation constant (g/L)")
	f.Float64Var(&volume, "volume", config.DefaultVolume, "reactor volume (L)")
	f.Float64Var(&feed, "feed", config.DefaultFeed, "feed flow rate (L/h)")
	f.Float64Var(&sr, "sr", config.DefaultFeedSubstrate, "feed substrate concentration (g/L)")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of RK4 steps")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, then the preset, then the config file, then
// any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *float64
		src  float64
	}{
		{"t0", &cfg.Init.T, t0},
		{"x0", &cfg.Init.X, x0},
		{"s0", &cfg.Init.S, s0},
		{"yield", &cfg.Params.Yield, yield},
		{"h", &cfg.H, h},
		{"mumax", &cfg.Params.MuMax, muMax},
		{"ks", &cfg.Params.Ks, ks},
		{"volume", &cfg.Params.Volume, volume},
		{"feed", &cfg.Params.Feed, feed},
		{"sr", &cfg.Params.FeedSubstrate, sr},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dst = o.src
		}
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}

	return cfg, nil
}
