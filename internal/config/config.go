package config

import (
	"fmt"
	"os"

	"github.com/san-kum/bioreactor/internal/reactor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator    = "rk4"
	DefaultH             = 0.1
	DefaultSteps         = 500
	DefaultX0            = 1.0
	DefaultS0            = 10.0
	DefaultMuMax         = 0.4
	DefaultKs            = 2.0
	DefaultYield         = 0.5
	DefaultVolume        = 100.0
	DefaultFeed          = 10.0
	DefaultFeedSubstrate = 20.0
)

type Config struct {
	Integrator string          `yaml:"integrator"`
	H          float64         `yaml:"h"`
	Steps      int             `yaml:"steps"`
	Init       InitStateConfig `yaml:"init_state"`
	Params     reactor.Params  `yaml:"params"`
}

type InitStateConfig struct {
	T float64 `yaml:"t"`
	X float64 `yaml:"x"`
	S float64 `yaml:"s"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		H:          DefaultH,
		Steps:      DefaultSteps,
		Init: InitStateConfig{
			X: DefaultX0,
			S: DefaultS0,
		},
		Params: reactor.Params{
			MuMax:         DefaultMuMax,
			Ks:            DefaultKs,
			Yield:         DefaultYield,
			Volume:        DefaultVolume,
			Feed:          DefaultFeed,
			FeedSubstrate: DefaultFeedSubstrate,
		},
	}
}

// Load reads a YAML file over DefaultConfig, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a YAML file over a copy of base. Keys the file omits keep
// the value from base; base itself is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) InitPoint() reactor.Point {
	return reactor.Point{T: c.Init.T, X: c.Init.X, S: c.Init.S}
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
