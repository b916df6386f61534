// Package config loads experiment configuration from YAML and carries the
// calibration defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMu       = 1.0
	DefaultCk       = 50000.0
	DefaultV        = 20.0
	DefaultKappaMin = -0.25
	DefaultKappaMax = 0.25
	DefaultPoints   = 200
	DefaultDuration = 3.0
	DefaultSteps    = 300
	DefaultTraceFz  = 900.0
	DefaultRampMax  = 0.15
	DefaultRampTime = 1.5
)

type Config struct {
	Mu    float64     `yaml:"mu"`
	Ck    float64     `yaml:"ck"`
	V     float64     `yaml:"v"`
	Loads []float64   `yaml:"loads"`
	Sweep SweepConfig `yaml:"sweep"`
	Trace TraceConfig `yaml:"trace"`
}

type SweepConfig struct {
	KappaMin float64 `yaml:"kappa_min"`
	KappaMax float64 `yaml:"kappa_max"`
	Points   int     `yaml:"points"`
}

type TraceConfig struct {
	Duration  float64 `yaml:"duration"`
	Steps     int     `yaml:"steps"`
	Fz        float64 `yaml:"fz"`
	Profile   string  `yaml:"profile"`
	KappaMax  float64 `yaml:"kappa_max"`
	RampTime  float64 `yaml:"ramp_time"`
	StepTime  float64 `yaml:"step_time"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

func DefaultConfig() *Config {
	return &Config{
		Mu:    DefaultMu,
		Ck:    DefaultCk,
		V:     DefaultV,
		Loads: []float64{600, 900, 1200},
		Sweep: SweepConfig{
			KappaMin: DefaultKappaMin,
			KappaMax: DefaultKappaMax,
			Points:   DefaultPoints,
		},
		Trace: TraceConfig{
			Duration: DefaultDuration,
			Steps:    DefaultSteps,
			Fz:       DefaultTraceFz,
			Profile:  "ramp",
			KappaMax: DefaultRampMax,
			RampTime: DefaultRampTime,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// ProfileParams flattens the trace profile settings into the parameter map
// the profile registry consumes.
func (c *Config) ProfileParams() map[string]float64 {
	return map[string]float64{
		"kappa_max": c.Trace.KappaMax,
		"ramp_time": c.Trace.RampTime,
		"step_time": c.Trace.StepTime,
		"amplitude": c.Trace.Amplitude,
		"frequency": c.Trace.Frequency,
		"kappa":     c.Trace.KappaMax,
	}
}
