// Package automation runs scripted sequences of experiments from a YAML
// scenario file.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tirelab/tiresim/internal/config"
	"github.com/tirelab/tiresim/internal/experiment"
	"github.com/tirelab/tiresim/internal/profile"
	"github.com/tirelab/tiresim/internal/storage"
	"github.com/tirelab/tiresim/internal/tire"
)

// Scenario defines a scripted experiment sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single experiment in a scenario. Zero-valued fields fall
// back to the calibration defaults.
type ScenarioStep struct {
	Kind          string             `yaml:"kind"` // "sweep" or "trace"
	Mu            float64            `yaml:"mu"`
	Ck            float64            `yaml:"ck"`
	V             float64            `yaml:"v"`
	Fz            float64            `yaml:"fz"`
	Loads         []float64          `yaml:"loads"`
	KappaMin      float64            `yaml:"kappa_min"`
	KappaMax      float64            `yaml:"kappa_max"`
	Points        int                `yaml:"points"`
	Duration      float64            `yaml:"duration"`
	Steps         int                `yaml:"steps"`
	Profile       string             `yaml:"profile"`
	ProfileParams map[string]float64 `yaml:"profile_params"`
}

// StepOutcome reports one executed step.
type StepOutcome struct {
	Kind    string
	RunID   string
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario executes all steps in order, saving each run to the store.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, registry *profile.Registry) ([]StepOutcome, error) {
	outcomes := make([]StepOutcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		outcome, err := runStep(ctx, step, st, registry)
		if err != nil {
			return outcomes, fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func runStep(ctx context.Context, step ScenarioStep, st *storage.Store, registry *profile.Registry) (StepOutcome, error) {
	params := tire.Params{
		Mu: orDefault(step.Mu, config.DefaultMu),
		Ck: orDefault(step.Ck, config.DefaultCk),
	}
	v := orDefault(step.V, config.DefaultV)

	switch step.Kind {
	case "sweep":
		cfg := experiment.SweepConfig{
			KappaMin: orDefault(step.KappaMin, config.DefaultKappaMin),
			KappaMax: orDefault(step.KappaMax, config.DefaultKappaMax),
			Points:   orDefaultInt(step.Points, config.DefaultPoints),
			Loads:    step.Loads,
			V:        v,
			Params:   params,
		}
		if len(cfg.Loads) == 0 {
			cfg.Loads = []float64{600, 900, 1200}
		}
		result, err := experiment.RunSweep(ctx, cfg)
		if err != nil {
			return StepOutcome{}, err
		}
		runID, err := st.SaveSweep(cfg, result)
		if err != nil {
			return StepOutcome{}, err
		}
		return StepOutcome{Kind: "sweep", RunID: runID}, nil

	case "trace":
		profName := step.Profile
		if profName == "" {
			profName = "ramp"
		}
		prof, err := registry.Get(profName, step.ProfileParams)
		if err != nil {
			return StepOutcome{}, err
		}
		cfg := experiment.TraceConfig{
			Duration: orDefault(step.Duration, config.DefaultDuration),
			Steps:    orDefaultInt(step.Steps, config.DefaultSteps),
			Fz:       orDefault(step.Fz, config.DefaultTraceFz),
			V:        v,
			Profile:  prof,
			Params:   params,
		}
		result, err := experiment.RunTrace(ctx, cfg, experiment.DefaultMetrics(cfg.Fz, params))
		if err != nil {
			return StepOutcome{}, err
		}
		runID, err := st.SaveTrace(cfg, result)
		if err != nil {
			return StepOutcome{}, err
		}
		return StepOutcome{Kind: "trace", RunID: runID, Metrics: result.Metrics}, nil

	default:
		return StepOutcome{}, fmt.Errorf("unknown step kind: %q", step.Kind)
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
