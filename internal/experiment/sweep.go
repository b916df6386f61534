// Package experiment runs the two tire model experiments: a slip-ratio sweep
// across normal loads, and a time-domain trace over a slip profile.
package experiment

import (
	"context"
	"fmt"

	"github.com/tirelab/tiresim/internal/tire"
)

type SweepConfig struct {
	KappaMin float64
	KappaMax float64
	Points   int
	Loads    []float64
	V        float64
	Params   tire.Params
}

// LoadCurve holds the force and power curves for one normal load, aligned
// with SweepResult.Kappa.
type LoadCurve struct {
	Fz    float64
	Fx    []float64
	Pdiss []float64
}

type SweepResult struct {
	Kappa  []float64
	Curves []LoadCurve
}

func (c SweepConfig) validate() error {
	if c.Points < 2 {
		return fmt.Errorf("points must be >= 2, got %d", c.Points)
	}
	if c.KappaMax <= c.KappaMin {
		return fmt.Errorf("kappa range empty: [%g, %g]", c.KappaMin, c.KappaMax)
	}
	if len(c.Loads) == 0 {
		return fmt.Errorf("at least one load required")
	}
	if _, err := tire.NewParams(c.Params.Mu, c.Params.Ck); err != nil {
		return err
	}
	return nil
}

// RunSweep computes one force/power curve per load over a shared kappa grid.
// Curves are independent and evaluated concurrently; each finished curve is
// passed through the model sanity checks before the result is returned.
func RunSweep(ctx context.Context, cfg SweepConfig) (*SweepResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &SweepResult{
		Kappa:  tire.Linspace(cfg.KappaMin, cfg.KappaMax, cfg.Points),
		Curves: make([]LoadCurve, len(cfg.Loads)),
	}

	ParallelFor(len(cfg.Loads), 1, func(start, end int) {
		for i := start; i < end; i++ {
			fz := cfg.Loads[i]
			fx := tire.SweepFx(result.Kappa, fz, cfg.Params)
			result.Curves[i] = LoadCurve{
				Fz:    fz,
				Fx:    fx,
				Pdiss: tire.SweepPdiss(fx, result.Kappa, cfg.V),
			}
		}
	})

	for _, curve := range result.Curves {
		if err := tire.CheckForceCurve(result.Kappa, curve.Fx, curve.Fz, cfg.Params); err != nil {
			return nil, fmt.Errorf("load %g: %w", curve.Fz, err)
		}
		if err := tire.CheckDissipation(result.Kappa, curve.Pdiss); err != nil {
			return nil, fmt.Errorf("load %g: %w", curve.Fz, err)
		}
	}

	return result, nil
}
