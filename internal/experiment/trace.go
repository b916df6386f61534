package experiment

import (
	"context"
	"fmt"

	"github.com/tirelab/tiresim/internal/metrics"
	"github.com/tirelab/tiresim/internal/profile"
	"github.com/tirelab/tiresim/internal/tire"
)

type TraceConfig struct {
	Duration float64
	Steps    int
	Fz       float64
	V        float64
	Profile  profile.Profile
	Params   tire.Params
}

// TraceResult holds the aligned time-series channels of a time-domain run.
// Ediss is the running energy integral; Metrics are the observed summaries.
type TraceResult struct {
	Times   []float64
	Kappa   []float64
	Fx      []float64
	Pdiss   []float64
	Ediss   []float64
	Metrics map[string]float64
}

func (c TraceConfig) validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Steps < 2 {
		return fmt.Errorf("steps must be >= 2, got %d", c.Steps)
	}
	if c.Profile == nil {
		return fmt.Errorf("profile required")
	}
	if _, err := tire.NewParams(c.Params.Mu, c.Params.Ck); err != nil {
		return err
	}
	return nil
}

// DefaultMetrics returns the standard summaries observed during a trace run.
func DefaultMetrics(fz float64, p tire.Params) []metrics.Metric {
	return []metrics.Metric{
		metrics.NewPeakForce(),
		metrics.NewPeakPower(),
		metrics.NewMeanPower(),
		metrics.NewSaturationRatio(p.Mu * fz),
	}
}

// RunTrace samples the slip profile on a uniform time grid, computes force,
// power, and cumulative energy, and observes each sample with the supplied
// metrics. Only the energy integration is order-dependent; the per-sample
// computation is a straight left-to-right pass.
func RunTrace(ctx context.Context, cfg TraceConfig, ms []metrics.Metric) (*TraceResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	for _, m := range ms {
		m.Reset()
	}

	result := &TraceResult{
		Times:   tire.Linspace(0, cfg.Duration, cfg.Steps),
		Metrics: make(map[string]float64),
	}
	result.Kappa = make([]float64, cfg.Steps)
	result.Fx = make([]float64, cfg.Steps)
	result.Pdiss = make([]float64, cfg.Steps)

	for i, t := range result.Times {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		k := cfg.Profile.Kappa(t)
		fx := tire.ComputeFx(k, cfg.Fz, cfg.Params)
		pd := tire.ComputePdiss(fx, k, cfg.V)

		result.Kappa[i] = k
		result.Fx[i] = fx
		result.Pdiss[i] = pd

		for _, m := range ms {
			m.Observe(k, fx, pd, t)
		}
	}

	result.Ediss = tire.IntegrateEdiss(result.Times, result.Pdiss)

	if err := tire.CheckDissipation(result.Kappa, result.Pdiss); err != nil {
		return nil, err
	}

	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Metrics["total_energy"] = result.Ediss[len(result.Ediss)-1]

	return result, nil
}
