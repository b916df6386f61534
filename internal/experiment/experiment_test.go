package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/tirelab/tiresim/internal/profile"
	"github.com/tirelab/tiresim/internal/tire"
)

func defaultSweep() SweepConfig {
	return SweepConfig{
		KappaMin: -0.25,
		KappaMax: 0.25,
		Points:   200,
		Loads:    []float64{600, 900, 1200},
		V:        20,
		Params:   tire.DefaultParams(),
	}
}

func TestRunSweep(t *testing.T) {
	result, err := RunSweep(context.Background(), defaultSweep())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(result.Kappa) != 200 {
		t.Errorf("expected 200 kappa points, got %d", len(result.Kappa))
	}
	if len(result.Curves) != 3 {
		t.Fatalf("expected 3 curves, got %d", len(result.Curves))
	}

	for _, curve := range result.Curves {
		if len(curve.Fx) != 200 || len(curve.Pdiss) != 200 {
			t.Fatalf("curve for Fz=%g has mismatched lengths", curve.Fz)
		}
		bound := 1.0 * curve.Fz
		for i, fx := range curve.Fx {
			if math.Abs(fx) > bound {
				t.Fatalf("Fz=%g: |Fx|=%g exceeds bound %g at index %d", curve.Fz, math.Abs(fx), bound, i)
			}
		}
	}

	// heavier load carries more force at the same slip
	mid := 180 // kappa ~ 0.2, well saturated
	if result.Curves[2].Fx[mid] <= result.Curves[0].Fx[mid] {
		t.Error("expected larger force under larger load")
	}
}

func TestRunSweep_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SweepConfig)
	}{
		{"one point", func(c *SweepConfig) { c.Points = 1 }},
		{"empty range", func(c *SweepConfig) { c.KappaMin, c.KappaMax = 0.1, 0.1 }},
		{"no loads", func(c *SweepConfig) { c.Loads = nil }},
		{"bad params", func(c *SweepConfig) { c.Params.Mu = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultSweep()
			tt.mutate(&cfg)
			if _, err := RunSweep(context.Background(), cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunSweep_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunSweep(ctx, defaultSweep()); err == nil {
		t.Error("expected context error")
	}
}

func defaultTrace() TraceConfig {
	return TraceConfig{
		Duration: 3.0,
		Steps:    300,
		Fz:       900,
		V:        20,
		Profile:  profile.NewRampHold(0.15, 1.5),
		Params:   tire.DefaultParams(),
	}
}

func TestRunTrace(t *testing.T) {
	cfg := defaultTrace()
	result, err := RunTrace(context.Background(), cfg, DefaultMetrics(cfg.Fz, cfg.Params))
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	if len(result.Times) != 300 {
		t.Fatalf("expected 300 samples, got %d", len(result.Times))
	}
	for _, ch := range [][]float64{result.Kappa, result.Fx, result.Pdiss, result.Ediss} {
		if len(ch) != 300 {
			t.Fatal("channel length mismatch")
		}
	}

	for i := 1; i < len(result.Ediss); i++ {
		if result.Ediss[i] < result.Ediss[i-1] {
			t.Fatalf("Ediss decreased at index %d", i)
		}
	}

	if result.Metrics["total_energy"] != result.Ediss[len(result.Ediss)-1] {
		t.Error("total_energy metric should equal final Ediss")
	}
	if result.Metrics["peak_force"] <= 0 {
		t.Error("expected positive peak force")
	}
	if result.Metrics["peak_power"] < result.Metrics["mean_power"] {
		t.Error("peak power should be >= mean power")
	}

	// the ramp ends well into saturation for Fz=900: Fx approaches Mu*Fz
	finalFx := result.Fx[len(result.Fx)-1]
	if math.Abs(finalFx-900) > 1 {
		t.Errorf("final Fx = %g, want ~900 (saturated)", finalFx)
	}
}

func TestRunTrace_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TraceConfig)
	}{
		{"zero duration", func(c *TraceConfig) { c.Duration = 0 }},
		{"one step", func(c *TraceConfig) { c.Steps = 1 }},
		{"nil profile", func(c *TraceConfig) { c.Profile = nil }},
		{"bad params", func(c *TraceConfig) { c.Params.Ck = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTrace()
			tt.mutate(&cfg)
			if _, err := RunTrace(context.Background(), cfg, nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunTrace_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunTrace(ctx, defaultTrace(), nil); err == nil {
		t.Error("expected context error")
	}
}

func TestParallelFor(t *testing.T) {
	n := 100
	hits := make([]int, n)
	ParallelFor(n, 8, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestParallelFor_SmallN(t *testing.T) {
	count := 0
	ParallelFor(3, 10, func(start, end int) {
		count += end - start
	})
	if count != 3 {
		t.Errorf("expected 3 iterations, got %d", count)
	}
}
