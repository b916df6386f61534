package profile

import (
	"math"
	"testing"
)

func TestRampHold(t *testing.T) {
	r := NewRampHold(0.15, 1.5)

	tests := []struct {
		t    float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.75, 0.075},
		{1.5, 0.15},
		{3.0, 0.15},
	}
	for _, tt := range tests {
		if got := r.Kappa(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Kappa(%g) = %g, want %g", tt.t, got, tt.want)
		}
	}
}

func TestRampHold_ZeroRampTime(t *testing.T) {
	r := NewRampHold(0.2, 0)
	if got := r.Kappa(0); got != 0.2 {
		t.Errorf("zero ramp time should hold immediately, got %g", got)
	}
}

func TestStep(t *testing.T) {
	s := NewStep(0.1, 1.0)
	if got := s.Kappa(0.99); got != 0 {
		t.Errorf("before step: got %g", got)
	}
	if got := s.Kappa(1.0); got != 0.1 {
		t.Errorf("at step: got %g", got)
	}
}

func TestSine(t *testing.T) {
	s := NewSine(0.1, 1.0)
	if got := s.Kappa(0); got != 0 {
		t.Errorf("Kappa(0) = %g, want 0", got)
	}
	if got := s.Kappa(0.25); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("quarter period: got %g, want 0.1", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	p, err := r.Get("ramp", map[string]float64{"kappa_max": 0.2, "ramp_time": 2.0})
	if err != nil {
		t.Fatalf("get ramp: %v", err)
	}
	if got := p.Kappa(1.0); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("custom ramp Kappa(1) = %g, want 0.1", got)
	}

	if _, err := r.Get("nonexistent", nil); err == nil {
		t.Error("expected error for unknown profile")
	}

	if len(r.List()) != 4 {
		t.Errorf("expected 4 profiles, got %d", len(r.List()))
	}
}

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry()
	p, err := r.Get("ramp", nil)
	if err != nil {
		t.Fatalf("get ramp: %v", err)
	}
	if got := p.Kappa(10); got != 0.15 {
		t.Errorf("default ramp hold value = %g, want 0.15", got)
	}
}

func TestSample(t *testing.T) {
	p := NewConstant(0.05)
	kappa := Sample(p, []float64{0, 1, 2})
	if len(kappa) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(kappa))
	}
	for i, k := range kappa {
		if k != 0.05 {
			t.Errorf("sample %d = %g, want 0.05", i, k)
		}
	}
}
