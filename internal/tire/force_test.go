package tire

import (
	"errors"
	"math"
	"testing"
)

func TestNewParams(t *testing.T) {
	p, err := NewParams(1.0, 50000)
	if err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	if p.Mu != 1.0 || p.Ck != 50000 {
		t.Errorf("params not stored: %+v", p)
	}

	tests := []struct {
		name   string
		mu, ck float64
	}{
		{"zero mu", 0, 50000},
		{"negative mu", -0.5, 50000},
		{"zero ck", 1.0, 0},
		{"negative ck", 1.0, -100},
		{"nan mu", math.NaN(), 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParams(tt.mu, tt.ck); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestComputeFx_KnownValues(t *testing.T) {
	p := DefaultParams()

	// kappa=0.01, Fz=1200: FxMax=1200, arg=50000*0.01/1200, Fx ~ 472.5 N
	fx := ComputeFx(0.01, 1200, p)
	if math.Abs(fx-472.5) > 1.0 {
		t.Errorf("Fx(0.01, 1200) = %f, want ~472.5", fx)
	}

	// kappa=1.0: deep saturation, Fx ~ FxMax = 1200
	fx = ComputeFx(1.0, 1200, p)
	if math.Abs(fx-1200) > 0.01 {
		t.Errorf("Fx(1.0, 1200) = %f, want ~1200", fx)
	}
}

func TestComputeFx_ZeroSlipExact(t *testing.T) {
	p := DefaultParams()
	for _, fz := range []float64{0, 600, 900, 1200} {
		if fx := ComputeFx(0, fz, p); fx != 0 {
			t.Errorf("Fx(0, %g) = %g, want exactly 0", fz, fx)
		}
	}
}

func TestComputeFx_NoLoad(t *testing.T) {
	p := DefaultParams()
	for _, kappa := range []float64{-1, -0.1, 0, 0.01, 0.5, 100} {
		if fx := ComputeFx(kappa, 0, p); fx != 0 {
			t.Errorf("Fx(%g, 0) = %g, want 0", kappa, fx)
		}
		if fx := ComputeFx(kappa, -500, p); fx != 0 {
			t.Errorf("Fx(%g, -500) = %g, want 0", kappa, fx)
		}
	}
}

func TestComputeFx_Antisymmetry(t *testing.T) {
	p := DefaultParams()
	for _, kappa := range []float64{1e-9, 1e-4, 0.01, 0.15, 0.25, 1, 40} {
		pos := ComputeFx(kappa, 900, p)
		neg := ComputeFx(-kappa, 900, p)
		if neg != -pos {
			t.Errorf("Fx(-%g) = %g, want exactly %g", kappa, neg, -pos)
		}
	}
}

func TestComputeFx_SaturationBound(t *testing.T) {
	p := Params{Mu: 0.8, Ck: 30000}
	for _, fz := range []float64{600, 900, 1200} {
		bound := p.Mu * fz
		for _, kappa := range Linspace(-2, 2, 401) {
			fx := ComputeFx(kappa, fz, p)
			if math.Abs(fx) > bound {
				t.Fatalf("|Fx(%g, %g)| = %g exceeds Mu*Fz = %g", kappa, fz, math.Abs(fx), bound)
			}
		}
	}
}

func TestComputeFx_SmallSlipLinearity(t *testing.T) {
	p := DefaultParams()
	kappa := 1e-6
	fx := ComputeFx(kappa, 1200, p)
	linear := p.Ck * kappa // 0.05
	if math.Abs(fx-linear)/linear > 1e-9 {
		t.Errorf("Fx(%g) = %.12g, want %.12g within 1e-9 relative", kappa, fx, linear)
	}
}

func TestComputeFx_NonFinitePropagation(t *testing.T) {
	p := DefaultParams()
	if fx := ComputeFx(math.NaN(), 900, p); !math.IsNaN(fx) {
		t.Errorf("Fx(NaN) = %g, want NaN", fx)
	}
	// tanh saturates at infinity, so Inf slip gives the bound, not Inf
	if fx := ComputeFx(math.Inf(1), 900, p); fx != 900 {
		t.Errorf("Fx(+Inf, 900) = %g, want 900", fx)
	}
}

func TestSweepFx(t *testing.T) {
	p := DefaultParams()
	kappa := Linspace(-0.25, 0.25, 200)
	fx := SweepFx(kappa, 900, p)

	if len(fx) != len(kappa) {
		t.Fatalf("expected %d outputs, got %d", len(kappa), len(fx))
	}
	for i := range kappa {
		if fx[i] != ComputeFx(kappa[i], 900, p) {
			t.Fatalf("sweep diverges from scalar eval at index %d", i)
		}
	}

	if err := CheckForceCurve(kappa, fx, 900, p); err != nil {
		t.Errorf("sweep failed curve check: %v", err)
	}
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{0, 1, 0, []float64{}},
		{2, 5, 1, []float64{2}},
		{0, 1, 3, []float64{0, 0.5, 1}},
		{-1, 1, 2, []float64{-1, 1}},
	}
	for _, tt := range tests {
		got := Linspace(tt.lo, tt.hi, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Linspace(%g,%g,%d) len = %d, want %d", tt.lo, tt.hi, tt.n, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("Linspace(%g,%g,%d)[%d] = %g, want %g", tt.lo, tt.hi, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}
