package tire

import (
	"fmt"
	"math"
)

// Sanity thresholds for computed curves. These mirror the physical shape of
// the model: near-zero force at zero slip, >80% saturation past |kappa|=0.2,
// and near-linearity below |kappa|=0.005.
const (
	zeroSlipEps      = 1e-6
	zeroForceTol     = 1e-3
	saturationSlip   = 0.2
	saturationFloor  = 0.8
	linearSlipLo     = 1e-4
	linearSlipHi     = 5e-3
	linearRelTol     = 0.15
	linearDenomGuard = 1e-10
)

// CheckForceCurve verifies that a computed force curve has the expected
// shape for the given load and parameters. It returns a wrapped
// [ErrCurveCheck] on the first violation.
func CheckForceCurve(kappa, fx []float64, fz float64, p Params) error {
	if len(kappa) != len(fx) {
		return fmt.Errorf("%w: kappa/fx length mismatch (%d vs %d)", ErrCurveCheck, len(kappa), len(fx))
	}
	fxMax := p.Mu * fz

	for i, k := range kappa {
		f := fx[i]

		if math.Abs(k) < zeroSlipEps {
			if math.Abs(f) >= zeroForceTol {
				return fmt.Errorf("%w: Fx=%g at kappa=%g, expected ~0", ErrCurveCheck, f, k)
			}
			continue
		}

		if math.Signbit(f) != math.Signbit(k) && f != 0 {
			return fmt.Errorf("%w: Fx=%g opposes kappa=%g", ErrCurveCheck, f, k)
		}

		if fxMax > 0 && math.Abs(k) > saturationSlip {
			if ratio := math.Abs(f) / fxMax; ratio <= saturationFloor {
				return fmt.Errorf("%w: saturation ratio %.3f at kappa=%g, expected > %.2f",
					ErrCurveCheck, ratio, k, saturationFloor)
			}
		}

		if fxMax > 0 && math.Abs(k) > linearSlipLo && math.Abs(k) < linearSlipHi {
			linear := p.Ck * k
			relErr := math.Abs(f-linear) / (math.Abs(linear) + linearDenomGuard)
			if relErr >= linearRelTol {
				return fmt.Errorf("%w: relative linearity error %.2f%% at kappa=%g",
					ErrCurveCheck, relErr*100, k)
			}
		}
	}
	return nil
}

// CheckDissipation verifies that dissipated power is non-negative everywhere
// and vanishes at zero slip.
func CheckDissipation(kappa, pdiss []float64) error {
	if len(kappa) != len(pdiss) {
		return fmt.Errorf("%w: kappa/pdiss length mismatch (%d vs %d)", ErrCurveCheck, len(kappa), len(pdiss))
	}
	for i, k := range kappa {
		p := pdiss[i]
		if p < 0 {
			return fmt.Errorf("%w: negative Pdiss=%g at kappa=%g", ErrCurveCheck, p, k)
		}
		if math.Abs(k) < zeroSlipEps && p >= zeroForceTol {
			return fmt.Errorf("%w: Pdiss=%g at kappa=%g, expected ~0", ErrCurveCheck, p, k)
		}
	}
	return nil
}
