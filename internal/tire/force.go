package tire

import "math"

// ComputeFx returns the longitudinal tire force for slip ratio kappa under
// normal load fz.
//
// The single-expression form FxMax*tanh(Ck*kappa/FxMax) is exactly
// antisymmetric in kappa (tanh is odd) and returns exactly 0 at kappa=0, so
// no sign or zero branch is needed. Fz <= 0 is the no-load case and yields
// zero force for any slip.
func ComputeFx(kappa, fz float64, p Params) float64 {
	fxMax := p.Mu * fz
	if fxMax <= 0 {
		return 0
	}
	return fxMax * math.Tanh(p.Ck*kappa/fxMax)
}

// SweepFx evaluates ComputeFx elementwise over a slip grid at a fixed load.
func SweepFx(kappa []float64, fz float64, p Params) []float64 {
	fx := make([]float64, len(kappa))
	for i, k := range kappa {
		fx[i] = ComputeFx(k, fz, p)
	}
	return fx
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
