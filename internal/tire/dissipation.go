package tire

import "math"

// SlipPower returns the signed slip power Fx * kappa * V.
func SlipPower(fx, kappa, v float64) float64 {
	return fx * kappa * v
}

// ComputePdiss returns the dissipated power |Fx * kappa * V|, the heat
// actually lost to slip. Always non-negative; zero whenever any factor is.
func ComputePdiss(fx, kappa, v float64) float64 {
	return math.Abs(SlipPower(fx, kappa, v))
}

// SweepPdiss evaluates ComputePdiss elementwise over aligned force and slip
// grids at a fixed speed.
func SweepPdiss(fx, kappa []float64, v float64) []float64 {
	pdiss := make([]float64, len(fx))
	for i := range fx {
		pdiss[i] = ComputePdiss(fx[i], kappa[i], v)
	}
	return pdiss
}

// IntegrateEdiss accumulates dissipated energy over a time grid. The result
// is aligned index-for-index with the inputs: E[0] = 0 and
// E[i] = E[i-1] + P[i]*(t[i]-t[i-1]).
//
// The rectangle rule using the current sample's power is deliberate and must
// not be swapped for a trapezoid: downstream results depend on reproducing
// these exact sums. Callers supply strictly increasing times; with
// non-negative power the output is then non-decreasing.
func IntegrateEdiss(times, pdiss []float64) []float64 {
	ediss := make([]float64, len(times))
	for i := 1; i < len(times); i++ {
		ediss[i] = ediss[i-1] + pdiss[i]*(times[i]-times[i-1])
	}
	return ediss
}
