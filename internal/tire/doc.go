// Package tire implements a longitudinal tire force model with smooth
// saturation, and the slip power/energy dissipation derived from it.
//
// The force model maps slip ratio, normal load, and parameters to a
// longitudinal force:
//
//	Fx = FxMax * tanh(Ck * kappa / FxMax),  FxMax = Mu * Fz
//
// tanh gives a linear small-slip regime (Fx ~ Ck*kappa) that saturates
// smoothly at +/- Mu*Fz, so the static-to-sliding friction transition has a
// continuous derivative with no piecewise kink. The dissipation side computes
// instantaneous slip power Pdiss = |Fx * kappa * V| and accumulates energy
// over a time grid with a left-to-right fold.
//
// All functions here are pure and total over finite inputs: a zero or
// negative load yields zero force rather than an error, and NaN/Inf inputs
// propagate per floating-point semantics. The only validation in the package
// is [NewParams], which rejects non-positive Mu or Ck at construction time.
package tire
