package tire

import "fmt"

const (
	DefaultMu = 1.0
	DefaultCk = 50000.0
)

// Params holds the tire model parameters. Values are never mutated after
// construction; Mu*Fz defines the saturation asymptote of the force curve.
type Params struct {
	Mu float64 // peak friction coefficient
	Ck float64 // longitudinal stiffness (N per unit slip)
}

// NewParams validates and returns model parameters. Mu <= 0 or Ck <= 0 is
// rejected here rather than producing degenerate forces per call.
func NewParams(mu, ck float64) (Params, error) {
	if !(mu > 0) {
		return Params{}, fmt.Errorf("%w: Mu=%g", ErrInvalidParameter, mu)
	}
	if !(ck > 0) {
		return Params{}, fmt.Errorf("%w: Ck=%g", ErrInvalidParameter, ck)
	}
	return Params{Mu: mu, Ck: ck}, nil
}

func DefaultParams() Params {
	return Params{Mu: DefaultMu, Ck: DefaultCk}
}
