package tire

import "errors"

// Domain errors for model configuration and curve checks.
var (
	// ErrInvalidParameter indicates a non-positive friction coefficient or
	// stiffness, which would make the saturation formula ill-defined.
	ErrInvalidParameter = errors.New("tire: invalid parameter (Mu and Ck must be positive)")

	// ErrCurveCheck indicates a computed curve violated a model sanity check.
	ErrCurveCheck = errors.New("tire: curve check failed")
)
