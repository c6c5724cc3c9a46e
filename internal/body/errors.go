package body

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidBodies indicates a body set with non-positive masses or
	// NaN/Inf positions or momenta.
	ErrInvalidBodies = errors.New("body: invalid body set (non-positive mass or NaN/Inf detected)")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("body: simulation unstable (state diverged)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("body: parameter out of valid bounds")
)

// SimulationError wraps an error with tick context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
