package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for animation operations.
var (
	// ErrInvalidState indicates a NaN or Inf value was produced.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: run canceled by context")

	// ErrMissingTarget indicates a configuration without a target value.
	ErrMissingTarget = errors.New("dynamo: to_value is required")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// SimulationError wraps an error with frame context.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Wrapped.Error())
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
