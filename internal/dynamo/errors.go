package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for explorer operations. Apart from ErrBackendUnavailable,
// these are recovered locally and only ever logged.
var (
	// ErrInvalidResolution indicates a non-positive width or height.
	ErrInvalidResolution = errors.New("dynamo: resolution must be positive")

	// ErrInvalidIterationBound indicates an iteration bound below 1.
	ErrInvalidIterationBound = errors.New("dynamo: iteration bound must be at least 1")

	// ErrInvalidZoomFactor indicates a zoom factor that is not strictly positive.
	ErrInvalidZoomFactor = errors.New("dynamo: zoom factor must be positive")

	// ErrNoKernel indicates a frame was requested before any formula compiled.
	ErrNoKernel = errors.New("dynamo: no kernel compiled")

	// ErrBackendUnavailable indicates a compute backend cannot run on this host.
	ErrBackendUnavailable = errors.New("dynamo: compute backend unavailable")

	// ErrUnknownMode indicates a mode name that is not recognised.
	ErrUnknownMode = errors.New("dynamo: unknown mode")
)

// RecoveredError records a recoverable condition together with the value
// that was substituted for the rejected input.
type RecoveredError struct {
	Op      string
	Got     any
	Used    any
	Wrapped error
}

func (e *RecoveredError) Error() string {
	return fmt.Sprintf("%s: %v (got %v, using %v)", e.Op, e.Wrapped, e.Got, e.Used)
}

func (e *RecoveredError) Unwrap() error {
	return e.Wrapped
}
