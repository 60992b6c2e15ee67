// Package app wires configuration, logging and the richtext field together
// and replays interaction scripts against a bound field.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoField indicates the markup holds no matching richtext field.
	ErrNoField = errors.New("app: no richtext field")

	// ErrUnknownTarget indicates a click target that matches no element.
	ErrUnknownTarget = errors.New("app: unknown click target")

	// ErrNoOpenDialog indicates a fill step while no dialog is open.
	ErrNoOpenDialog = errors.New("app: no open dialog")

	// ErrUnknownField indicates a fill step naming a field the dialog lacks.
	ErrUnknownField = errors.New("app: unknown dialog field")

	// ErrInvalidStep indicates a script step with zero or several actions.
	ErrInvalidStep = errors.New("app: step must name exactly one action")
)

// OperationError represents an error that occurred during a script step.
type OperationError struct {
	Op     string // Step kind (e.g., "click", "select", "fill")
	Target string // Target of the step, if any
	Step   int    // Zero-based step index
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(step int, op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Step:   step,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := fmt.Sprintf("step %d: %s", e.Step+1, e.Op)
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Target)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
