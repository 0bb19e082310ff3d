package gridform

import (
	"errors"
	"fmt"
)

// Sentinel errors for common canvas failure conditions.
var (
	ErrClosed       = errors.New("gridform: canvas is finalized")
	ErrInvalidParam = errors.New("gridform: invalid parameter")
)

// CanvasError represents an error that occurred during a specific canvas
// operation. It wraps an underlying error and includes the operation name.
type CanvasError struct {
	Op  string // operation name, e.g. "Image", "Output"
	Err error  // underlying error
}

func (e *CanvasError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gridform.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gridform.%s: unknown error", e.Op)
}

func (e *CanvasError) Unwrap() error {
	return e.Err
}

// newCanvasError creates a CanvasError wrapping err with operation context.
func newCanvasError(op string, err error) *CanvasError {
	return &CanvasError{Op: op, Err: err}
}
