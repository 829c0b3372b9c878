package ops

import "fmt"

// TypeCheckError reports an input that fails an operation's type contract
// (wrong input count or unsupported dtype). It is fatal to the call and is
// raised before any forward computation happens.
type TypeCheckError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *TypeCheckError) Error() string {
	return fmt.Sprintf("%s: type check failed: %s", e.Op, e.Reason)
}

// NewTypeCheckError creates a TypeCheckError for the named operation.
func NewTypeCheckError(op, format string, args ...any) *TypeCheckError {
	return &TypeCheckError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ShapeError reports a shape or axis that is invalid for an operation's
// input. It is fatal to the call.
type ShapeError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape check failed: %s", e.Op, e.Reason)
}

// NewShapeError creates a ShapeError for the named operation.
func NewShapeError(op, format string, args ...any) *ShapeError {
	return &ShapeError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
