package slice

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a plan or box reaching past a dimension.
	ErrOutOfBounds = errors.New("slice: index out of bounds")

	// ErrInvalidPlan indicates a plan with a non-positive count or stride or
	// a rank that does not match the variable.
	ErrInvalidPlan = errors.New("slice: invalid plan")

	// ErrRank indicates a variable without the two spatial axes.
	ErrRank = errors.New("slice: variable needs at least two dimensions")

	// ErrShapeMismatch indicates the reader returned a slab of an
	// unexpected size.
	ErrShapeMismatch = errors.New("slice: slab shape mismatch")
)

// ReadError wraps a failed read of one slab of a variable.
type ReadError struct {
	Variable string
	Index    int
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s[%d]: %v", e.Variable, e.Index, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
