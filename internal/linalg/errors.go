package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when two operands have incompatible lengths.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidShape is returned when a vector or matrix is built with a non-positive size.
	ErrInvalidShape = errors.New("invalid shape")
)

// DimensionError describes a failed length check. It matches ErrDimensionMismatch
// with errors.Is.
type DimensionError struct {
	Op   string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %v: want %d, got %d", e.Op, ErrDimensionMismatch, e.Want, e.Got)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

func mismatch(op string, want, got int) error {
	return &DimensionError{Op: op, Want: want, Got: got}
}
