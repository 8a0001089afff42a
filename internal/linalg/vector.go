// Package linalg provides the fixed-length vectors and matrices used by the network.
//
// Lengths are fixed when a value is created and never change. Every binary
// operation checks its operands before computing anything and reports
// ErrDimensionMismatch instead of producing a partial result.
package linalg

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vector is an immutable sequence of float64 values with a fixed length.
// The zero value is an empty vector.
type Vector struct {
	data []float64
}

// NewVector returns a vector of n zeros.
func NewVector(n int) (Vector, error) {
	if n <= 0 {
		return Vector{}, fmt.Errorf("vector of length %d: %w", n, ErrInvalidShape)
	}
	return Vector{data: make([]float64, n)}, nil
}

// VectorFrom copies values into a new vector.
func VectorFrom(values ...float64) Vector {
	data := make([]float64, len(values))
	copy(data, values)
	return Vector{data: data}
}

// Generate builds a vector of length n whose i-th element is f(i).
func Generate(n int, f func(i int) float64) (Vector, error) {
	if n <= 0 {
		return Vector{}, fmt.Errorf("vector of length %d: %w", n, ErrInvalidShape)
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = f(i)
	}
	return Vector{data: data}, nil
}

// Len returns the number of elements.
func (v Vector) Len() int {
	return len(v.data)
}

// At returns the i-th element.
func (v Vector) At(i int) float64 {
	return v.data[i]
}

// Raw returns a copy of the elements.
func (v Vector) Raw() []float64 {
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// Equal reports whether both vectors have the same length and the same elements.
// NaNs compare equal.
func (v Vector) Equal(other Vector) bool {
	return floats.Same(v.data, other.data)
}

// IsFinite reports whether no element is NaN or infinite.
func (v Vector) IsFinite() bool {
	return allFinite(v.data)
}

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v.data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.4f", x)
	}
	b.WriteByte(']')
	return b.String()
}

// Dot returns the sum of a[i]*b[i].
func Dot(a, b Vector) (float64, error) {
	if a.Len() != b.Len() {
		return 0, mismatch("dot", a.Len(), b.Len())
	}
	return floats.Dot(a.data, b.data), nil
}

// Sum returns the sum of the elements.
func Sum(v Vector) float64 {
	return floats.Sum(v.data)
}

// Map applies f to every element.
func Map(v Vector, f func(x float64) float64) Vector {
	out := make([]float64, len(v.data))
	for i, x := range v.data {
		out[i] = f(x)
	}
	return Vector{data: out}
}

// MapPair combines a and b element by element.
func MapPair(a, b Vector, f func(x, y float64) float64) (Vector, error) {
	if a.Len() != b.Len() {
		return Vector{}, mismatch("map pair", a.Len(), b.Len())
	}
	out := make([]float64, len(a.data))
	for i := range a.data {
		out[i] = f(a.data[i], b.data[i])
	}
	return Vector{data: out}, nil
}

// AddScaled returns a + alpha*b.
func AddScaled(a Vector, alpha float64, b Vector) (Vector, error) {
	if a.Len() != b.Len() {
		return Vector{}, mismatch("add scaled", a.Len(), b.Len())
	}
	out := make([]float64, len(a.data))
	floats.AddScaledTo(out, a.data, alpha, b.data)
	return Vector{data: out}, nil
}

func allFinite(data []float64) bool {
	for _, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
