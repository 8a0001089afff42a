// Package activations provides the nonlinearities a model can be built with.
//
// Each activation exposes its derivative as a function of its own output,
// so backpropagation never needs the pre-activation sums.
package activations

import (
	"fmt"
	"math"
	"strings"
)

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes y = f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given y = f(x)
	Derivative(y float64) float64
}

// Sigmoid activation function.
type Sigmoid struct{}

// Activate computes 1 / (1 + e^-x)
func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative computes y * (1 - y)
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - y^2
func (t Tanh) Derivative(y float64) float64 {
	return 1 - y*y
}

// Kind selects the model-wide activation. The zero value is KindSigmoid.
type Kind int

const (
	KindSigmoid Kind = iota
	KindTanh
)

// Parse returns the Kind named by s ("sigmoid" or "tanh", case-insensitive).
func Parse(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sigmoid":
		return KindSigmoid, nil
	case "tanh":
		return KindTanh, nil
	default:
		return 0, fmt.Errorf("unknown activation %q", s)
	}
}

// Activation returns the function for k, or nil if k is not a known kind.
func (k Kind) Activation() Activation {
	switch k {
	case KindSigmoid:
		return Sigmoid{}
	case KindTanh:
		return Tanh{}
	default:
		return nil
	}
}

// Valid reports whether k names a known activation.
func (k Kind) Valid() bool {
	return k.Activation() != nil
}

func (k Kind) String() string {
	switch k {
	case KindSigmoid:
		return "sigmoid"
	case KindTanh:
		return "tanh"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown activation %v", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
