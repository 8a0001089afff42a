// Package feedforward is the public entry point to the single-hidden-layer
// network engine.
package feedforward

import (
	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
)

// Re-export common types and functions for easier access
type (
	Model      = model.Model
	Config     = model.Config
	Params     = model.Params
	Prediction = model.Prediction
	Vector     = linalg.Vector
	Matrix     = linalg.Matrix
	Activation = activations.Kind
)

// Errors
var (
	ErrInvalidConfiguration = model.ErrInvalidConfiguration
	ErrDimensionMismatch    = model.ErrDimensionMismatch
	ErrNumericalInstability = model.ErrNumericalInstability
)

// Activations
const (
	Sigmoid = activations.KindSigmoid
	Tanh    = activations.KindTanh
)

// DefaultInitRange is the width of the interval initial parameters are drawn from.
const DefaultInitRange = model.DefaultInitRange

// Model creation
func New(cfg Config) (*Model, error) {
	return model.New(cfg)
}

func FromParams(cfg Config, p Params) (*Model, error) {
	return model.FromParams(cfg, p)
}

// Vectors
func VectorFrom(values ...float64) Vector {
	return linalg.VectorFrom(values...)
}

func NewVector(n int) (Vector, error) {
	return linalg.NewVector(n)
}

func ParseActivation(s string) (Activation, error) {
	return activations.Parse(s)
}
