// Package opt provides the gradient-descent update rule.
package opt

import "github.com/FlavioCFOliveira/feedforward/internal/linalg"

// SGD (Stochastic Gradient Descent) optimizer.
//
// Updates never modify their inputs: each step returns new containers so a
// caller can compute every delta from one consistent snapshot before
// committing any of them.
type SGD struct {
	LearningRate float64
}

// Step computes updated parameters: params - lr * gradients
func (s SGD) Step(params, gradients linalg.Vector) (linalg.Vector, error) {
	return linalg.AddScaled(params, -s.LearningRate, gradients)
}

// StepMatrix computes updated weights: weights - lr * gradients
func (s SGD) StepMatrix(weights, gradients linalg.Matrix) (linalg.Matrix, error) {
	return linalg.AddScaledMatrix(weights, -s.LearningRate, gradients)
}
