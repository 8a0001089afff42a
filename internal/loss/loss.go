// Package loss provides the error measures used to monitor training.
package loss

import "github.com/FlavioCFOliveira/feedforward/internal/linalg"

// Loss measures how far a prediction is from its target.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue linalg.Vector) (float64, error)
}

// SquaredError is the summed squared error: sum((y_pred - y_true)^2).
// Model.Train descends half of this quantity.
type SquaredError struct{}

// Forward computes sum((y_pred - y_true)^2)
func (SquaredError) Forward(yPred, yTrue linalg.Vector) (float64, error) {
	sq, err := linalg.MapPair(yPred, yTrue, func(p, t float64) float64 {
		d := p - t
		return d * d
	})
	if err != nil {
		return 0, err
	}
	return linalg.Sum(sq), nil
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (MSE) Forward(yPred, yTrue linalg.Vector) (float64, error) {
	sum, err := SquaredError{}.Forward(yPred, yTrue)
	if err != nil || yPred.Len() == 0 {
		return 0, err
	}
	return sum / float64(yPred.Len()), nil
}
