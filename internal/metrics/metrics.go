// Package metrics provides evaluation helpers for trained models.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/feedforward/internal/dataset"
	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
	"github.com/FlavioCFOliveira/feedforward/internal/loss"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
)

// Threshold separates the two classes of a single-output model.
const Threshold = 0.5

// Predictor runs a forward pass.
type Predictor interface {
	Guess(input linalg.Vector) (model.Prediction, error)
}

// Argmax returns the index of the largest element, or -1 for an empty vector.
func Argmax(v linalg.Vector) int {
	if v.Len() == 0 {
		return -1
	}
	return floats.MaxIdx(v.Raw())
}

// Classify turns a raw output vector into a class index: Threshold for a
// single output, Argmax otherwise.
func Classify(output linalg.Vector) int {
	if output.Len() == 1 {
		if output.At(0) >= Threshold {
			return 1
		}
		return 0
	}
	return Argmax(output)
}

// Accuracy returns the fraction of samples whose classified output matches
// the classified expected vector.
func Accuracy(p Predictor, d *dataset.Dataset) (float64, error) {
	if d.Len() == 0 {
		return 0, dataset.ErrEmpty
	}
	correct := 0
	for _, s := range d.Samples {
		pred, err := p.Guess(s.Input)
		if err != nil {
			return 0, err
		}
		if Classify(pred.Output) == Classify(s.Expected) {
			correct++
		}
	}
	return float64(correct) / float64(d.Len()), nil
}

// TotalLoss sums l over every sample of d.
func TotalLoss(p Predictor, d *dataset.Dataset, l loss.Loss) (float64, error) {
	var total float64
	for _, s := range d.Samples {
		pred, err := p.Guess(s.Input)
		if err != nil {
			return 0, err
		}
		v, err := l.Forward(pred.Output, s.Expected)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
