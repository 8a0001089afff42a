// Package opt provides unit tests for the optimizer.
package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
)

// TestSGDStep tests SGD step computation.
func TestSGDStep(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	params := linalg.VectorFrom(1.0, 2.0, 3.0)
	gradients := linalg.VectorFrom(0.1, 0.2, 0.3)

	updated, err := sgd.Step(params, gradients)
	require.NoError(t, err)

	expected := []float64{
		1.0 - 0.1*0.1,
		2.0 - 0.1*0.2,
		3.0 - 0.1*0.3,
	}
	assert.InDeltaSlice(t, expected, updated.Raw(), 1e-12)
}

// TestSGDStepLeavesInputs tests that Step returns a new vector.
func TestSGDStepLeavesInputs(t *testing.T) {
	sgd := SGD{LearningRate: 0.5}

	params := linalg.VectorFrom(1.0, 2.0)
	gradients := linalg.VectorFrom(1.0, 1.0)

	_, err := sgd.Step(params, gradients)
	require.NoError(t, err)

	assert.Equal(t, []float64{1.0, 2.0}, params.Raw())
	assert.Equal(t, []float64{1.0, 1.0}, gradients.Raw())
}

// TestSGDNegativeGradients tests that a negative gradient increases the parameter.
func TestSGDNegativeGradients(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	updated, err := sgd.Step(linalg.VectorFrom(0.0), linalg.VectorFrom(-0.5))
	require.NoError(t, err)
	assert.InDelta(t, 0.05, updated.At(0), 1e-12)
}

// TestSGDStepMismatch tests that mismatched lengths are rejected.
func TestSGDStepMismatch(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	_, err := sgd.Step(linalg.VectorFrom(1, 2), linalg.VectorFrom(1))
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

// TestSGDStepMatrix tests the matrix update.
func TestSGDStepMatrix(t *testing.T) {
	sgd := SGD{LearningRate: 0.5}

	weights, err := linalg.MatrixFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	grads, err := linalg.MatrixFromRows([][]float64{{2, 0}, {-2, 1}})
	require.NoError(t, err)

	updated, err := sgd.StepMatrix(weights, grads)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0, 2}, {4, 3.5}}, updated.RawRows())
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, weights.RawRows())

	wide, err := linalg.NewMatrix(2, 3, nil)
	require.NoError(t, err)
	_, err = sgd.StepMatrix(weights, wide)
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}
