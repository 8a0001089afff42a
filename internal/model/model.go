// Package model provides a feed-forward network with one hidden layer trained
// by online gradient descent.
package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
	"github.com/FlavioCFOliveira/feedforward/internal/opt"
)

// DefaultInitRange is the width of the interval initial weights are drawn
// from, centred on zero: [-1, 1).
const DefaultInitRange = 2.0

var (
	// ErrInvalidConfiguration is returned by New for unusable sizes or hyperparameters.
	ErrInvalidConfiguration = errors.New("invalid model configuration")

	// ErrNumericalInstability is returned by Train when an update would leave a
	// weight or bias NaN or infinite. The update is discarded.
	ErrNumericalInstability = errors.New("numerical instability")

	// ErrDimensionMismatch is returned when an input or expected vector does
	// not match the model's sizes.
	ErrDimensionMismatch = linalg.ErrDimensionMismatch
)

// Config describes the shape and hyperparameters of a Model.
type Config struct {
	InputSize    int
	HiddenSize   int
	OutputSize   int
	LearningRate float64

	// Activation is used by both layers. The zero value is sigmoid.
	Activation activations.Kind

	// InitRange is the width of the symmetric interval initial values are
	// drawn from. Zero selects DefaultInitRange.
	InitRange float64

	// Seed seeds weight initialisation. Zero seeds from the clock.
	Seed int64

	// FreezeWeights keeps both weight matrices at their initial values;
	// only the biases are trained.
	FreezeWeights bool
}

// Validate checks the configuration and reports the first problem found.
func (c Config) Validate() error {
	switch {
	case c.InputSize <= 0:
		return fmt.Errorf("%w: input size must be > 0 (got %d)", ErrInvalidConfiguration, c.InputSize)
	case c.HiddenSize <= 0:
		return fmt.Errorf("%w: hidden size must be > 0 (got %d)", ErrInvalidConfiguration, c.HiddenSize)
	case c.OutputSize <= 0:
		return fmt.Errorf("%w: output size must be > 0 (got %d)", ErrInvalidConfiguration, c.OutputSize)
	case !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0):
		return fmt.Errorf("%w: learning rate must be finite and > 0 (got %v)", ErrInvalidConfiguration, c.LearningRate)
	case c.InitRange < 0 || math.IsNaN(c.InitRange) || math.IsInf(c.InitRange, 0):
		return fmt.Errorf("%w: init range must be finite and >= 0 (got %v)", ErrInvalidConfiguration, c.InitRange)
	case !c.Activation.Valid():
		return fmt.Errorf("%w: unknown activation %v", ErrInvalidConfiguration, c.Activation)
	}
	return nil
}

// Params holds a model's weights and biases as plain slices.
// LayerWeights has one row of InputSize weights per hidden neuron and
// OutputWeights one row of HiddenSize weights per output neuron.
type Params struct {
	LayerWeights  [][]float64
	LayerBias     []float64
	OutputWeights [][]float64
	OutputBias    []float64
}

// Prediction is the result of a forward pass.
type Prediction struct {
	Hidden linalg.Vector
	Output linalg.Vector
}

// Model is a network with one hidden layer.
//
// A Model is not safe for concurrent use: Train must not run concurrently
// with Train or Guess on the same instance. Use Clone to give each worker
// its own replica.
type Model struct {
	layerWeights  linalg.Matrix // hidden x input
	layerBias     linalg.Vector // hidden
	outputWeights linalg.Matrix // output x hidden
	outputBias    linalg.Vector // output

	act    activations.Activation
	kind   activations.Kind
	sgd    opt.SGD
	frozen bool

	inputSize  int
	hiddenSize int
	outputSize int
}

// New creates a model with weights and biases drawn uniformly from
// [-InitRange/2, InitRange/2).
func New(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.InitRange == 0 {
		cfg.InitRange = DefaultInitRange
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	draw := func() float64 {
		return (rng.Float64() - 0.5) * cfg.InitRange
	}

	layerWeights, err := linalg.GenerateMatrix(cfg.HiddenSize, cfg.InputSize, func(_, _ int) float64 { return draw() })
	if err != nil {
		return nil, err
	}
	outputWeights, err := linalg.GenerateMatrix(cfg.OutputSize, cfg.HiddenSize, func(_, _ int) float64 { return draw() })
	if err != nil {
		return nil, err
	}
	layerBias, err := linalg.Generate(cfg.HiddenSize, func(int) float64 { return draw() })
	if err != nil {
		return nil, err
	}
	outputBias, err := linalg.Generate(cfg.OutputSize, func(int) float64 { return draw() })
	if err != nil {
		return nil, err
	}

	m := newModel(cfg)
	m.layerWeights = layerWeights
	m.layerBias = layerBias
	m.outputWeights = outputWeights
	m.outputBias = outputBias
	return m, nil
}

// FromParams creates a model with the given weights and biases. The slices
// are copied and must match the sizes in cfg.
func FromParams(cfg Config, p Params) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layerWeights, err := shapedMatrix("layer weights", p.LayerWeights, cfg.HiddenSize, cfg.InputSize)
	if err != nil {
		return nil, err
	}
	outputWeights, err := shapedMatrix("output weights", p.OutputWeights, cfg.OutputSize, cfg.HiddenSize)
	if err != nil {
		return nil, err
	}
	if len(p.LayerBias) != cfg.HiddenSize {
		return nil, fmt.Errorf("layer bias: %w", &linalg.DimensionError{Op: "from params", Want: cfg.HiddenSize, Got: len(p.LayerBias)})
	}
	if len(p.OutputBias) != cfg.OutputSize {
		return nil, fmt.Errorf("output bias: %w", &linalg.DimensionError{Op: "from params", Want: cfg.OutputSize, Got: len(p.OutputBias)})
	}

	m := newModel(cfg)
	m.layerWeights = layerWeights
	m.layerBias = linalg.VectorFrom(p.LayerBias...)
	m.outputWeights = outputWeights
	m.outputBias = linalg.VectorFrom(p.OutputBias...)
	if !m.finite() {
		return nil, fmt.Errorf("%w: parameters must be finite", ErrInvalidConfiguration)
	}
	return m, nil
}

func newModel(cfg Config) *Model {
	return &Model{
		act:        cfg.Activation.Activation(),
		kind:       cfg.Activation,
		sgd:        opt.SGD{LearningRate: cfg.LearningRate},
		frozen:     cfg.FreezeWeights,
		inputSize:  cfg.InputSize,
		hiddenSize: cfg.HiddenSize,
		outputSize: cfg.OutputSize,
	}
}

func shapedMatrix(name string, rows [][]float64, wantRows, wantCols int) (linalg.Matrix, error) {
	if len(rows) != wantRows {
		return linalg.Matrix{}, fmt.Errorf("%s: %w", name, &linalg.DimensionError{Op: "from params", Want: wantRows, Got: len(rows)})
	}
	for i, row := range rows {
		if len(row) != wantCols {
			return linalg.Matrix{}, fmt.Errorf("%s row %d: %w", name, i, &linalg.DimensionError{Op: "from params", Want: wantCols, Got: len(row)})
		}
	}
	return linalg.MatrixFromRows(rows)
}

// Guess runs a forward pass and returns both the hidden and the output activations.
func (m *Model) Guess(input linalg.Vector) (Prediction, error) {
	if input.Len() != m.inputSize {
		return Prediction{}, fmt.Errorf("guess input: %w", &linalg.DimensionError{Op: "guess", Want: m.inputSize, Got: input.Len()})
	}

	hidden, err := m.layer(m.layerWeights, m.layerBias, input)
	if err != nil {
		return Prediction{}, err
	}
	output, err := m.layer(m.outputWeights, m.outputBias, hidden)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{Hidden: hidden, Output: output}, nil
}

// layer computes activation(weights[i]·x + bias[i]) for every neuron i.
func (m *Model) layer(weights linalg.Matrix, bias, x linalg.Vector) (linalg.Vector, error) {
	var dotErr error
	out, err := linalg.RowMap(weights, bias, func(row linalg.Vector, b float64) float64 {
		sum, err := linalg.Dot(row, x)
		if err != nil {
			dotErr = err
			return 0
		}
		return m.act.Activate(sum + b)
	})
	if err != nil {
		return linalg.Vector{}, err
	}
	return out, dotErr
}

// Train performs one backpropagation step on a single example and replaces
// all weights and biases together. Nothing is modified if an error is returned.
func (m *Model) Train(input, expected linalg.Vector) error {
	_, err := m.TrainStep(input, expected)
	return err
}

// TrainStep is Train, returning the forward pass the update was computed from.
func (m *Model) TrainStep(input, expected linalg.Vector) (Prediction, error) {
	if expected.Len() != m.outputSize {
		return Prediction{}, fmt.Errorf("train expected: %w", &linalg.DimensionError{Op: "train", Want: m.outputSize, Got: expected.Len()})
	}
	pred, err := m.Guess(input)
	if err != nil {
		return Prediction{}, err
	}

	next, err := m.step(input, expected, pred)
	if err != nil {
		return Prediction{}, err
	}
	if !next.finite() {
		return pred, fmt.Errorf("train: %w", ErrNumericalInstability)
	}

	m.layerWeights = next.layerWeights
	m.layerBias = next.layerBias
	m.outputWeights = next.outputWeights
	m.outputBias = next.outputBias
	return pred, nil
}

// step computes the updated parameters without touching m.
func (m *Model) step(input, expected linalg.Vector, pred Prediction) (*Model, error) {
	// dL/dz for the output layer: (y - t) * f'(y)
	outputError, err := linalg.MapPair(pred.Output, expected, func(y, t float64) float64 {
		return (y - t) * m.act.Derivative(y)
	})
	if err != nil {
		return nil, err
	}

	// Propagated through the output weights as they were before this step.
	backErr, err := linalg.MulVecT(m.outputWeights, outputError)
	if err != nil {
		return nil, err
	}
	hiddenError, err := linalg.MapPair(backErr, pred.Hidden, func(e, h float64) float64 {
		return e * m.act.Derivative(h)
	})
	if err != nil {
		return nil, err
	}

	next := *m
	if next.outputBias, err = m.sgd.Step(m.outputBias, outputError); err != nil {
		return nil, err
	}
	if next.layerBias, err = m.sgd.Step(m.layerBias, hiddenError); err != nil {
		return nil, err
	}
	if m.frozen {
		return &next, nil
	}

	outputGrad, err := linalg.Outer(outputError, pred.Hidden)
	if err != nil {
		return nil, err
	}
	if next.outputWeights, err = m.sgd.StepMatrix(m.outputWeights, outputGrad); err != nil {
		return nil, err
	}
	layerGrad, err := linalg.Outer(hiddenError, input)
	if err != nil {
		return nil, err
	}
	if next.layerWeights, err = m.sgd.StepMatrix(m.layerWeights, layerGrad); err != nil {
		return nil, err
	}
	return &next, nil
}

func (m *Model) finite() bool {
	return m.layerWeights.IsFinite() && m.layerBias.IsFinite() &&
		m.outputWeights.IsFinite() && m.outputBias.IsFinite()
}

// Clone returns an independent replica. Weights and biases are immutable
// values, so the replica shares them until either model trains.
func (m *Model) Clone() *Model {
	c := *m
	return &c
}

// LayerWeights returns the hidden layer weights, one row per hidden neuron.
func (m *Model) LayerWeights() linalg.Matrix { return m.layerWeights }

// LayerBias returns the hidden layer biases.
func (m *Model) LayerBias() linalg.Vector { return m.layerBias }

// OutputWeights returns the output layer weights, one row per output neuron.
func (m *Model) OutputWeights() linalg.Matrix { return m.outputWeights }

// OutputBias returns the output layer biases.
func (m *Model) OutputBias() linalg.Vector { return m.outputBias }

// Params returns a copy of all weights and biases.
func (m *Model) Params() Params {
	return Params{
		LayerWeights:  m.layerWeights.RawRows(),
		LayerBias:     m.layerBias.Raw(),
		OutputWeights: m.outputWeights.RawRows(),
		OutputBias:    m.outputBias.Raw(),
	}
}

// LearningRate returns the step size used by Train.
func (m *Model) LearningRate() float64 { return m.sgd.LearningRate }

// Activation returns the model-wide activation kind.
func (m *Model) Activation() activations.Kind { return m.kind }

// InputSize returns the input vector length.
func (m *Model) InputSize() int { return m.inputSize }

// HiddenSize returns the number of hidden neurons.
func (m *Model) HiddenSize() int { return m.hiddenSize }

// OutputSize returns the output vector length.
func (m *Model) OutputSize() int { return m.outputSize }
