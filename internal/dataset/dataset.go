// Package dataset provides the (input, expected) pairs the demos train on.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
)

// ErrEmpty is returned when a dataset would have no samples.
var ErrEmpty = errors.New("dataset is empty")

// Sample is one training example.
type Sample struct {
	Input    linalg.Vector
	Expected linalg.Vector

	// Label is the class index for classification data, -1 otherwise.
	Label int
}

// Dataset is a fixed collection of samples of equal shape.
type Dataset struct {
	Name       string
	InputSize  int
	OutputSize int
	Samples    []Sample
}

// New builds a dataset and checks that every sample has the same shape.
func New(name string, samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	in, out := samples[0].Input.Len(), samples[0].Expected.Len()
	for i, s := range samples {
		if s.Input.Len() != in {
			return nil, fmt.Errorf("%s sample %d input: %w", name, i, &linalg.DimensionError{Op: "dataset", Want: in, Got: s.Input.Len()})
		}
		if s.Expected.Len() != out {
			return nil, fmt.Errorf("%s sample %d expected: %w", name, i, &linalg.DimensionError{Op: "dataset", Want: out, Got: s.Expected.Len()})
		}
	}
	return &Dataset{Name: name, InputSize: in, OutputSize: out, Samples: samples}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Split returns the first ratio of the samples and the rest.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	idx := int(float64(len(d.Samples)) * ratio)
	if idx < 0 {
		idx = 0
	}
	if idx > len(d.Samples) {
		idx = len(d.Samples)
	}
	head := *d
	head.Samples = d.Samples[:idx]
	tail := *d
	tail.Samples = d.Samples[idx:]
	return &head, &tail
}

// Shuffle reorders the samples in place using seed.
func (d *Dataset) Shuffle(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(d.Samples), func(i, j int) {
		d.Samples[i], d.Samples[j] = d.Samples[j], d.Samples[i]
	})
}

// OneHot returns a vector of n zeros with a 1 at label.
func OneHot(label, n int) (linalg.Vector, error) {
	if label < 0 || label >= n {
		return linalg.Vector{}, fmt.Errorf("label %d out of range [0, %d)", label, n)
	}
	return linalg.Generate(n, func(i int) float64 {
		if i == label {
			return 1
		}
		return 0
	})
}

// XOR returns the four cases of exclusive or.
func XOR() *Dataset {
	cases := [][3]float64{
		{1, 1, 0},
		{1, 0, 1},
		{0, 1, 1},
		{0, 0, 0},
	}
	samples := make([]Sample, len(cases))
	for i, c := range cases {
		samples[i] = Sample{
			Input:    linalg.VectorFrom(c[0], c[1]),
			Expected: linalg.VectorFrom(c[2]),
			Label:    int(c[2]),
		}
	}
	return &Dataset{Name: "xor", InputSize: 2, OutputSize: 1, Samples: samples}
}

// Points returns n random points in the unit square labelled by the line
// y = x: a point with x >= y is class 1 (above), otherwise class 0.
func Points(n int, seed int64) (*Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("points: %w", ErrEmpty)
	}
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, n)
	for i := range samples {
		x, y := rng.Float64(), rng.Float64()
		label := 0
		if x >= y {
			label = 1
		}
		samples[i] = Sample{
			Input:    linalg.VectorFrom(x, y),
			Expected: linalg.VectorFrom(float64(label)),
			Label:    label,
		}
	}
	return New("points", samples)
}
