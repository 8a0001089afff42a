package model

import (
	"math/rand"
	"testing"

	"github.com/FlavioCFOliveira/feedforward/internal/linalg"
)

func randomVector(rng *rand.Rand, n int) linalg.Vector {
	v, _ := linalg.Generate(n, func(int) float64 { return rng.Float64() })
	return v
}

func benchmarkModel(b *testing.B) (*Model, linalg.Vector, linalg.Vector) {
	b.Helper()
	m, err := New(Config{InputSize: 784, HiddenSize: 128, OutputSize: 10, LearningRate: 0.1, Seed: 1})
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	return m, randomVector(rng, 784), randomVector(rng, 10)
}

// BenchmarkGuess benchmarks a forward pass of a digits-sized model.
func BenchmarkGuess(b *testing.B) {
	m, input, _ := benchmarkModel(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Guess(input)
	}
}

// BenchmarkTrain benchmarks a full training step of a digits-sized model.
func BenchmarkTrain(b *testing.B) {
	m, input, target := benchmarkModel(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Train(input, target)
	}
}
