// Package activations provides benchmarks for activation functions.
package activations

import (
	"math/rand"
	"testing"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	for i := range slice {
		slice[i] = rand.Float64()*8 - 4
	}
}

func benchmarkFull(b *testing.B, act Activation) {
	inputs := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range inputs {
			act.Derivative(act.Activate(x))
		}
	}
}

// BenchmarkSigmoidFull benchmarks Activate followed by Derivative.
func BenchmarkSigmoidFull(b *testing.B) {
	benchmarkFull(b, Sigmoid{})
}

// BenchmarkTanhFull benchmarks Activate followed by Derivative.
func BenchmarkTanhFull(b *testing.B) {
	benchmarkFull(b, Tanh{})
}
