package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/dataset"
	"github.com/FlavioCFOliveira/feedforward/internal/metrics"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
	"github.com/FlavioCFOliveira/feedforward/internal/trainer"
)

func main() {
	hidden := flag.Int("hidden", 3, "Number of hidden neurons")
	lr := flag.Float64("lr", 0.1, "Learning rate")
	steps := flag.Int("steps", 50000, "Number of training steps")
	act := flag.String("activation", "sigmoid", "Activation function (sigmoid|tanh)")
	seed := flag.Int64("seed", 1, "PRNG seed for weights and sampling")
	logEvery := flag.Int("log-every", 5000, "Log every N steps")
	flag.Parse()

	kind, err := activations.Parse(*act)
	if err != nil {
		log.Fatalf("invalid activation: %v", err)
	}

	fmt.Println("=== XOR Training Example ===")

	// XOR cannot be solved by a single-layer perceptron
	// but can be solved with one hidden layer.
	data := dataset.XOR()
	m, err := model.New(model.Config{
		InputSize:    data.InputSize,
		HiddenSize:   *hidden,
		OutputSize:   data.OutputSize,
		LearningRate: *lr,
		Activation:   kind,
		Seed:         *seed,
	})
	if err != nil {
		log.Fatalf("failed to create model: %v", err)
	}

	fmt.Printf("Network architecture: %d-%d-%d\n", m.InputSize(), m.HiddenSize(), m.OutputSize())
	fmt.Printf("Activation function: %s\n", m.Activation())
	fmt.Printf("Learning rate: %g, steps: %d\n\n", m.LearningRate(), *steps)

	res, err := trainer.Run(context.Background(), m, dataset.NewUniformSampler(data, *seed),
		trainer.RunConfig{Steps: *steps, LogEvery: *logEvery}, trainer.Logger{})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	fmt.Println("\nTesting trained network:")
	for _, s := range data.Samples {
		pred, err := m.Guess(s.Input)
		if err != nil {
			log.Fatalf("guess failed: %v", err)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", s.Input, pred.Output.At(0), s.Expected.At(0))
	}

	acc, err := metrics.Accuracy(m, data)
	if err != nil {
		log.Fatalf("accuracy failed: %v", err)
	}
	fmt.Printf("\nAccuracy: %.0f%% after %d steps (final mean loss %.6f)\n", acc*100, res.Steps, res.Last.MeanLoss)
}
