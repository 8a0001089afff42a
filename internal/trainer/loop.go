// Package trainer drives a model through many single-example training steps.
package trainer

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlavioCFOliveira/feedforward/internal/dataset"
	"github.com/FlavioCFOliveira/feedforward/internal/loss"
	"github.com/FlavioCFOliveira/feedforward/internal/metrics"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
)

const defaultLogEvery = 1000

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	// Steps is the number of Train calls to make.
	Steps int
	// LogEvery is the number of steps per metrics window. Zero selects 1000.
	LogEvery int
	// Loss measures each step's pre-update prediction. Nil selects SquaredError.
	Loss loss.Loss
}

// Result summarises a finished run.
type Result struct {
	Steps   int
	Stopped bool
	Last    metrics.Snapshot
}

// Run trains m on samples drawn from s, one example per step. Callbacks see
// every metrics window; a Stopper callback can end the run early. The
// context is only checked between steps.
func Run(ctx context.Context, m *model.Model, s dataset.Sampler, cfg RunConfig, callbacks ...Callback) (Result, error) {
	if cfg.Steps <= 0 {
		return Result{}, errors.New("trainer: steps must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = defaultLogEvery
	}
	if cfg.Loss == nil {
		cfg.Loss = loss.SquaredError{}
	}

	for _, cb := range callbacks {
		cb.OnTrainBegin(m)
	}

	var (
		res    Result
		window metrics.Window
		runErr error
	)
loop:
	for step := 1; step <= cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		sample := s.Next()
		pred, err := m.TrainStep(sample.Input, sample.Expected)
		if err != nil {
			runErr = fmt.Errorf("trainer: step %d: %w", step, err)
			break
		}
		l, err := cfg.Loss.Forward(pred.Output, sample.Expected)
		if err != nil {
			runErr = fmt.Errorf("trainer: step %d loss: %w", step, err)
			break
		}
		window.Record(l)
		res.Steps = step

		if step%cfg.LogEvery != 0 && step != cfg.Steps {
			continue
		}
		res.Last = window.Snapshot()
		for _, cb := range callbacks {
			cb.OnWindowEnd(step, res.Last, m)
		}
		for _, cb := range callbacks {
			if stopper, ok := cb.(Stopper); ok && stopper.ShouldStop() {
				res.Stopped = true
				break loop
			}
		}
	}

	for _, cb := range callbacks {
		cb.OnTrainEnd(m, res)
	}
	return res, runErr
}
