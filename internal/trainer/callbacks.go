package trainer

import (
	"log"
	"math"

	"github.com/FlavioCFOliveira/feedforward/internal/metrics"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(m *model.Model)
	OnTrainEnd(m *model.Model, res Result)
	OnWindowEnd(step int, snap metrics.Snapshot, m *model.Model)
}

// Stopper is implemented by callbacks that can end a run early.
type Stopper interface {
	ShouldStop() bool
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (BaseCallback) OnTrainBegin(m *model.Model)                                 {}
func (BaseCallback) OnTrainEnd(m *model.Model, res Result)                       {}
func (BaseCallback) OnWindowEnd(step int, snap metrics.Snapshot, m *model.Model) {}

// Logger logs training progress. A nil Log uses log.Default().
type Logger struct {
	BaseCallback
	Log *log.Logger
}

func (c Logger) logger() *log.Logger {
	if c.Log != nil {
		return c.Log
	}
	return log.Default()
}

func (c Logger) OnWindowEnd(step int, snap metrics.Snapshot, m *model.Model) {
	c.logger().Printf("step=%d mean_loss=%.6f stddev=%.6f last_loss=%.6f steps_per_sec=%.0f",
		step, snap.MeanLoss, snap.StdDevLoss, snap.LastLoss, snap.StepsPerSec)
}

func (c Logger) OnTrainEnd(m *model.Model, res Result) {
	c.logger().Printf("training finished steps=%d stopped=%t", res.Steps, res.Stopped)
}

// EarlyStopping stops training once the mean window loss reaches TargetLoss,
// or when it has not improved by more than MinDelta for Patience windows.
// A zero TargetLoss or Patience disables that check.
type EarlyStopping struct {
	BaseCallback
	TargetLoss float64
	Patience   int
	MinDelta   float64

	bestLoss     float64
	numBadWindow int
	stopped      bool
}

// NewEarlyStopping creates a new EarlyStopping.
func NewEarlyStopping(targetLoss float64, patience int, minDelta float64) *EarlyStopping {
	return &EarlyStopping{
		TargetLoss: targetLoss,
		Patience:   patience,
		MinDelta:   minDelta,
		bestLoss:   math.Inf(1),
	}
}

func (c *EarlyStopping) OnTrainBegin(m *model.Model) {
	c.bestLoss = math.Inf(1)
	c.numBadWindow = 0
	c.stopped = false
}

func (c *EarlyStopping) OnWindowEnd(step int, snap metrics.Snapshot, m *model.Model) {
	if c.TargetLoss > 0 && snap.MeanLoss <= c.TargetLoss {
		log.Printf("early stopping at step %d: mean loss %.6f reached target %.6f", step, snap.MeanLoss, c.TargetLoss)
		c.stopped = true
		return
	}
	if c.Patience <= 0 {
		return
	}
	if snap.MeanLoss < c.bestLoss-c.MinDelta {
		c.bestLoss = snap.MeanLoss
		c.numBadWindow = 0
		return
	}
	c.numBadWindow++
	if c.numBadWindow >= c.Patience {
		log.Printf("early stopping at step %d: mean loss %.6f did not improve for %d windows", step, snap.MeanLoss, c.Patience)
		c.stopped = true
	}
}

// ShouldStop reports whether the run should end.
func (c *EarlyStopping) ShouldStop() bool {
	return c.stopped
}
