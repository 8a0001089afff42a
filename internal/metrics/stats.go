package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Window accumulates per-step losses between two snapshots.
type Window struct {
	losses []float64
	start  time.Time
}

// Record adds the loss of one training step to the window.
func (w *Window) Record(loss float64) {
	if len(w.losses) == 0 {
		w.start = time.Now()
	}
	w.losses = append(w.losses, loss)
}

// Len returns the number of steps recorded since the last snapshot.
func (w *Window) Len() int {
	return len(w.losses)
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Steps: len(w.losses)}
	if snap.Steps > 0 {
		snap.LastLoss = w.losses[len(w.losses)-1]
		snap.MeanLoss = snap.LastLoss
		if snap.Steps > 1 {
			snap.MeanLoss, snap.StdDevLoss = stat.MeanStdDev(w.losses, nil)
		}
		if elapsed := time.Since(w.start); elapsed > 0 {
			snap.StepsPerSec = float64(snap.Steps) / elapsed.Seconds()
		}
	}
	w.losses = w.losses[:0]
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps       int
	MeanLoss    float64
	StdDevLoss  float64
	LastLoss    float64
	StepsPerSec float64
}
