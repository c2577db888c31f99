// Package benchmark implements the rolling classic-vs-super-source
// comparison: both detector modes run on every tick against isolated
// duplicate-filter state, and a periodic report compares their wall time.
package benchmark

import (
	"time"

	"arbitr/internal/arbitrage"
	"arbitr/internal/graph"
	"arbitr/internal/strategy"
)

// Accumulator holds the running totals for one mode across the current
// report window.
type Accumulator struct {
	CyclesFound     int
	BellmanFordRuns int
	EdgesProcessed  int
	TotalTime       time.Duration
	Iterations      int
}

func (a *Accumulator) add(s arbitrage.Stats, elapsed time.Duration) {
	a.CyclesFound += s.CyclesFound
	a.BellmanFordRuns += s.BellmanFordRuns
	a.EdgesProcessed += s.EdgesProcessed
	a.TotalTime += elapsed
	a.Iterations++
}

func (a *Accumulator) reset() { *a = Accumulator{} }

// Harness drives both detector modes on the shared detector while swapping
// in a private duplicate filter for each, then restoring the detector's own
// filter, so mode isolation never corrupts the live detection path.
type Harness struct {
	detector *arbitrage.Detector
	policy   strategy.Policy

	classicFilter *graph.DedupFilter
	superFilter   *graph.DedupFilter

	Classic Accumulator
	Super   Accumulator
}

// NewHarness returns a harness driving detector with its own private
// duplicate-filter state, isolated from whatever the live detection path
// (classic/single-source CLI modes) is currently using.
func NewHarness(detector *arbitrage.Detector, policy strategy.Policy) *Harness {
	return &Harness{
		detector:      detector,
		policy:        policy,
		classicFilter: graph.NewDedupFilter(),
		superFilter:   graph.NewDedupFilter(),
	}
}

// Tick runs one classic pass and one super-source pass, each under its own
// private filter, restoring the detector's previous filter afterward.
func (h *Harness) Tick(elapsed func() time.Duration) {
	saved := h.detector.SetDedup(h.classicFilter)
	start := elapsed()
	_, statsClassic := h.detector.RunClassic(h.policy)
	h.Classic.add(statsClassic, elapsed()-start)
	h.classicFilter = h.detector.SetDedup(saved)

	saved = h.detector.SetDedup(h.superFilter)
	start = elapsed()
	_, statsSuper := h.detector.RunSuperSource(h.policy)
	h.Super.add(statsSuper, elapsed()-start)
	h.superFilter = h.detector.SetDedup(saved)
}

// SpeedupRatio returns how many times faster the super-source mode's
// average iteration is than the classic mode's (classic time divided by
// super-source time), or 0 if either side has done no work yet.
func (h *Harness) SpeedupRatio() float64 {
	if h.Classic.TotalTime <= 0 || h.Super.TotalTime <= 0 {
		return 0
	}
	return h.Classic.TotalTime.Seconds() / h.Super.TotalTime.Seconds()
}

// ResetWindow clears both accumulators after a report.
func (h *Harness) ResetWindow() {
	h.Classic.reset()
	h.Super.reset()
}
