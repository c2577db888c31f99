package benchmark

import (
	"fmt"
	"strings"
	"time"
)

// Warmup gates benchmark data collection for a fixed window after the
// process starts, independent of the node-count gate the live detector
// uses.
type Warmup struct {
	seconds     int
	t0          time.Time
	started     bool
	lastLoggedS int
}

// NewWarmup returns a gate that blocks benchmark ticks for seconds.
func NewWarmup(seconds int) *Warmup {
	return &Warmup{seconds: seconds, lastLoggedS: -1}
}

// Done reports whether the warm-up window has elapsed, emitting at most one
// countdown line per second via log while it has not.
func (w *Warmup) Done(now time.Time, log func(string)) bool {
	if !w.started {
		w.started = true
		w.t0 = now
	}
	elapsed := int(now.Sub(w.t0) / time.Second)
	if elapsed >= w.seconds {
		return true
	}
	if elapsed != w.lastLoggedS && log != nil {
		log(fmt.Sprintf("[Benchmark Warmup] collecting data... %ds remaining", w.seconds-elapsed))
		w.lastLoggedS = elapsed
	}
	return false
}

// Reporter prints a comparison report every reportSeconds of wall time.
type Reporter struct {
	reportSeconds time.Duration
	lastPrint     time.Time
	started       bool
}

// NewReporter returns a reporter that fires every reportSeconds.
func NewReporter(reportSeconds int) *Reporter {
	return &Reporter{reportSeconds: time.Duration(reportSeconds) * time.Second}
}

// Due reports whether a report is due at now, resetting its own clock if so.
func (r *Reporter) Due(now time.Time) bool {
	if !r.started {
		r.started = true
		r.lastPrint = now
		return false
	}
	if now.Sub(r.lastPrint) < r.reportSeconds {
		return false
	}
	r.lastPrint = now
	return true
}

// Format renders the comparison report: run counts, edges processed,
// wall time, throughput, and speedup ratio.
func Format(now time.Time, nodes, edges int, h *Harness) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n========== BENCHMARK REPORT (%s) ==========\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Graph size: %d nodes, %d edges\n\n", nodes, edges)

	fmt.Fprintf(&b, "[Classic Mode - Multi-Source Bellman-Ford]\n")
	fmt.Fprintf(&b, "  Cycles found:       %d\n", h.Classic.CyclesFound)
	fmt.Fprintf(&b, "  Bellman-Ford runs:  %d\n", h.Classic.BellmanFordRuns)
	fmt.Fprintf(&b, "  Edges processed:    %d\n", h.Classic.EdgesProcessed)
	fmt.Fprintf(&b, "  Total time:         %.3fs\n", h.Classic.TotalTime.Seconds())
	fmt.Fprintf(&b, "  Avg time/iteration: %.3fs\n\n", avgSeconds(h.Classic))

	fmt.Fprintf(&b, "[Super-Source Hybrid Mode]\n")
	fmt.Fprintf(&b, "  Cycles found:       %d\n", h.Super.CyclesFound)
	fmt.Fprintf(&b, "  Bellman-Ford runs:  %d\n", h.Super.BellmanFordRuns)
	fmt.Fprintf(&b, "  Edges processed:    %d\n", h.Super.EdgesProcessed)
	fmt.Fprintf(&b, "  Total time:         %.3fs\n", h.Super.TotalTime.Seconds())
	fmt.Fprintf(&b, "  Avg time/iteration: %.3fs\n\n", avgSeconds(h.Super))

	fmt.Fprintf(&b, "Speedup (classic / super-source): %.2fx\n", h.SpeedupRatio())
	return b.String()
}

func avgSeconds(a Accumulator) float64 {
	if a.Iterations == 0 {
		return 0
	}
	return a.TotalTime.Seconds() / float64(a.Iterations)
}
