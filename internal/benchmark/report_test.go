package benchmark

import (
	"strings"
	"testing"
	"time"
)

func TestWarmupBlocksThenOpens(t *testing.T) {
	w := NewWarmup(10)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if w.Done(t0, nil) {
		t.Fatalf("expected warm-up active immediately")
	}
	if w.Done(t0.Add(5*time.Second), nil) {
		t.Fatalf("expected warm-up still active mid-window")
	}
	if !w.Done(t0.Add(11*time.Second), nil) {
		t.Fatalf("expected warm-up done after the window elapses")
	}
}

func TestReporterDueEveryInterval(t *testing.T) {
	r := NewReporter(5)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if r.Due(t0) {
		t.Fatalf("expected no report on the first call")
	}
	if r.Due(t0.Add(3 * time.Second)) {
		t.Fatalf("expected no report before the interval elapses")
	}
	if !r.Due(t0.Add(6 * time.Second)) {
		t.Fatalf("expected a report once the interval elapses")
	}
}

func TestFormatIncludesBothModes(t *testing.T) {
	h := &Harness{
		Classic: Accumulator{CyclesFound: 2, BellmanFordRuns: 5, EdgesProcessed: 100, TotalTime: time.Second, Iterations: 1},
		Super:   Accumulator{CyclesFound: 2, BellmanFordRuns: 2, EdgesProcessed: 40, TotalTime: 500 * time.Millisecond, Iterations: 1},
	}
	out := Format(time.Now(), 6, 12, h)
	if !strings.Contains(out, "Classic Mode") || !strings.Contains(out, "Super-Source Hybrid Mode") {
		t.Fatalf("expected both mode sections in report, got %q", out)
	}
	if !strings.Contains(out, "Speedup") {
		t.Fatalf("expected a speedup line, got %q", out)
	}
}
