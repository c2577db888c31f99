// Package arbitrage wires the graph engine's primitives into the three
// detector modes, the warm-up/reporting state machine, and the ingest loop
// that drives them.
package arbitrage

import (
	"fmt"

	"arbitr/internal/graph"
	"arbitr/internal/strategy"
)

// SuperSourceLabel is the synthetic node added in super-source mode, with a
// zero-weight Cross edge to every real node.
const SuperSourceLabel = "SUPER_SOURCE"

// Mode names a detector strategy.
type Mode string

const (
	ModeClassic     Mode = "classic"
	ModeSuperSource Mode = "super-source"
	ModeSingle      Mode = "single-source"
)

// Finding is one accepted, canonicalized, non-duplicate cycle ready for a sink.
type Finding struct {
	Mode      Mode
	Cycle     graph.Cycle
	Profit    float64
	Signature string
	Labels    []string
	Exchanges map[string]struct{}
}

// CycleType reports whether a finding crosses more than one exchange.
func (f Finding) CycleType() string {
	if len(f.Exchanges) > 1 {
		return "cross-exchange"
	}
	return "intra-exchange"
}

// Stats accumulates the counters the benchmark harness and the ambient
// metrics both read out of a single detector sweep.
type Stats struct {
	CyclesFound     int
	BellmanFordRuns int
	EdgesProcessed  int
}

// Detector runs Bellman-Ford over a shared edge store in one of three
// modes and turns witnesses into accepted, deduplicated Findings.
type Detector struct {
	store     *graph.Store
	dedup     *graph.DedupFilter
	buckets   *graph.BucketTracker
	exchanges []string

	superSourceID    int
	superSourceKnown int // count of nodes already wired to SUPER_SOURCE
}

// NewDetector builds a detector over store, reporting arbitrage for the
// given allowlist of exchange suffixes (resolving the open question of
// which exchanges the super-source per-exchange follow-up runs cover).
func NewDetector(store *graph.Store, exchanges []string) *Detector {
	return &Detector{
		store:         store,
		dedup:         graph.NewDedupFilter(),
		buckets:       graph.NewBucketTracker(),
		exchanges:     exchanges,
		superSourceID: -1,
	}
}

// Dedup exposes the filter so the benchmark harness can save/swap/restore it.
func (d *Detector) Dedup() *graph.DedupFilter { return d.dedup }

// SetDedup installs filter as the active duplicate filter, returning the
// previous one so callers can restore it later.
func (d *Detector) SetDedup(filter *graph.DedupFilter) *graph.DedupFilter {
	prev := d.dedup
	d.dedup = filter
	return prev
}

// Buckets exposes the profit-band tracker for the session summary.
func (d *Detector) Buckets() *graph.BucketTracker { return d.buckets }

// RunClassic runs Bellman-Ford from every node.
func (d *Detector) RunClassic(policy strategy.Policy) ([]Finding, Stats) {
	reg := d.store.Registry()
	v := reg.Len()
	edges := d.store.Edges()

	var findings []Finding
	var stats Stats
	for source := 0; source < v; source++ {
		stats.BellmanFordRuns++
		stats.EdgesProcessed += len(edges) * (v - 1)
		cycles := graph.Run(source, edges, v, policy.Precision.RelaxEpsilon())
		stats.CyclesFound += len(cycles)
		findings = append(findings, d.accept(ModeClassic, cycles, edges, reg.Label, policy)...)
	}
	return findings, stats
}

// RunSingleSource restricts the classic algorithm to one configured
// source node, for the CLI's "Single source" option.
func (d *Detector) RunSingleSource(sourceLabel string, policy strategy.Policy) ([]Finding, Stats, error) {
	reg := d.store.Registry()
	source, ok := reg.Lookup(sourceLabel)
	if !ok {
		return nil, Stats{}, fmt.Errorf("arbitrage: unknown single-source node %q", sourceLabel)
	}
	edges := d.store.Edges()
	v := reg.Len()

	stats := Stats{BellmanFordRuns: 1, EdgesProcessed: len(edges) * (v - 1)}
	cycles := graph.Run(source, edges, v, policy.Precision.RelaxEpsilon())
	stats.CyclesFound = len(cycles)
	findings := d.accept(ModeSingle, cycles, edges, reg.Label, policy)
	return findings, stats, nil
}

// RunSuperSource runs one pass from a synthetic SUPER_SOURCE node plus one
// pass per distinct configured exchange suffix.
func (d *Detector) RunSuperSource(policy strategy.Policy) ([]Finding, Stats) {
	reg := d.store.Registry()
	if reg.Len() == 0 {
		return nil, Stats{}
	}
	d.ensureSuperSourceEdges()

	v := reg.Len()
	edges := d.store.Edges()

	var findings []Finding
	var stats Stats

	run := func(source int) {
		stats.BellmanFordRuns++
		stats.EdgesProcessed += len(edges) * (v - 1)
		cycles := graph.Run(source, edges, v, policy.Precision.RelaxEpsilon())
		stats.CyclesFound += len(cycles)
		findings = append(findings, d.accept(ModeSuperSource, cycles, edges, reg.Label, policy)...)
	}

	run(d.superSourceID)
	for _, exchange := range d.exchanges {
		if source, ok := d.firstNodeForExchange(exchange); ok {
			run(source)
		}
	}
	return findings, stats
}

// ensureSuperSourceEdges lazily creates SUPER_SOURCE and wires a zero-weight
// Cross edge to every real node added since the last call. Must run before
// the node count and source index used by a super-source pass are taken,
// so they include SUPER_SOURCE itself.
func (d *Detector) ensureSuperSourceEdges() {
	reg := d.store.Registry()
	if d.superSourceID == -1 {
		d.superSourceID = reg.Intern(SuperSourceLabel)
	}
	for i := d.superSourceKnown; i < reg.Len(); i++ {
		if i == d.superSourceID {
			continue
		}
		_, _ = d.store.Upsert(SuperSourceLabel, reg.Label(i), 1.0, graph.ExchangeCross, "SUPER")
	}
	d.superSourceKnown = reg.Len()
}

// firstNodeForExchange returns the id of the first-seen node whose label
// carries the "_<exchange>" suffix.
func (d *Detector) firstNodeForExchange(exchange string) (int, bool) {
	reg := d.store.Registry()
	suffix := "_" + exchange
	for i := 0; i < reg.Len(); i++ {
		label := reg.Label(i)
		if len(label) > len(suffix) && label[len(label)-len(suffix):] == suffix {
			return i, true
		}
	}
	return 0, false
}

// accept applies the acceptance policy, canonicalization, and duplicate
// filtering to a batch of raw witnesses from one Bellman-Ford run.
func (d *Detector) accept(mode Mode, cycles []graph.Cycle, edges []graph.Edge, label graph.LabelFunc, policy strategy.Policy) []Finding {
	var out []Finding
	for _, cyc := range cycles {
		profit, ok := graph.Profit(cyc, edges)
		if !ok {
			continue
		}
		if !policy.Accept(cyc.Len(), profit) {
			continue
		}
		canon := graph.Canonicalize(cyc.Nodes, label)
		sig := graph.Signature(canon, label)
		if d.dedup.Observe(sig) {
			continue
		}
		d.buckets.Observe(sig, profit)

		labels := make([]string, len(canon))
		exchanges := make(map[string]struct{})
		for i, n := range canon {
			labels[i] = label(n)
		}
		for _, e := range cyc.EdgeIdx {
			if edges[e].Exchange != graph.ExchangeCross && edges[e].Exchange != "" {
				exchanges[edges[e].Exchange] = struct{}{}
			}
		}
		out = append(out, Finding{
			Mode:      mode,
			Cycle:     cyc,
			Profit:    profit,
			Signature: sig,
			Labels:    labels,
			Exchanges: exchanges,
		})
	}
	return out
}
