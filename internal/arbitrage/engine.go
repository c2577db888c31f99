package arbitrage

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"arbitr/internal/graph"
	"arbitr/internal/infra/metrics"
	"arbitr/internal/ingest"
	"arbitr/internal/strategy"
)

// Sink is the subset of internal/sink.Sink the engine depends on, kept
// local to avoid an import cycle between arbitrage and sink.
type Sink interface {
	WriteFinding(now time.Time, f Finding) error
	Close() error
}

// Reader is the subset of ingest.Conn the engine depends on.
type Reader interface {
	ReadMessage() ([]byte, error)
}

// Engine runs the single-threaded cooperative loop: block on the ingest
// channel, parse and upsert, run the selected detector mode, report, repeat.
type Engine struct {
	reader   Reader
	store    *graph.Store
	detector *Detector
	sinks    []Sink
	warmup   *WarmupGate
	reporter *Reporter
	logger   zerolog.Logger

	mode             Mode
	singleSourceNode string
}

// Config carries the engine's construction-time parameters.
type Config struct {
	Mode             Mode
	SingleSourceNode string
	WarmupSeconds    int
	Exchanges        []string
}

// New builds an engine reading from reader, upserting into store, and
// reporting accepted findings to every sink in order.
func New(reader Reader, store *graph.Store, cfg Config, sinks []Sink, logger zerolog.Logger) *Engine {
	return &Engine{
		reader:           reader,
		store:            store,
		detector:         NewDetector(store, cfg.Exchanges),
		sinks:            sinks,
		warmup:           NewWarmupGate(cfg.WarmupSeconds),
		reporter:         NewReporter(string(cfg.Mode)),
		logger:           logger,
		mode:             cfg.Mode,
		singleSourceNode: cfg.SingleSourceNode,
	}
}

// Run blocks until ctx is cancelled or the ingest channel fails. A read
// failure mid-stream is fatal and is returned to the caller.
func (e *Engine) Run(ctx context.Context) error {
	defer func() {
		for _, s := range e.sinks {
			if err := s.Close(); err != nil {
				e.logger.Error().Err(err).Msg("sink close failed")
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		body, err := e.reader.ReadMessage()
		if err != nil {
			return fmt.Errorf("arbitrage: ingest read failed: %w", err)
		}

		if err := e.ingestOne(body); err != nil {
			metrics.MessagesDropped.Inc()
			e.logger.Warn().Err(err).Msg("dropping malformed update")
			continue
		}

		e.tick()
	}
}

// ingestOne parses one wire message and upserts its edge. The caller logs
// and skips on any failure; a malformed or out-of-bounds update is never
// fatal to the ingest loop.
func (e *Engine) ingestOne(body []byte) error {
	update, err := ingest.ParseUpdate(body)
	if err != nil {
		return err
	}
	src, dst := update.Labels()
	if _, err := e.store.Upsert(src, dst, update.Price, update.Exchange, update.Symbol); err != nil {
		return err
	}
	return nil
}

// tick runs one detector sweep, gated by warm-up, and reports any findings.
func (e *Engine) tick() {
	now := time.Now()
	reg := e.store.Registry()
	if e.warmup.Active(now, reg.Len(), func(line string) { fmt.Println(line) }) {
		return
	}

	timer := prometheus.NewTimer(metrics.DetectorTickSeconds.WithLabelValues(string(e.mode)))

	var findings []Finding
	var stats Stats
	switch e.mode {
	case ModeSingle:
		policy := strategy.Policy{Precision: strategy.Precise}
		f, s, err := e.detector.RunSingleSource(e.singleSourceNode, policy)
		if err != nil {
			timer.ObserveDuration()
			e.logger.Error().Err(err).Msg("single-source run failed")
			return
		}
		findings, stats = f, s
	case ModeSuperSource:
		findings, stats = e.detector.RunSuperSource(strategy.Policy{Precision: strategy.Relaxed})
	default:
		findings, stats = e.detector.RunClassic(strategy.Policy{Precision: strategy.Precise})
	}
	timer.ObserveDuration()

	mode := string(e.mode)
	metrics.BellmanFordRuns.WithLabelValues(mode).Add(float64(stats.BellmanFordRuns))
	metrics.EdgesProcessed.WithLabelValues(mode).Add(float64(stats.EdgesProcessed))
	metrics.CyclesFound.WithLabelValues(mode).Add(float64(stats.CyclesFound))
	metrics.CyclesAccepted.WithLabelValues(mode).Add(float64(len(findings)))
	metrics.CyclesDuplicate.WithLabelValues(mode).Add(float64(stats.CyclesFound - len(findings)))
	metrics.DedupFilterLen.Set(float64(e.detector.Dedup().Len()))

	e.reporter.RecordFound(len(findings))
	if line, ok := e.reporter.Tick(now, e.detector.Buckets().Count()); ok {
		fmt.Println(line)
	}
	for _, f := range findings {
		for _, s := range e.sinks {
			if err := s.WriteFinding(now, f); err != nil {
				e.logger.Error().Err(err).Msg("sink write failed")
			}
		}
	}
}
