package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	EdgesUpserted   = prometheus.NewCounter(prometheus.CounterOpts{Name: "edges_upserted_total", Help: "Total edge upserts accepted"})
	EdgesRejected   = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "edges_rejected_total", Help: "Total edge upserts rejected by reason"}, []string{"reason"})
	NodesInterned   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "nodes_interned", Help: "Distinct nodes currently in the registry"})
	MessagesDropped = prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_messages_dropped_total", Help: "Malformed ingest messages dropped"})

	BellmanFordRuns     = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "bellman_ford_runs_total", Help: "Bellman-Ford runs by detector mode"}, []string{"mode"})
	EdgesProcessed      = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "bellman_ford_edges_processed_total", Help: "Edges relaxed by detector mode"}, []string{"mode"})
	CyclesFound         = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cycles_found_total", Help: "Candidate cycles found before acceptance filtering"}, []string{"mode"})
	CyclesAccepted      = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cycles_accepted_total", Help: "Cycles accepted and reported by detector mode"}, []string{"mode"})
	CyclesDuplicate     = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cycles_duplicate_total", Help: "Candidate cycles not reported: recent duplicates plus those failing the acceptance filters"}, []string{"mode"})
	DetectorTickSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "detector_tick_seconds", Help: "Wall time of one detector invocation", Buckets: prometheus.ExponentialBuckets(0.00001, 2, 20)}, []string{"mode"})

	BenchmarkSpeedupRatio = prometheus.NewGauge(prometheus.GaugeOpts{Name: "benchmark_speedup_ratio", Help: "Classic mode's average iteration time divided by super-source mode's"})

	DedupFilterLen = prometheus.NewGauge(prometheus.GaugeOpts{Name: "dedup_filter_len", Help: "Entries currently held by the duplicate filter"})
	CSVRowsWritten = prometheus.NewCounter(prometheus.CounterOpts{Name: "csv_rows_written_total", Help: "Rows appended to the CSV sink"})
)

func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		EdgesUpserted, EdgesRejected, NodesInterned, MessagesDropped,
		BellmanFordRuns, EdgesProcessed, CyclesFound, CyclesAccepted, CyclesDuplicate, DetectorTickSeconds,
		BenchmarkSpeedupRatio, DedupFilterLen, CSVRowsWritten,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	logger.Info().Msg("Prometheus metrics initialized")
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
