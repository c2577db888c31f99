package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"arbitr/internal/api/rest"
	"arbitr/internal/arbitrage"
	"arbitr/internal/benchmark"
	"arbitr/internal/config"
	"arbitr/internal/graph"
	"arbitr/internal/infra/health"
	"arbitr/internal/infra/http/middleware"
	"arbitr/internal/infra/log"
	"arbitr/internal/infra/metrics"
	"arbitr/internal/infra/netutil"
	"arbitr/internal/infra/runner"
	"arbitr/internal/infra/version"
	"arbitr/internal/ingest"
	"arbitr/internal/sink"
	"arbitr/internal/strategy"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logger := log.NewLogger(cfg)

	store := graph.NewStore(graph.NewRegistry(), logger)
	installSummaryDumpHandler(store, logger)

	registry := metrics.Init(logger)
	mux := http.NewServeMux()
	adminCIDRs := netutil.MustParseCIDRs(cfg.Server.AdminAllowCIDRs)
	mux.Handle("/metrics", middleware.AdminGate(adminCIDRs, metrics.Handler(registry)))
	mux.HandleFunc("/healthz", health.Healthz)
	mux.HandleFunc("/readyz", health.Readyz)
	mux.HandleFunc("/version", version.Handler)
	mux.Handle("/status", rest.New(store).Handler())
	if cfg.Server.Pprof {
		mux.Handle("/debug/pprof/", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Index)))
		mux.Handle("/debug/pprof/cmdline", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Cmdline)))
		mux.Handle("/debug/pprof/profile", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Profile)))
		mux.Handle("/debug/pprof/symbol", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Symbol)))
		mux.Handle("/debug/pprof/trace", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Trace)))
	}
	handler := middleware.RequestID(middleware.Logger(logger)(mux))
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	choice := cfg.Detector.Mode
	if isInteractive() {
		choice = promptForMode()
	}

	conn, err := net.Dial("tcp", cfg.Ingest.Addr)
	if err != nil {
		logger.Error().Err(err).Str("addr", cfg.Ingest.Addr).Msg("ingest connect failed")
		os.Exit(1)
	}
	defer conn.Close()
	reader := ingest.NewConn(conn)

	g := &runner.Group{}
	var workerErrCh <-chan error

	switch choice {
	case "benchmark":
		workerErrCh = g.Go(ctx, func(ctx context.Context) error {
			return runBenchmark(ctx, reader, store, cfg, logger)
		})
	default:
		sinks := buildSinks(cfg, modeFor(choice))
		engCfg := arbitrage.Config{
			Mode:             modeFor(choice),
			SingleSourceNode: cfg.Detector.SingleSourceNode,
			WarmupSeconds:    cfg.Detector.WarmupSeconds,
			Exchanges:        cfg.Detector.Exchanges,
		}
		eng := arbitrage.New(reader, store, engCfg, sinks, logger)
		workerErrCh = g.Go(ctx, func(ctx context.Context) error {
			return eng.Run(ctx)
		})
	}

	health.SetReady(true)
	logger.Info().Str("region", cfg.Network.Region).Str("mode", choice).Msg("arbitrage detector started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	select {
	case <-ctx.Done():
	case s := <-sigCh:
		logger.Info().Str("signal", s.String()).Msg("shutdown signal received")
	case err := <-workerErrCh:
		if err != nil {
			logger.Error().Err(err).Msg("worker error")
			exitCode = 1
		}
	}

	health.SetReady(false)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("shutdown complete")
	os.Exit(exitCode)
}

// isInteractive reports whether stdin looks like a terminal worth prompting,
// rather than a piped/non-interactive invocation (e.g. under a supervisor).
func isInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// promptForMode implements the CLI surface's interactive mode selector,
// re-prompting on any input outside {1,2,3}.
func promptForMode() string {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("1. All sources")
		fmt.Println("2. Single source")
		fmt.Println("3. Benchmark")
		fmt.Print("Choice: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "all"
		}
		switch strings.TrimSpace(line) {
		case "1":
			return "all"
		case "2":
			return "single"
		case "3":
			return "benchmark"
		}
	}
}

func modeFor(choice string) arbitrage.Mode {
	switch choice {
	case "single":
		return arbitrage.ModeSingle
	case "super-source":
		return arbitrage.ModeSuperSource
	default:
		return arbitrage.ModeClassic
	}
}

func buildSinks(cfg config.Config, mode arbitrage.Mode) []arbitrage.Sink {
	sinks := []arbitrage.Sink{sink.NewStdout(os.Stdout)}
	if cfg.CSV.Enabled && mode == arbitrage.ModeClassic {
		path := fmt.Sprintf("%s/arbitrage_results_%s.csv", cfg.CSV.Dir, time.Now().Format("20060102_150405"))
		csv, err := sink.OpenCSV(path)
		if err == nil {
			sinks = append(sinks, csv)
		}
	}
	return sinks
}

// runBenchmark drives the classic-vs-super-source comparison harness
// off the same ingest stream used by the live detector modes.
func runBenchmark(ctx context.Context, reader *ingest.Conn, store *graph.Store, cfg config.Config, logger zerolog.Logger) error {
	detector := arbitrage.NewDetector(store, cfg.Detector.Exchanges)
	h := benchmark.NewHarness(detector, strategy.Policy{Precision: strategy.Relaxed})
	warmup := benchmark.NewWarmup(cfg.Benchmark.WarmupSeconds)
	reporter := benchmark.NewReporter(cfg.Benchmark.ReportSeconds)

	for {
		if ctx.Err() != nil {
			return nil
		}
		body, err := reader.ReadMessage()
		if err != nil {
			return fmt.Errorf("benchmark: ingest read failed: %w", err)
		}
		update, err := ingest.ParseUpdate(body)
		if err != nil {
			logger.Warn().Err(err).Msg("dropping malformed update")
			continue
		}
		src, dst := update.Labels()
		if _, err := store.Upsert(src, dst, update.Price, update.Exchange, update.Symbol); err != nil {
			logger.Warn().Err(err).Msg("rejecting invalid edge update")
			continue
		}

		now := time.Now()
		if !warmup.Done(now, func(line string) { fmt.Println(line) }) {
			continue
		}
		h.Tick(func() time.Duration { return time.Since(now) })
		if reporter.Due(now) {
			reg := store.Registry()
			fmt.Println(benchmark.Format(now, reg.Len(), len(store.Edges()), h))
			metrics.BenchmarkSpeedupRatio.Set(h.SpeedupRatio())
			h.ResetWindow()
		}
	}
}

// installSummaryDumpHandler wires SIGUSR1 to a graph summary dump on
// stdout, supplementing the spec with the original implementation's
// debug aid for inspecting live graph state.
func installSummaryDumpHandler(store *graph.Store, logger zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	go func() {
		for range sigCh {
			s := store.Summarize()
			fmt.Println("=== CURRENT GRAPH STATE ===")
			fmt.Printf("Total nodes: %d\nTotal edges: %d\n", s.Nodes, s.Edges)
			fmt.Printf("  Binance edges: %d\n  OKX edges:     %d\n  Bybit edges:   %d\n  Cross edges:   %d\n",
				s.BinanceEdges, s.OKXEdges, s.BybitEdges, s.CrossEdges)
		}
	}()
}
