package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"arbitr/internal/arbitrage"
	"arbitr/internal/infra/metrics"
)

// CSV appends one row per accepted cycle to a session file, classic mode
// only. The header is written at open; every row is flushed immediately
// so a killed process never loses an already-reported cycle.
type CSV struct {
	f         *os.File
	w         *csv.Writer
	path      string
	sessionAt time.Time
	rows      int
}

// OpenCSV creates (or truncates) path, writes the header row, and returns a
// ready-to-use sink.
func OpenCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: open csv %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "profit_factor", "profit_pct", "cycle_length", "cycle_type", "path", "exchanges_involved"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("sink: write csv header: %w", err)
	}
	w.Flush()
	return &CSV{f: f, w: w, path: path, sessionAt: time.Now()}, nil
}

func (c *CSV) WriteFinding(now time.Time, f arbitrage.Finding) error {
	path := append(append([]string(nil), f.Labels...), f.Labels[0])
	exchanges := make([]string, 0, len(f.Exchanges))
	for e := range f.Exchanges {
		exchanges = append(exchanges, e)
	}
	sort.Strings(exchanges)

	row := []string{
		now.Format("2006-01-02 15:04:05"),
		fmt.Sprintf("%.10f", f.Profit),
		fmt.Sprintf("%.6f", (f.Profit-1.0)*100.0),
		fmt.Sprintf("%d", len(f.Labels)),
		f.CycleType(),
		strings.Join(path, " -> "),
		strings.Join(exchanges, ";"),
	}
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("sink: write csv row: %w", err)
	}
	c.w.Flush()
	c.rows++
	metrics.CSVRowsWritten.Inc()
	return c.w.Error()
}

// Close flushes, closes the file, and emits a one-line session summary.
func (c *CSV) Close() error {
	c.w.Flush()
	err := c.f.Close()

	duration := time.Since(c.sessionAt)
	rate := 0.0
	if duration.Seconds() > 0 {
		rate = float64(c.rows) / duration.Seconds()
	}
	fmt.Printf("[CSV Logger] session summary: duration=%s arbitrages=%d avg_rate=%.4f/s file=%s\n",
		duration.Round(time.Second), c.rows, rate, c.path)
	return err
}
