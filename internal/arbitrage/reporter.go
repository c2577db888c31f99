package arbitrage

import (
	"fmt"
	"strings"
	"time"
)

// Reporter implements the per-second summary state machine: it tracks how
// many cycles were accepted in the current wall-clock second and flushes a
// one-line summary whenever the second rolls over.
type Reporter struct {
	label           string
	lastSecond      int64
	foundThisSecond int
}

// NewReporter returns a reporter; label prefixes every line it emits (e.g.
// "[SuperSource]") so interleaved modes stay distinguishable on stdout.
func NewReporter(label string) *Reporter {
	return &Reporter{label: label}
}

// Tick observes the current wall-clock second and, if it differs from the
// last observed second, returns a summary line to print and resets the
// per-second counter. The returned bool is false when no line should print.
// bandCount is the number of distinct profit bands observed so far this
// session; it's appended to the summary line.
func (r *Reporter) Tick(now time.Time, bandCount int) (string, bool) {
	sec := now.Unix()
	if r.lastSecond == 0 {
		r.lastSecond = sec
		return "", false
	}
	if sec == r.lastSecond {
		return "", false
	}

	prefix := ""
	if r.label != "" {
		prefix = "[" + r.label + "] "
	}

	var line string
	from := time.Unix(r.lastSecond, 0).Format("15:04:05")
	to := now.Format("15:04:05")
	if r.foundThisSecond == 0 {
		line = fmt.Sprintf("%s--- No arbitrage between %s and %s ---", prefix, from, to)
	} else {
		line = fmt.Sprintf("%s=== Arbitrages found @ %s => %d ===", prefix, from, r.foundThisSecond)
	}
	line = fmt.Sprintf("%s (%d profit bands observed this session)", line, bandCount)
	r.foundThisSecond = 0
	r.lastSecond = sec
	return line, true
}

// RecordFound increments the current second's acceptance count.
func (r *Reporter) RecordFound(n int) { r.foundThisSecond += n }

// FormatFinding renders one accepted cycle as a stdout line: timestamp,
// profit to 10 decimal digits, and the full path with the first node
// repeated at the end.
func FormatFinding(now time.Time, f Finding) string {
	path := append(append([]string(nil), f.Labels...), f.Labels[0])
	return fmt.Sprintf("[%s] %s profit=%.10f path=%s",
		now.Format("15:04:05"), f.Mode, f.Profit, strings.Join(path, "->"))
}
