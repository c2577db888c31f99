package sink

import (
	"fmt"
	"io"
	"time"

	"arbitr/internal/arbitrage"
)

// Stdout writes one human-readable line per finding.
type Stdout struct {
	w io.Writer
}

// NewStdout wraps w (typically os.Stdout) as a sink.
func NewStdout(w io.Writer) *Stdout {
	return &Stdout{w: w}
}

func (s *Stdout) WriteFinding(now time.Time, f arbitrage.Finding) error {
	_, err := fmt.Fprintln(s.w, arbitrage.FormatFinding(now, f))
	return err
}

func (s *Stdout) Close() error { return nil }
