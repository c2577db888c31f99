package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"arbitr/internal/arbitrage"
)

func TestStdoutWritesOneLinePerFinding(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdout(&buf)
	f := arbitrage.Finding{Mode: arbitrage.ModeClassic, Profit: 1.05, Labels: []string{"A_X", "B_X", "C_X"}}
	if err := s.WriteFinding(time.Now(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "A_X->B_X->C_X->A_X") {
		t.Fatalf("expected output to contain the repeated-first-node path, got %q", buf.String())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
