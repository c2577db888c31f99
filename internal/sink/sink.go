// Package sink implements the detector's two output collaborators: the
// stdout reporter and the optional CSV file logger.
package sink

import (
	"time"

	"arbitr/internal/arbitrage"
)

// Sink receives one accepted finding at a time, in report order.
type Sink interface {
	WriteFinding(now time.Time, f arbitrage.Finding) error
	Close() error
}
