package arbitrage

import (
	"fmt"
	"time"
)

// WarmupGate suppresses detection for a fixed window after the first tick,
// and while the graph is still too small to contain a cycle.
type WarmupGate struct {
	seconds      int
	started      bool
	t0           time.Time
	lastWarnSec  int64
}

// NewWarmupGate returns a gate that blocks detection for seconds after its
// first call to Active.
func NewWarmupGate(seconds int) *WarmupGate {
	return &WarmupGate{seconds: seconds, lastWarnSec: -1}
}

// Active reports whether detection should still be suppressed for the given
// node count, emitting at most one countdown line per second via warn.
func (g *WarmupGate) Active(now time.Time, nodeCount int, warn func(line string)) bool {
	if !g.started {
		g.started = true
		g.t0 = now
	}
	elapsed := now.Sub(g.t0)
	remaining := time.Duration(g.seconds)*time.Second - elapsed
	if remaining > 0 || nodeCount < 3 {
		sec := now.Unix()
		if sec != g.lastWarnSec && warn != nil {
			secsLeft := int(remaining / time.Second)
			if secsLeft < 0 {
				secsLeft = 0
			}
			warn(fmt.Sprintf("[warm-up] ignoring arbitrage for another %ds @ %s", secsLeft, now.Format("15:04:05")))
			g.lastWarnSec = sec
		}
		return true
	}
	return false
}
