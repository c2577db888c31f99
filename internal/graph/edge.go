package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"arbitr/internal/infra/metrics"
)

const (
	// MinPrice and MaxPrice bound non-Cross edge prices.
	MinPrice = 1e-8
	MaxPrice = 1e8
	// CrossPriceTolerance is the allowed deviation of a Cross edge's price
	// from exactly 1.0.
	CrossPriceTolerance = 1e-9
	// ExchangeCross marks the zero-weight bridge layer between the same
	// symbol quoted on different venues.
	ExchangeCross = "Cross"
	// StablecoinWarnLow and StablecoinWarnHigh bound the "expected" price
	// range for a pair where both legs look like stablecoins.
	StablecoinWarnLow  = 0.99
	StablecoinWarnHigh = 1.01
)

// stablecoinSubstrings is a warning-only heuristic: substring match on
// common stablecoin tickers. It is deliberately permissive (false
// positives on labels that merely contain these letters) and never
// rejects an update.
var stablecoinSubstrings = []string{"USDT", "USDC", "TUSD"}

// Edge is a directed arc in the rate graph.
type Edge struct {
	Source, Dest int
	Weight       float64 // -ln(Price)
	Price        float64
	Exchange     string
	Symbol       string
}

// Store is the edge store: the sole mutating surface onto the rate
// graph, backed by a Registry for node interning.
type Store struct {
	reg    *Registry
	edges  []Edge
	logger zerolog.Logger
}

// NewStore returns an edge store backed by reg, logging rejections and
// warnings through logger.
func NewStore(reg *Registry, logger zerolog.Logger) *Store {
	return &Store{reg: reg, logger: logger}
}

// Registry returns the node registry backing this store.
func (s *Store) Registry() *Registry { return s.reg }

// Edges returns the current edge list in insertion order. Callers must not
// mutate the returned slice.
func (s *Store) Edges() []Edge { return s.edges }

// ErrInvalidPrice is returned by Upsert when price fails validation.
type ErrInvalidPrice struct {
	Price    float64
	Exchange string
	Reason   string
}

func (e *ErrInvalidPrice) Error() string {
	return fmt.Sprintf("invalid price %v for exchange %q: %s", e.Price, e.Exchange, e.Reason)
}

// Upsert validates and inserts or updates the directed edge srcLabel ->
// dstLabel, and (for non-Cross edges) its inverse. It returns the forward
// edge's weight, or an error if the update was rejected.
func (s *Store) Upsert(srcLabel, dstLabel string, price float64, exchange, symbol string) (float64, error) {
	if !isFinitePositive(price) {
		metrics.EdgesRejected.WithLabelValues("not_finite_positive").Inc()
		return 0, &ErrInvalidPrice{Price: price, Exchange: exchange, Reason: "not finite and positive"}
	}

	if exchange == ExchangeCross {
		if math.Abs(price-1.0) > CrossPriceTolerance {
			metrics.EdgesRejected.WithLabelValues("cross_price_not_one").Inc()
			return 0, &ErrInvalidPrice{Price: price, Exchange: exchange, Reason: "cross edge price must be 1"}
		}
	} else {
		if price < MinPrice || price > MaxPrice {
			metrics.EdgesRejected.WithLabelValues("out_of_bounds").Inc()
			return 0, &ErrInvalidPrice{Price: price, Exchange: exchange, Reason: "out of bounds"}
		}
	}

	if looksLikeStablecoin(srcLabel) && looksLikeStablecoin(dstLabel) {
		if price < StablecoinWarnLow || price > StablecoinWarnHigh {
			s.logger.Warn().Str("src", srcLabel).Str("dst", dstLabel).Float64("price", price).
				Msg("stablecoin pair priced outside expected band")
		}
	}

	u := s.reg.Intern(srcLabel)
	v := s.reg.Intern(dstLabel)

	w := -math.Log(price)
	if !isFinite(w) {
		metrics.EdgesRejected.WithLabelValues("weight_not_finite").Inc()
		return 0, &ErrInvalidPrice{Price: price, Exchange: exchange, Reason: "weight not finite"}
	}

	metrics.NodesInterned.Set(float64(s.reg.Len()))
	s.upsertDirectional(u, v, w, price, exchange, symbol)
	metrics.EdgesUpserted.Inc()

	if exchange != ExchangeCross {
		priceInv := 1.0 / price
		wInv := -math.Log(priceInv)
		if isFinite(wInv) {
			invSymbol := symbol
			if invSymbol != "" {
				invSymbol += "_INV"
			}
			s.upsertDirectional(v, u, wInv, priceInv, exchange, invSymbol)
		}
	}

	return w, nil
}

// upsertDirectional applies the find-or-append recipe for exactly one
// direction, without touching the inverse. Kept separate from Upsert so the
// inverse edge's own bookkeeping never recurses into a second inverse.
func (s *Store) upsertDirectional(u, v int, w, price float64, exchange, symbol string) {
	for i := range s.edges {
		e := &s.edges[i]
		if e.Source == u && e.Dest == v {
			e.Weight = w
			e.Price = price
			if exchange != "" {
				e.Exchange = exchange
			}
			if symbol != "" {
				e.Symbol = symbol
			}
			return
		}
	}
	s.edges = append(s.edges, Edge{Source: u, Dest: v, Weight: w, Price: price, Exchange: exchange, Symbol: symbol})
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isFinitePositive(f float64) bool {
	return isFinite(f) && f > 0
}

func looksLikeStablecoin(label string) bool {
	upper := strings.ToUpper(label)
	for _, sub := range stablecoinSubstrings {
		if strings.Contains(upper, sub) {
			return true
		}
	}
	return false
}

// Summary reports per-exchange edge counts, grounded on the original
// implementation's printGraphSummary debug dump.
type Summary struct {
	Nodes, Edges                            int
	BinanceEdges, OKXEdges, BybitEdges, CrossEdges int
}

// Summarize computes a Summary over the current graph state.
func (s *Store) Summarize() Summary {
	sum := Summary{Nodes: s.reg.Len(), Edges: len(s.edges)}
	for _, e := range s.edges {
		switch e.Exchange {
		case ExchangeCross:
			sum.CrossEdges++
		case "Binance":
			sum.BinanceEdges++
		case "OKX":
			sum.OKXEdges++
		case "Bybit":
			sum.BybitEdges++
		}
	}
	return sum
}
