// Package ingest decodes exchange price updates off the wire and resolves
// them to the (source label, destination label) pairs the graph store
// expects.
package ingest

import (
	"encoding/json"
	"fmt"
)

// CrossExchange marks a bridging update between a bare asset node and its
// per-exchange node (e.g. "BTC" -> "BTC_Binance"), mirroring graph.ExchangeCross.
const CrossExchange = "Cross"

// knownExchangeSuffixes lists the "_<exchange>" suffixes Labels recognizes
// as already-qualified node labels, so a feed that sends pre-suffixed
// base/quote fields doesn't get double-suffixed.
var knownExchangeSuffixes = []string{"_Binance", "_OKX", "_Bybit"}

func hasKnownExchangeSuffix(symbol string) bool {
	for _, suf := range knownExchangeSuffixes {
		if len(symbol) > len(suf) && symbol[len(symbol)-len(suf):] == suf {
			return true
		}
	}
	return false
}

// Update is one price tick as received from the feed.
type Update struct {
	Base     string  `json:"base"`
	Quote    string  `json:"quote"`
	Exchange string  `json:"exchange"`
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
}

// ParseUpdate decodes a single JSON-encoded update from a raw message body.
func ParseUpdate(body []byte) (Update, error) {
	var u Update
	if err := json.Unmarshal(body, &u); err != nil {
		return Update{}, fmt.Errorf("ingest: decode update: %w", err)
	}
	if u.Base == "" || u.Quote == "" {
		return Update{}, fmt.Errorf("ingest: update missing base or quote")
	}
	return u, nil
}

// Labels derives the (source, destination) node labels this update should
// be upserted under: a bare asset pair for Cross updates, or an
// exchange-suffixed pair otherwise — unless base/quote already carries a
// known exchange suffix, in which case it is used as-is.
func (u Update) Labels() (source, dest string) {
	if u.Exchange == CrossExchange {
		return u.Base, u.Quote
	}
	source = u.Base
	if !hasKnownExchangeSuffix(source) {
		source += "_" + u.Exchange
	}
	dest = u.Quote
	if !hasKnownExchangeSuffix(dest) {
		dest += "_" + u.Exchange
	}
	return source, dest
}
