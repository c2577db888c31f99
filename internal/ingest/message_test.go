package ingest

import "testing"

func TestParseUpdateDecodesFields(t *testing.T) {
	body := []byte(`{"base":"BTC","quote":"USDT","exchange":"Binance","price":67123.4,"symbol":"BTCUSDT"}`)
	u, err := ParseUpdate(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Base != "BTC" || u.Quote != "USDT" || u.Exchange != "Binance" || u.Symbol != "BTCUSDT" {
		t.Fatalf("unexpected decode: %+v", u)
	}
	if u.Price != 67123.4 {
		t.Fatalf("unexpected price: %v", u.Price)
	}
}

func TestParseUpdateRejectsMissingBaseOrQuote(t *testing.T) {
	if _, err := ParseUpdate([]byte(`{"exchange":"Binance","price":1.0}`)); err == nil {
		t.Fatalf("expected rejection of update missing base/quote")
	}
}

func TestParseUpdateRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseUpdate([]byte(`not json`)); err == nil {
		t.Fatalf("expected rejection of malformed JSON")
	}
}

func TestLabelsForExchangeUpdate(t *testing.T) {
	u := Update{Base: "BTC", Quote: "USDT", Exchange: "Binance"}
	src, dst := u.Labels()
	if src != "BTC_Binance" || dst != "USDT_Binance" {
		t.Fatalf("unexpected labels: %s -> %s", src, dst)
	}
}

func TestLabelsForCrossUpdate(t *testing.T) {
	u := Update{Base: "BTC", Quote: "BTC_Binance", Exchange: CrossExchange}
	src, dst := u.Labels()
	if src != "BTC" || dst != "BTC_Binance" {
		t.Fatalf("unexpected cross labels: %s -> %s", src, dst)
	}
}

func TestLabelsLeavesAlreadySuffixedFieldsAsIs(t *testing.T) {
	u := Update{Base: "BTC_Binance", Quote: "USDT", Exchange: "Binance"}
	src, dst := u.Labels()
	if src != "BTC_Binance" || dst != "USDT_Binance" {
		t.Fatalf("unexpected labels: %s -> %s", src, dst)
	}
}

func TestLabelsOmittedExchange(t *testing.T) {
	u := Update{Base: "BTC", Quote: "USDT"}
	src, dst := u.Labels()
	if src != "BTC_" || dst != "USDT_" {
		t.Fatalf("unexpected labels for empty exchange: %s -> %s", src, dst)
	}
}
