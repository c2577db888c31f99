package ingest

import (
	"bytes"
	"testing"
)

func TestWriteThenReadMessageRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"base":"BTC","quote":"USDT","price":1.0}`)
	if err := WriteMessage(&buf, payload); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	c := NewConn(&buf)
	got, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %s want %s", got, payload)
	}
}

func TestReadMessageMultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	first := []byte(`{"base":"BTC","quote":"USDT","price":1.0}`)
	second := []byte(`{"base":"ETH","quote":"USDT","price":2.0}`)
	if err := WriteMessage(&buf, first); err != nil {
		t.Fatal(err)
	}
	if err := WriteMessage(&buf, second); err != nil {
		t.Fatal(err)
	}

	c := NewConn(&buf)
	got1, err := c.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	got2, err := c.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got1, first) || !bytes.Equal(got2, second) {
		t.Fatalf("frames did not round trip in order")
	}
}

func TestReadMessageFailsOnShortStream(t *testing.T) {
	c := NewConn(bytes.NewReader([]byte("000000000000001")))
	if _, err := c.ReadMessage(); err == nil {
		t.Fatalf("expected error on truncated length prefix")
	}
}

func TestReadMessageFailsOnBadLengthPrefix(t *testing.T) {
	c := NewConn(bytes.NewReader([]byte("not-a-length!!!!payload")))
	if _, err := c.ReadMessage(); err == nil {
		t.Fatalf("expected error on non-numeric length prefix")
	}
}
