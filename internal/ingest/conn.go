package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// LengthPrefixSize is the fixed width of the ASCII decimal length prefix
// that precedes every payload on the wire.
const LengthPrefixSize = 16

// Conn reads length-prefixed JSON messages off an underlying stream. It
// owns no transport of its own; callers dial the TCP connection and hand
// it the io.Reader.
type Conn struct {
	r *bufio.Reader
}

// NewConn wraps r for length-prefixed reads.
func NewConn(r io.Reader) *Conn {
	return &Conn{r: bufio.NewReaderSize(r, 64*1024)}
}

// ReadMessage blocks for exactly one length-prefixed message and returns its
// payload bytes. A read failure here is fatal to the ingest loop per the
// error handling policy; callers should terminate rather than retry.
func (c *Conn) ReadMessage() ([]byte, error) {
	var lenBuf [LengthPrefixSize]byte
	if _, err := io.ReadFull(c.r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("ingest: read length prefix: %w", err)
	}
	n, err := strconv.Atoi(string(lenBuf[:]))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("ingest: invalid length prefix %q", lenBuf[:])
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(c.r, body); err != nil {
		return nil, fmt.Errorf("ingest: read payload of %d bytes: %w", n, err)
	}
	return body, nil
}

// WriteMessage frames payload with a zero-padded 16-byte ASCII decimal
// length and writes it to w. Used by tests and any loopback tooling; the
// live feed is always the read side.
func WriteMessage(w io.Writer, payload []byte) error {
	prefix := fmt.Sprintf("%0*d", LengthPrefixSize, len(payload))
	if len(prefix) != LengthPrefixSize {
		return fmt.Errorf("ingest: payload too large for a %d-byte length prefix", LengthPrefixSize)
	}
	if _, err := w.Write([]byte(prefix)); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
