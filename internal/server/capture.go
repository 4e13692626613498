package server

import (
	"bytes"
	"errors"
	"io"
	"slices"

	"github.com/shravanasati/reqdump/internal/request"
)

var headEnd = []byte("\r\n\r\n")

// readRequest reads one request from r. It stops once the header block is
// terminated and the body described by Content-Length or chunked framing
// has arrived, at EOF, or when limit bytes have been read.
//
// Whatever was read is returned even when err is not nil.
func readRequest(r io.Reader, bufSize, limit int) ([]byte, error) {
	buf := make([]byte, 0, min(bufSize, limit))
	var body *bodyTracker

	for {
		if len(buf) >= limit {
			if body != nil {
				return buf, ErrBodyTooLarge
			}
			return buf, ErrHeaderTooLarge
		}
		if len(buf) == cap(buf) {
			buf = slices.Grow(buf, min(max(cap(buf), 1), limit-len(buf)))
		}

		n, err := r.Read(buf[len(buf):min(cap(buf), limit)])
		prev := len(buf)
		buf = buf[:prev+n]

		if body == nil && n > 0 {
			from := max(0, prev-len(headEnd)+1)
			if i := bytes.Index(buf[from:], headEnd); i != -1 {
				body = newBodyTracker(buf[:from+i+len(headEnd)])
			}
		}
		if body != nil && body.complete(buf) {
			return buf, nil
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return buf, err
		}
	}
}

// readOnce performs a single read, the way a plain capture tool would.
func readOnce(r io.Reader, bufSize int) ([]byte, error) {
	buf := make([]byte, bufSize)
	n, err := r.Read(buf)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return buf[:n], err
}

// bodyTracker decides when the body that follows a complete head has
// arrived. The head is parsed once; chunked bodies are walked incrementally.
type bodyTracker struct {
	headLen int
	framing request.Framing
	chunks  request.ChunkScanner
	// unframed is set when the framing headers cannot be used, in which case
	// nothing past the head is waited for.
	unframed bool
}

func newBodyTracker(head []byte) *bodyTracker {
	bt := &bodyTracker{headLen: len(head)}
	req, err := request.Parse(head)
	if err == nil {
		bt.framing, err = req.BodyFraming()
	}
	bt.unframed = err != nil
	return bt
}

func (bt *bodyTracker) complete(buf []byte) bool {
	if bt.unframed {
		return true
	}
	body := buf[bt.headLen:]
	if bt.framing.Chunked {
		done, err := bt.chunks.Scan(body)
		return done || err != nil
	}
	return len(body) >= bt.framing.Length
}
