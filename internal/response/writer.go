package response

import (
	"fmt"
	"io"

	"github.com/shravanasati/reqdump/internal/headers"
)

// Writer writes a response in order: status line, headers, then body.
type Writer struct {
	conn  io.Writer
	phase phase
}

func NewWriter(conn io.Writer) *Writer {
	return &Writer{conn: conn, phase: phaseStatusLine}
}

// Done reports whether the response has been written completely.
func (rw *Writer) Done() bool {
	return rw.phase == phaseDone
}

func (rw *Writer) WriteStatusLine(statusCode StatusCode) error {
	if rw.phase != phaseStatusLine {
		return ErrStatusLineAlreadyWritten
	}
	_, err := fmt.Fprintf(rw.conn, "HTTP/1.1 %d %s\r\n", statusCode, GetStatusReason(statusCode))
	if err != nil {
		return err
	}

	rw.phase = rw.phase.next(true)
	return nil
}

// WriteHeaders writes h and the empty line that ends the head. Without
// withBody the response is complete afterwards and WriteBody fails.
func (rw *Writer) WriteHeaders(h *headers.Headers, withBody bool) error {
	if rw.phase != phaseHeaders {
		return ErrHeadersAlreadyWritten
	}
	for k, v := range h.All() {
		if _, err := fmt.Fprintf(rw.conn, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(rw.conn, "\r\n"); err != nil {
		return err
	}
	rw.phase = rw.phase.next(withBody)
	return nil
}

func (rw *Writer) WriteBody(b io.Reader) error {
	if rw.phase != phaseBody {
		return ErrNoBodyState
	}
	_, err := io.Copy(rw.conn, b)
	if err != nil {
		return err
	}
	rw.phase = rw.phase.next(true)
	return nil
}
