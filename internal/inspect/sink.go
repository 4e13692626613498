package inspect

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/shravanasati/reqdump/internal/request"
)

// rawPreview caps how much of a rejected buffer is echoed back.
const rawPreview = 256

// Sink renders every request the server hands it to a single writer.
// It is safe for concurrent use.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	opts   RenderOptions
	styles styles
}

func NewSink(w io.Writer, opts RenderOptions) *Sink {
	return &Sink{w: w, opts: opts, styles: newStyles(w, opts.Color)}
}

// Message writes the rendered request, prefixed with the peer address.
func (s *Sink) Message(remote string, req *request.Request) {
	out := render(req, s.opts, s.styles)

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\n%s", s.styles.dim("from"), remote, out)
}

// Rejected writes the parse error and the start of the raw bytes.
func (s *Sink) Rejected(remote string, raw []byte, err error) {
	preview := raw
	suffix := ""
	if len(preview) > rawPreview {
		preview = preview[:rawPreview]
		suffix = s.styles.dim(fmt.Sprintf(" … (%d more bytes)", len(raw)-rawPreview))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\nrejected: %s\n  raw: %s%s\n",
		s.styles.dim("from"), remote,
		s.styles.errMsg(err.Error()),
		strconv.Quote(string(preview)), suffix)
}
