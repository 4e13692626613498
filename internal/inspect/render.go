// Package inspect renders parsed requests for humans.
package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shravanasati/reqdump/internal/request"
)

// NotUTF8 replaces a body that is not valid UTF-8.
const NotUTF8 = "<not utf8>"

// RenderOptions controls Render.
type RenderOptions struct {
	// Color styles the output with lipgloss. Styles degrade to plain text when
	// Output is not a terminal.
	Color bool
	// Output is where the rendered text is going to be written. With Color
	// set and no Output, ANSI styling is always applied.
	Output io.Writer
	// MaxBody caps the number of body bytes shown. Zero shows everything.
	MaxBody int
}

type styles struct {
	method func(string) string
	name   func(string) string
	body   func(string) string
	errMsg func(string) string
	dim    func(string) string
}

func plain(v string) string { return v }

func styled(st lipgloss.Style) func(string) string {
	return func(v string) string { return st.Render(v) }
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{method: plain, name: plain, body: plain, errMsg: plain, dim: plain}
	}

	var r *lipgloss.Renderer
	if w != nil {
		r = lipgloss.NewRenderer(w)
	} else {
		r = lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		method: styled(r.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Background(lipgloss.Color("12")).Padding(0, 1)),
		name:   styled(r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)),
		body:   styled(r.NewStyle().Foreground(lipgloss.Color("46"))),
		errMsg: styled(r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
		dim:    styled(r.NewStyle().Faint(true)),
	}
}

// Render describes req as an indented, multi-line block.
func Render(req *request.Request, opts RenderOptions) string {
	return render(req, opts, newStyles(opts.Output, opts.Color))
}

func render(req *request.Request, opts RenderOptions, st styles) string {
	var b strings.Builder
	rl := req.RequestLine

	b.WriteString("HTTPMessage\n")
	fmt.Fprintf(&b, "  start_line: %s %s %s\n", st.method(rl.Method), rl.Target, rl.HTTPVersion)

	if req.Headers.Len() == 0 {
		b.WriteString("  header: " + st.dim("(none)") + "\n")
	} else {
		b.WriteString("  header:\n")
		for name, value := range req.Headers.All() {
			fmt.Fprintf(&b, "    %s: %s\n", st.name(name), value)
		}
	}

	b.WriteString("  body: " + renderBody(req.Body, opts.MaxBody, st) + "\n")
	return b.String()
}

func renderBody(body []byte, maxBody int, st styles) string {
	if !utf8.Valid(body) {
		return st.errMsg(NotUTF8)
	}

	shown, rest := body, 0
	if maxBody > 0 && len(body) > maxBody {
		cut := maxBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		shown, rest = body[:cut], len(body)-cut
	}

	out := st.body(strconv.Quote(string(shown)))
	if rest > 0 {
		out += st.dim(fmt.Sprintf(" … (%d more bytes)", rest))
	}
	return out
}
