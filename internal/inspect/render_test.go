package inspect

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shravanasati/reqdump/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, data string) *request.Request {
	t.Helper()
	req, err := request.Parse([]byte(data))
	require.NoError(t, err)
	return req
}

func TestRender(t *testing.T) {
	req := parse(t, "GET /path HTTP/1.1\r\nHost: example.com\r\nAccept: */*\r\n\r\nhello")
	out := Render(req, RenderOptions{})

	assert.Equal(t, "HTTPMessage\n"+
		"  start_line: GET /path HTTP/1.1\n"+
		"  header:\n"+
		"    Host: example.com\n"+
		"    Accept: */*\n"+
		"  body: \"hello\"\n", out)
}

func TestRenderNoHeadersEmptyBody(t *testing.T) {
	out := Render(parse(t, "GET / HTTP/1.1\r\n"), RenderOptions{})
	assert.Contains(t, out, "  header: (none)\n")
	assert.Contains(t, out, "  body: \"\"\n")
}

func TestRenderBody(t *testing.T) {
	// Test: Not UTF-8
	out := Render(parse(t, "POST / HTTP/1.1\r\n\r\n\xff\xfe"), RenderOptions{})
	assert.Contains(t, out, "body: "+NotUTF8)

	// Test: Control characters are escaped
	out = Render(parse(t, "POST / HTTP/1.1\r\n\r\na\r\nb"), RenderOptions{})
	assert.Contains(t, out, `body: "a\r\nb"`)

	// Test: Truncated
	out = Render(parse(t, "POST / HTTP/1.1\r\n\r\n0123456789"), RenderOptions{MaxBody: 4})
	assert.Contains(t, out, `body: "0123" … (6 more bytes)`)

	// Test: Truncation does not split a rune
	out = Render(parse(t, "POST / HTTP/1.1\r\n\r\naé"), RenderOptions{MaxBody: 2})
	assert.Contains(t, out, `body: "a" … (2 more bytes)`)
}

func TestRenderColorWithoutTerminal(t *testing.T) {
	req := parse(t, "GET /path HTTP/1.1\r\nHost: example.com\r\n\r\n")
	out := Render(req, RenderOptions{Color: true, Output: &bytes.Buffer{}})
	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "Host")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderColor(t *testing.T) {
	req := parse(t, "GET /path HTTP/1.1\r\nHost: example.com\r\n\r\n\xff")
	out := Render(req, RenderOptions{Color: true})
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Host")
	assert.Contains(t, out, NotUTF8)
	assert.Contains(t, out, "/path HTTP/1.1\n")
}

func TestSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, RenderOptions{})

	sink.Message("127.0.0.1:5000", parse(t, "GET / HTTP/1.1\r\n\r\n"))
	assert.True(t, strings.HasPrefix(buf.String(), "from 127.0.0.1:5000\nHTTPMessage\n"))

	buf.Reset()
	sink.Rejected("127.0.0.1:5001", []byte("garbage"), request.ErrNoRequestLine)
	assert.Equal(t, "from 127.0.0.1:5001\nrejected: no request line\n  raw: \"garbage\"\n", buf.String())

	buf.Reset()
	sink.Rejected("peer", bytes.Repeat([]byte("a"), rawPreview+10), errors.New("boom"))
	assert.Contains(t, buf.String(), "… (10 more bytes)")
}

func TestSinkConcurrent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, RenderOptions{})
	req := parse(t, "GET / HTTP/1.1\r\n\r\n")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Message("peer", req)
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, strings.Count(buf.String(), "HTTPMessage\n"))
}
