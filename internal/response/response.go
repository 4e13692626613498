package response

import (
	"io"
	"strconv"
	"strings"

	"github.com/shravanasati/reqdump/internal/headers"
)

// Response is a status code, headers and an optional body, written out in
// one go. Every response carries "connection: close" since reqdump handles a
// single request per connection.
type Response struct {
	StatusCode StatusCode
	Headers    *headers.Headers
	Body       io.Reader
}

func NewBaseResponse() *Response {
	hs := headers.NewHeaders()
	hs.Add("connection", "close")
	return &Response{
		Headers:    hs,
		StatusCode: StatusOK,
	}
}

// NewTextResponse creates a plain text response with its content length set.
func NewTextResponse(body string) *Response {
	return NewBaseResponse().
		WithHeader("content-type", "text/plain").
		WithHeader("content-length", strconv.Itoa(len(body))).
		WithBody(strings.NewReader(body))
}

func (r *Response) WithStatusCode(code StatusCode) *Response {
	r.StatusCode = code
	return r
}

func (r *Response) WithHeader(key, value string) *Response {
	r.Headers.Add(key, value)
	return r
}

func (r *Response) WithBody(body io.Reader) *Response {
	r.Body = body
	return r
}

func (r *Response) Write(w io.Writer) error {
	rw := NewWriter(w)
	err := rw.WriteStatusLine(r.StatusCode)
	if err != nil {
		return err
	}

	err = rw.WriteHeaders(r.Headers, r.Body != nil)
	if err != nil {
		return err
	}

	if r.Body != nil {
		err = rw.WriteBody(r.Body)
		if err != nil {
			return err
		}
	}
	return nil
}
