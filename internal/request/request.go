package request

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shravanasati/reqdump/internal/bytesconv"
	"github.com/shravanasati/reqdump/internal/headers"
)

var space = []byte(" ")

// RequestLine is the first line of a request. Any of the tokens may be empty.
type RequestLine struct {
	Method      string
	Target      string
	HTTPVersion string
}

// Request is a parsed request message.
//
// Every string and the Body slice point into the buffer passed to Parse.
// The buffer must not be modified or reused while the Request is in use;
// call Clone for a copy that owns its memory.
type Request struct {
	RequestLine RequestLine
	Headers     headers.Headers
	Body        []byte
}

// Options controls how malformed input is treated.
type Options struct {
	// Strict turns every framing problem into an error. By default only a
	// missing request line fails the parse; everything else is skipped over.
	Strict bool
}

// https://httpwg.org/specs/rfc9112.html#message.format
//
//	HTTP-message = start-line CRLF *( field-line CRLF ) CRLF [ message-body ]

// Parse is ParseWithOptions with the default lenient options.
func Parse(data []byte) (*Request, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions parses a single, fully buffered request.
//
// The only error in lenient mode is ErrNoRequestLine. Header lines without a
// colon are dropped, a header block that runs off the end of data ends the
// headers, and tokens that are not UTF-8 become "".
// The body is whatever the cursor has not consumed: everything after the
// empty line, or the unterminated tail when the header block never ends.
// Content-Length is not consulted.
func ParseWithOptions(data []byte, opts Options) (*Request, error) {
	cursor := newLineCursor(data)

	line, ok := cursor.Next()
	if !ok {
		return nil, ErrNoRequestLine
	}

	requestLine, err := parseRequestLine(line, opts.Strict)
	if err != nil {
		return nil, err
	}

	req := &Request{RequestLine: *requestLine}
	headersFinished := false
	for lineNo := 2; ; lineNo++ {
		line, ok := cursor.Next()
		if !ok {
			break
		}
		if len(line) == 0 {
			// encountered a double CRLF, headers over
			headersFinished = true
			break
		}

		field, err := headers.ParseFieldLine(line)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		if !utf8.ValidString(field.Name) || !utf8.ValidString(field.Value) {
			if opts.Strict {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrUndecodableToken)
			}
			if !utf8.ValidString(field.Name) {
				field.Name = ""
			}
			if !utf8.ValidString(field.Value) {
				field.Value = ""
			}
		}
		req.Headers.Add(field.Name, field.Value)
	}

	if !headersFinished && opts.Strict {
		return nil, ErrIncompleteHeaders
	}

	req.Body = cursor.Remaining()
	return req, nil
}

func parseRequestLine(reqLine []byte, strict bool) (*RequestLine, error) {
	var tokens [3]string
	// a fourth segment collects whatever follows the version and is dropped
	parts := bytes.SplitN(reqLine, space, len(tokens)+1)
	if strict && len(parts) != len(tokens) {
		return nil, ErrIncorrectRequestLine
	}
	for i := 0; i < len(tokens) && i < len(parts); i++ {
		tok, ok := bytesconv.Text(parts[i])
		if !ok && strict {
			return nil, fmt.Errorf("request line token %d: %w", i+1, ErrUndecodableToken)
		}
		if tok == "" && strict {
			return nil, ErrIncorrectRequestLine
		}
		tokens[i] = tok
	}

	return &RequestLine{
		Method:      tokens[0],
		Target:      tokens[1],
		HTTPVersion: tokens[2],
	}, nil
}

// Clone returns a deep copy of r that does not share memory with the parse
// buffer.
func (r *Request) Clone() *Request {
	return &Request{
		RequestLine: RequestLine{
			Method:      strings.Clone(r.RequestLine.Method),
			Target:      strings.Clone(r.RequestLine.Target),
			HTTPVersion: strings.Clone(r.RequestLine.HTTPVersion),
		},
		Headers: *r.Headers.Clone(),
		Body:    bytes.Clone(r.Body),
	}
}
