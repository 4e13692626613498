package request

import (
	"strconv"
	"strings"
)

// TransferEncodings returns the lower-cased transfer codings of the request
// in the order they were applied.
func (r *Request) TransferEncodings() []string {
	var codings []string
	for _, v := range r.Headers.ValuesFold("transfer-encoding") {
		for coding := range strings.SplitSeq(v, ",") {
			coding = strings.ToLower(strings.TrimSpace(coding))
			if coding != "" {
				codings = append(codings, coding)
			}
		}
	}
	return codings
}

// Framing is how the length of a request body is determined.
type Framing struct {
	// Chunked is set when the final transfer coding is chunked.
	Chunked bool
	// Length is the Content-Length. It is 0 when Chunked is set or the
	// request carries neither header.
	Length int
}

// BodyFraming applies the message-length rules of RFC 9112 section 6.3 to
// the request headers. Body is not looked at.
// https://datatracker.ietf.org/doc/html/rfc9112#section-6.3
func (r *Request) BodyFraming() (Framing, error) {
	te := r.Headers.ValuesFold("transfer-encoding")
	cl := r.Headers.ValuesFold("content-length")

	switch {
	case len(te) > 0 && len(cl) > 0:
		// https://datatracker.ietf.org/doc/html/rfc9112#section-6.1-15
		return Framing{}, ErrConflictingFraming

	case len(te) > 0:
		codings := r.TransferEncodings()
		if len(codings) == 0 || codings[len(codings)-1] != "chunked" {
			return Framing{}, ErrUnsupportedTransferEncoding
		}
		return Framing{Chunked: true}, nil

	case len(cl) > 0:
		n, err := parseContentLength(cl)
		if err != nil {
			return Framing{}, err
		}
		return Framing{Length: n}, nil
	}

	return Framing{}, nil
}

// FramedBody returns the payload that BodyFraming describes.
//
// A Content-Length body is a sub-slice of Body; a chunked body is decoded
// into fresh memory. Requests with neither header have an empty body.
func (r *Request) FramedBody() ([]byte, error) {
	f, err := r.BodyFraming()
	if err != nil {
		return nil, err
	}
	if f.Chunked {
		return decodeChunked(r.Body)
	}
	if f.Length > len(r.Body) {
		return nil, ErrIncompleteBody
	}
	return r.Body[:f.Length:f.Length], nil
}

// parseContentLength accepts repeated or comma separated values as long as
// they all agree.
func parseContentLength(values []string) (int, error) {
	length := -1
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.TrimLeft(part, "0123456789") != "" {
				return 0, ErrInvalidContentLength
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return 0, ErrInvalidContentLength
			}
			if length != -1 && n != length {
				return 0, ErrInvalidContentLength
			}
			length = n
		}
	}
	return length, nil
}
