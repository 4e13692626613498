package request

import "errors"

// ErrNoRequestLine is returned when the input holds no CRLF-terminated line.
var ErrNoRequestLine = errors.New("no request line")

// ErrIncorrectRequestLine is returned in strict mode when the request line
// does not hold exactly three non-empty tokens.
var ErrIncorrectRequestLine = errors.New("incorrect request line")

// ErrIncompleteHeaders is returned in strict mode when the header block is
// not closed by an empty line.
var ErrIncompleteHeaders = errors.New("incomplete header block")

// ErrUndecodableToken is returned in strict mode when a request line token or
// a header field is not valid UTF-8.
var ErrUndecodableToken = errors.New("token is not valid utf-8")

var (
	ErrConflictingFraming          = errors.New("both transfer-encoding and content-length are present")
	ErrUnsupportedTransferEncoding = errors.New("last transfer coding is not chunked")
	ErrInvalidContentLength        = errors.New("invalid content-length")
	ErrIncompleteBody              = errors.New("incomplete body")
	ErrMalformedChunk              = errors.New("malformed chunk")
)
