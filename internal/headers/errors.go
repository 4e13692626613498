package headers

import "errors"

// ErrMalformedHeader is returned when a header line has no colon.
var ErrMalformedHeader = errors.New("malformed header line")
