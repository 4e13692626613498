package server

import "errors"

var (
	// ErrHeaderTooLarge is returned by readRequest when the byte cap is
	// reached before the header block ends.
	ErrHeaderTooLarge = errors.New("request head exceeds max request bytes")
	// ErrBodyTooLarge is returned by readRequest when the head arrived but
	// the body it announces does not fit under the byte cap.
	ErrBodyTooLarge = errors.New("request body exceeds max request bytes")
)
