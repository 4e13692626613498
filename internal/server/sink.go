package server

import "github.com/shravanasati/reqdump/internal/request"

// Sink receives the outcome of every connection. Methods are called from
// the connection goroutines and must be safe for concurrent use.
//
// The request and raw bytes are only valid for the duration of the call.
type Sink interface {
	Message(remote string, req *request.Request)
	Rejected(remote string, raw []byte, err error)
}
