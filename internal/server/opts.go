package server

import (
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/shravanasati/reqdump/internal/response"
)

type ServerOpts struct {
	// The address for the server to listen on.
	Address string

	// Size of the first read from a connection, and of the only read when
	// SingleRead is set.
	ReadBufferSize int

	// Upper bound on the bytes read from one connection.
	MaxRequestBytes int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Strict parses requests in strict mode.
	Strict bool

	// SingleRead parses whatever the first read returns instead of reading
	// until the request is complete.
	SingleRead bool

	// Reply writes a minimal response before closing the connection.
	// Without it the connection is closed silently.
	Reply bool

	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger

	// Recovery takes the return value of the recover() call as input and returns a response that is written to the connection when Reply is set.
	Recovery func(any) *response.Response
}

const (
	defaultAddress         = "127.0.0.1:8080"
	defaultReadBufferSize  = 4096
	defaultMaxRequestBytes = 1 << 20
)

func defaultRecovery(logger *zerolog.Logger) func(any) *response.Response {
	return func(r any) *response.Response {
		logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
		return response.NewTextResponse(response.GetStatusReason(response.StatusInternalServerError)).
			WithStatusCode(response.StatusInternalServerError)
	}
}
