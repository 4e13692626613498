package server

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shravanasati/reqdump/internal/request"
	"github.com/shravanasati/reqdump/internal/response"
)

const (
	lingerTimeout = 500 * time.Millisecond
	lingerBytes   = 256 << 10
)

type Server struct {
	opts     ServerOpts
	listener net.Listener
	closed   atomic.Bool
	sink     Sink
	log      *zerolog.Logger
	wg       sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting connections, interrupts the reads of in-flight ones
// and waits for them to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed.Store(true)
	for conn := range s.conns {
		conn.SetReadDeadline(time.Now())
	}
	s.mu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	return err
}

// track registers conn so Close can interrupt it. A connection accepted
// after Close started is interrupted right away.
func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
	if s.closed.Load() {
		conn.SetReadDeadline(time.Now())
	}
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) listen() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.closed.Load() {
				s.log.Error().Err(err).Msg("unable to accept connection")
			}
			return
		}

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	remote := conn.RemoteAddr().String()
	logger := s.log.With().Str("remote", remote).Logger()

	defer func() {
		s.untrack(conn)
		if err := lingerClose(conn); err != nil {
			logger.Debug().Err(err).Msg("unable to close connection")
		}
		logger.Debug().Msg("connection closed")
	}()

	defer func() {
		if r := recover(); r != nil {
			s.reply(conn, &logger, s.opts.Recovery(r))
		}
	}()

	logger.Debug().Msg("connection accepted")

	if s.opts.ReadTimeout != 0 {
		conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	}
	// after the read timeout, so an interrupt from Close is not overwritten
	s.track(conn)

	var data []byte
	var err error
	if s.opts.SingleRead {
		data, err = readOnce(conn, s.opts.ReadBufferSize)
	} else {
		data, err = readRequest(conn, s.opts.ReadBufferSize, s.opts.MaxRequestBytes)
	}

	status := response.StatusOK
	if err != nil {
		var ne net.Error
		switch {
		case errors.Is(err, ErrHeaderTooLarge):
			status = response.StatusRequestHeaderFieldsTooLarge
		case errors.Is(err, ErrBodyTooLarge):
			status = response.StatusPayloadTooLarge
		case errors.As(err, &ne) && ne.Timeout():
			status = response.StatusRequestTimeout
		default:
			status = response.StatusBadRequest
		}
		logger.Warn().Err(err).Int("bytes", len(data)).Msg("incomplete read")
	}

	if len(data) == 0 {
		if err != nil {
			s.reply(conn, &logger, response.NewBaseResponse().WithStatusCode(status))
		}
		logger.Debug().Msg("no data received")
		return
	}

	req, perr := request.ParseWithOptions(data, request.Options{Strict: s.opts.Strict})
	if perr != nil {
		logger.Warn().Err(perr).Int("bytes", len(data)).Msg("request rejected")
		s.sink.Rejected(remote, data, perr)
		s.reply(conn, &logger, response.NewBaseResponse().WithStatusCode(response.StatusBadRequest))
		return
	}

	host := ""
	if f, ok := req.Headers.GetFold("host"); ok {
		host = f.Value
	}
	logger.Info().
		Str("method", req.RequestLine.Method).
		Str("host", host).
		Str("target", req.RequestLine.Target).
		Int("headers", req.Headers.Len()).
		Int("body_bytes", len(req.Body)).
		Msg("request parsed")
	s.sink.Message(remote, req)

	s.reply(conn, &logger, response.NewBaseResponse().WithStatusCode(status))
}

func (s *Server) reply(conn net.Conn, logger *zerolog.Logger, resp *response.Response) {
	if !s.opts.Reply {
		return
	}
	if s.opts.WriteTimeout != 0 {
		conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}
	if err := resp.Write(conn); err != nil {
		logger.Warn().Err(err).Msg("unable to write response to connection")
	}
}

// lingerClose half-closes conn and drains what the peer still sends before
// closing it, so that unread input does not reset the connection before the
// peer has seen the reply.
func lingerClose(conn net.Conn) error {
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.CloseWrite()
		tc.SetReadDeadline(time.Now().Add(lingerTimeout))
		io.Copy(io.Discard, io.LimitReader(tc, lingerBytes))
	}
	return conn.Close()
}

func newServer(opts ServerOpts, sink Sink) *Server {
	if opts.Address == "" {
		opts.Address = defaultAddress
	}
	if opts.ReadBufferSize <= 0 {
		opts.ReadBufferSize = defaultReadBufferSize
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = defaultMaxRequestBytes
	}
	if opts.Logger == nil {
		opts.Logger = &log.Logger
	}
	if opts.Recovery == nil {
		opts.Recovery = defaultRecovery(opts.Logger)
	}
	return &Server{
		opts: opts,
		sink:  sink,
		log:   opts.Logger,
		conns: make(map[net.Conn]struct{}),
	}
}

// Serve starts listening on opts.Address and hands every connection's
// request to sink. It returns once the listener is bound.
func Serve(opts ServerOpts, sink Sink) (*Server, error) {
	s := newServer(opts, sink)

	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return nil, err
	}
	s.listener = listener
	s.log.Info().Str("address", listener.Addr().String()).Msg("listening for connections")

	s.wg.Add(1)
	go s.listen()
	return s, nil
}
