package dispatchhandlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
)

// ErrServerNoHandler is returned when ServerConfig.Handler is nil.
var ErrServerNoHandler = errors.New("server: handler must not be nil")

// ServerConfig configures the network-listener collaborator.
type ServerConfig struct {
	// Addr is the TCP address to listen on. Defaults to ":8080".
	Addr string

	// Handler receives every accepted request, typically a
	// *dispatch.Dispatcher wrapped in Recovery. Required.
	Handler http.Handler

	// MaxConnections caps the number of simultaneously accepted
	// connections. Zero means no cap.
	MaxConnections int

	// ReadHeaderTimeout bounds reading request headers. Defaults to
	// 10 seconds. Timeouts are owned here, not by the dispatcher.
	ReadHeaderTimeout time.Duration

	// IdleTimeout bounds keep-alive connections waiting for the next
	// request. Defaults to 60 seconds.
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown once the serve context
	// is cancelled. Zero waits indefinitely for in-flight requests.
	ShutdownTimeout time.Duration
}

// Server owns the connection lifecycle around the dispatcher: accept,
// keep-alive, I/O deadlines, connection caps, and graceful shutdown.
type Server struct {
	cfg ServerConfig
	srv *http.Server
}

// NewServer returns a server for the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Handler == nil {
		return nil, ErrServerNoHandler
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           cfg.Handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}, nil
}

// Run listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	return s.ServeListener(ctx, ln)
}

// ServeListener serves on an existing listener until ctx is cancelled,
// then shuts down gracefully, waiting up to ShutdownTimeout for
// in-flight requests. When MaxConnections is set, the listener is
// wrapped so at most that many connections are accepted at once.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	return s.srv.Shutdown(shutdownCtx)
}
