package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pires/go-proxyproto"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/pysugar/cisample/errors"
	"github.com/pysugar/cisample/http/extensions"
)

type Option func(*Server)

// WithMetrics instruments the greeting handler.
func WithMetrics(m *extensions.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// Server answers every request on its listener with extensions.Greeting.
// It is either listening or stopped; once closed it can not be restarted.
type Server struct {
	cfg        Config
	metrics    *extensions.Metrics
	httpServer *http.Server

	mu       sync.Mutex
	listener *connTracker
	closed   bool
}

func New(cfg Config, opts ...Option) *Server {
	s := &Server{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	h2s := &http2.Server{}
	s.httpServer = &http.Server{
		Handler:           s.handler(h2s),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// Shutdown sends GOAWAY to h2c connections through the hook registered here
	if err := http2.ConfigureServer(s.httpServer, h2s); err != nil {
		log.Printf("Failed to configure http2: %v", err)
	}
	return s
}

func (s *Server) handler(h2s *http2.Server) http.Handler {
	var h http.Handler = http.HandlerFunc(extensions.GreetingHandler)
	if s.metrics != nil {
		h = s.metrics.Instrument(h)
	}
	if s.cfg.Verbose {
		h = extensions.LoggingMiddleware(h)
	}
	return h2c.NewHandler(h, h2s)
}

// Listen binds the socket. A busy address yields an error matching errors.ErrListen.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrServerClosed
	}
	if s.listener != nil {
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	lis, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return errors.Single(errors.ErrListen, err)
	}

	if s.cfg.ProxyProtocol {
		timeout := s.cfg.ProxyHeaderTimeout
		if timeout <= 0 {
			timeout = defaultProxyHeaderTimeout
		}
		lis = &proxyproto.Listener{
			Listener:          lis,
			ReadHeaderTimeout: timeout,
			Policy: func(upstream net.Addr) (proxyproto.Policy, error) {
				return proxyproto.USE, nil
			},
		}
	}

	s.listener = trackConns(lis)
	log.Printf("Server listening on %d", lis.Addr().(*net.TCPAddr).Port)
	return nil
}

// Serve runs the accept loop until Close or Shutdown. It returns nil once the server is closed,
// also when Close won the race against Serve.
func (s *Server) Serve() error {
	s.mu.Lock()
	lis, closed := s.listener, s.closed
	s.mu.Unlock()

	if closed {
		return nil
	}
	if lis == nil {
		return errors.New("server: Serve called before Listen")
	}

	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Addr returns the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting immediately and drops active connections, h2c ones included.
// It is safe to call more than once.
func (s *Server) Close() error {
	conns, ok := s.markClosed()
	if !ok {
		return nil
	}
	return release(conns, s.httpServer.Close())
}

// Shutdown stops accepting and waits for in-flight requests until ctx is done.
// Connections still open when ctx expires are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	conns, ok := s.markClosed()
	if !ok {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	if err == nil && conns != nil {
		err = conns.Wait(ctx)
	}
	return release(conns, err)
}

func (s *Server) markClosed() (*connTracker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	s.closed = true
	return s.listener, true
}

// release closes the listener, which http.Server only tracks once Serve has started,
// and every connection left behind.
func release(conns *connTracker, err error) error {
	if conns == nil {
		return errors.Multi(errors.ErrShutdown, err)
	}

	var lerr error
	if er := conns.Close(); er != nil && !errors.Is(er, net.ErrClosed) {
		lerr = er
	}
	conns.CloseAll()
	return errors.Multi(errors.ErrShutdown, err, lerr)
}
