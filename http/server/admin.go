package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/pysugar/cisample/errors"
	"github.com/pysugar/cisample/http/extensions"
	grpcext "github.com/pysugar/cisample/protocol/grpc/extensions"
)

// ServiceName is the gRPC health service name reported by the admin listener.
const ServiceName = "cisample"

// Admin serves operational endpoints on a port of its own, so that every path of the
// greeting listener keeps answering with the greeting:
//
//	/metrics  prometheus exposition
//	/health   plain "OK"
//	grpc.health.v1.Health over h2c
type Admin struct {
	addr         string
	httpServer   *http.Server
	grpcServer   *grpc.Server
	healthServer *health.Server

	mu       sync.Mutex
	listener *connTracker
	closed   bool
}

func NewAdmin(addr string, gatherer prometheus.Gatherer, verbose bool) *Admin {
	kaParams := keepalive.ServerParameters{
		MaxConnectionIdle:     5 * time.Minute,
		MaxConnectionAge:      2 * time.Hour,
		MaxConnectionAgeGrace: 5 * time.Minute,
		Time:                  1 * time.Hour,
		Timeout:               20 * time.Second,
	}

	opts := []grpc.ServerOption{grpc.KeepaliveParams(kaParams)}
	if verbose {
		opts = append(opts, grpc.ChainUnaryInterceptor(grpcext.LoggingUnaryServerInterceptor))
	}
	grpcServer := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.RegisterV1(grpcServer)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", extensions.HealthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ProtoMajor == 2 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc") {
			grpcServer.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	h2s := &http2.Server{}
	httpServer := &http.Server{
		Handler:           h2c.NewHandler(handler, h2s),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := http2.ConfigureServer(httpServer, h2s); err != nil {
		log.Printf("Failed to configure http2: %v", err)
	}

	return &Admin{
		addr:         addr,
		httpServer:   httpServer,
		grpcServer:   grpcServer,
		healthServer: healthServer,
	}
}

func (a *Admin) Listen() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return errors.ErrServerClosed
	}
	if a.listener != nil {
		return nil
	}

	lis, err := net.Listen("tcp", a.addr)
	if err != nil {
		return errors.Single(errors.ErrListen, err)
	}
	a.listener = trackConns(lis)
	log.Printf("Admin server listening on %s", lis.Addr())
	return nil
}

func (a *Admin) Serve() error {
	a.mu.Lock()
	lis, closed := a.listener, a.closed
	a.mu.Unlock()

	if closed {
		return nil
	}
	if lis == nil {
		return errors.New("admin: Serve called before Listen")
	}

	if err := a.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Admin) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Shutdown reports NOT_SERVING to health watchers before the listener goes away.
// h2c connections, gRPC ones included, are closed once ctx is done.
func (a *Admin) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	conns := a.listener
	a.mu.Unlock()

	a.healthServer.Shutdown()
	err := a.httpServer.Shutdown(ctx)
	a.grpcServer.Stop()
	if err == nil && conns != nil {
		err = conns.Wait(ctx)
	}
	return release(conns, err)
}
