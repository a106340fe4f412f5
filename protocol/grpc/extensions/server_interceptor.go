package extensions

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingUnaryServerInterceptor logs one line per call: caller, what was asked, what was answered.
func LoggingUnaryServerInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	log.Printf("[%s] from %s, %s => %s, code: %s, cost: %v",
		info.FullMethod, peerAddr(ctx), describe(req), describe(resp), status.Code(err), time.Since(start))
	return resp, err
}

func peerAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return "unknown"
}

func describe(msg interface{}) string {
	switch m := msg.(type) {
	case nil:
		return "-"
	case *grpc_health_v1.HealthCheckRequest:
		return fmt.Sprintf("service=%q", m.GetService())
	case *grpc_health_v1.HealthCheckResponse:
		return "status=" + m.GetStatus().String()
	case fmt.Stringer:
		return m.String()
	default:
		return fmt.Sprintf("%+v", m)
	}
}
