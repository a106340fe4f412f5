package extensions_test

import (
	"bytes"
	"context"
	"log"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpchealthv1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	. "github.com/pysugar/cisample/protocol/grpc/extensions"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
	})
	return &buf
}

func TestLoggingUnaryServerInterceptor_HealthCheck(t *testing.T) {
	buf := captureLog(t)

	ctx := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.10"), Port: 50000},
	})
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	req := &grpchealthv1.HealthCheckRequest{Service: "cisample"}

	resp, err := LoggingUnaryServerInterceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return &grpchealthv1.HealthCheckResponse{Status: grpchealthv1.HealthCheckResponse_SERVING}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, grpchealthv1.HealthCheckResponse_SERVING, resp.(*grpchealthv1.HealthCheckResponse).GetStatus())
	out := buf.String()
	assert.Contains(t, out, "[/grpc.health.v1.Health/Check] from 192.0.2.10:50000")
	assert.Contains(t, out, `service="cisample" => status=SERVING, code: OK`)
}

func TestLoggingUnaryServerInterceptor_Error(t *testing.T) {
	buf := captureLog(t)

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	req := &grpchealthv1.HealthCheckRequest{Service: "unknown"}

	_, err := LoggingUnaryServerInterceptor(context.Background(), req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "unknown service")
	})

	assert.Equal(t, codes.NotFound, status.Code(err))
	out := buf.String()
	assert.Contains(t, out, "from unknown")
	assert.Contains(t, out, `service="unknown" => -, code: NotFound`)
}
