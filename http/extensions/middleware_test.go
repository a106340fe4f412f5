package extensions_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/pysugar/cisample/http/extensions"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := LoggingMiddleware(http.HandlerFunc(GreetingHandler))
	req := httptest.NewRequest(http.MethodPost, "/anything/else", strings.NewReader("payload"))
	req.Header.Set("X-Forwarded-For", "192.0.2.7")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, Greeting, rec.Body.String())
	out := buf.String()
	assert.Contains(t, out, "< Received HTTP Request from 192.0.2.7")
	assert.Contains(t, out, "POST /anything/else HTTP/1.1")
	assert.Contains(t, out, "Sending HTTP Response: 200 OK, 24 bytes")
}

func TestFormatRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/path?q=1", nil)
	req.Header.Set("User-Agent", "test")

	s := FormatRequest(req)
	assert.True(t, strings.HasPrefix(s, "\nGET /path?q=1 HTTP/1.1\r\n"), s)
	assert.Contains(t, s, "User-Agent: test\r\n")
	assert.Contains(t, s, "Remote-Addr: 192.0.2.1:1234\r\n")
}

func TestMetricsInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	h := m.Instrument(http.HandlerFunc(GreetingHandler))
	for _, method := range []string{http.MethodGet, http.MethodGet, http.MethodPost} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, "/", nil))
	}

	expected := `
# HELP cisample_http_requests_total Total number of HTTP requests answered, partitioned by status code and method.
# TYPE cisample_http_requests_total counter
cisample_http_requests_total{code="200",method="get"} 2
cisample_http_requests_total{code="200",method="post"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "cisample_http_requests_total"))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}
