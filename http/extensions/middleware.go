package extensions

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("< Received HTTP Request from %s: %s", ClientIP(r), FormatRequest(r))
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.Printf("Sending HTTP Response: %d %s, %d bytes\nCost: %v >\n",
			rec.status, http.StatusText(rec.status), rec.size, time.Since(start))
	})
}

func FormatRequest(r *http.Request) string {
	var buf bytes.Buffer
	writer := bufio.NewWriter(&buf)

	fmt.Fprintf(writer, "\n%s %s %s\r\n", r.Method, r.URL.RequestURI(), r.Proto)
	r.Header.Write(writer)

	if r.RemoteAddr != "" {
		fmt.Fprintf(writer, "Remote-Addr: %s\r\n", r.RemoteAddr)
	}

	if len(r.Trailer) > 0 {
		fmt.Fprintf(writer, "Trailer: ")
		first := true
		for name := range r.Trailer {
			if !first {
				fmt.Fprintf(writer, ", ")
			}
			fmt.Fprintf(writer, "%s", name)
			first = false
		}
		fmt.Fprintf(writer, "\r\n")
	}
	writer.Flush()
	return buf.String()
}
