package extensions

import (
	"log"
	"net/http"
	"strings"
)

// Greeting is the body of every response served by GreetingHandler.
const Greeting = "Hello from CI sample app"

// GreetingHandler answers any method on any path with 200 and Greeting.
// Neither the request body nor its headers take part in the decision.
func GreetingHandler(w http.ResponseWriter, _ *http.Request) {
	if _, err := w.Write([]byte(Greeting)); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// HealthHandler is mounted on the admin listener only.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("OK\n")); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return strings.TrimSpace(xRealIP)
	}

	return strings.TrimSpace(r.RemoteAddr)
}
