package middleware

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// SlowRequest is the duration after which a request is logged as slow.
const SlowRequest = 2 * time.Second

// responseWriter captures the status and size of a response. It also
// implements http.Hijacker so WebSocket upgrades pass through.
type responseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Hijack delegates to the underlying ResponseWriter for WebSocket upgrades.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	rw.wroteHeader = true
	rw.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// Flush implements http.Flusher for streamed downloads.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// quiet reports requests that fire continuously while the dashboard is
// open: container health probes and pointer hover/leave on calendar cells.
func quiet(r *http.Request) bool {
	if r.URL.Path == "/api/health" {
		return true
	}
	if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/screens/") {
		return strings.HasSuffix(r.URL.Path, "/hover") || strings.HasSuffix(r.URL.Path, "/leave")
	}
	return false
}

// Logging is middleware that logs HTTP requests. Quiet requests are only
// logged when they fail.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		if quiet(r) && wrapped.status < http.StatusBadRequest {
			return
		}

		var flag string
		switch {
		case wrapped.status >= http.StatusInternalServerError:
			flag = " [error]"
		case duration >= SlowRequest:
			flag = " [slow]"
		}
		log.Printf(
			"%s %s %d %d %s%s",
			r.Method,
			r.URL.Path,
			wrapped.status,
			wrapped.size,
			duration,
			flag,
		)
	})
}
