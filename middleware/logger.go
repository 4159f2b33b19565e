package middleware

import (
	"log"
	"net/http"
	"time"
)

type Clock interface {
	Now() time.Time
}

// RequestLogger is a middleware that writes one access log line per
// request.
type RequestLogger struct {
	next  http.Handler
	clock Clock
}

func NewRequestLogger(next http.Handler, clock Clock) *RequestLogger {
	return &RequestLogger{next: next, clock: clock}
}

func remoteAddr(r *http.Request) string {
	if r.Header.Get("X-Forwarded-For") != "" {
		return r.Header.Get("X-Forwarded-For")
	}
	return r.RemoteAddr
}

func (rl *RequestLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := rl.clock.Now()
	ww := &codeWatcher{w: w}
	rl.next.ServeHTTP(ww, r)
	// not rl.clock: the site's clock truncates to the second
	duration := time.Since(start)
	log.Printf("[access log] %d %s %v %v %dB (%v)", ww.Code(), r.Method, remoteAddr(r), r.URL.Path, ww.bytes, duration)
}
