// Package labrea is a tarpit for scanners.  Requests for well-known admin
// and CMS paths the site doesn't have get a slow, fake Apache 404, slower
// each time the same address comes back.
//
// Hits are counted in varz rather than logged, so scanners don't flood the
// access log.
package labrea

import (
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cleancode-uk/site/dep"
	"github.com/cleancode-uk/site/varz"
)

var (
	trapped = varz.NewInt("trapped")
	hits    = varz.NewMap("hits")
)

// forgetAfter bounds the per-address strike table.
const forgetAfter = 1000

// DefaultPaths are matched against the last two segments of the request
// path.
var DefaultPaths = []string{
	".env",
	".git",
	".git/config",
	".htaccess",
	".htpasswd",
	"admin",
	"cgi-bin",
	"config.php",
	"phpmyadmin",
	"server-status",
	"wp-admin",
	"wp-admin/setup-config.php",
	"wp-includes/wlwmanifest.xml",
	"wp-login.php",
	"xmlrpc.php",
}

const notFoundPage = `<!DOCTYPE HTML PUBLIC "-//IETF//DTD HTML 2.0//EN">
<html><head>
<title>404 Not Found</title>
</head><body>
<h1>Not Found</h1>
<p>The requested URL was not found on this server.</p>
</body></html>
`

type Config struct {
	// Clock does the sleeping.  Use a real clock.
	Clock clockwork.Clock
	// Step is the delay added per earlier hit from the same address, and
	// the pause between dribbled chunks.  Zero turns delays off.
	Step time.Duration
	// MaxDelay caps the initial delay.
	MaxDelay time.Duration
	// Paths defaults to DefaultPaths.
	Paths []string
	Next  http.Handler
}

type Handler struct {
	clock    clockwork.Clock
	step     time.Duration
	maxDelay time.Duration
	paths    map[string]struct{}
	next     http.Handler

	mu      sync.Mutex
	strikes map[string]int
}

var _ http.Handler = &Handler{}

func New(config *Config) *Handler {
	paths := config.Paths
	if paths == nil {
		paths = DefaultPaths
	}
	h := &Handler{
		clock:    dep.Required(config.Clock),
		step:     config.Step,
		maxDelay: config.MaxDelay,
		paths:    make(map[string]struct{}, len(paths)),
		next:     dep.Required(config.Next),
		strikes:  map[string]int{},
	}
	for _, p := range paths {
		h.paths[strings.Trim(p, "/")] = struct{}{}
	}
	return h
}

func host(r *http.Request) string {
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return h
	}
	return r.RemoteAddr
}

// strike records a hit from addr and returns how many it has made.
func (h *Handler) strike(addr string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.strikes) >= forgetAfter {
		h.strikes = map[string]int{}
	}
	h.strikes[addr]++
	return h.strikes[addr]
}

// delay is Step per strike, capped at MaxDelay, plus up to a Step of
// jitter.
func (h *Handler) delay(strikes int) time.Duration {
	if h.step <= 0 {
		return 0
	}
	d := time.Duration(strikes) * h.step
	if h.maxDelay > 0 && d > h.maxDelay {
		d = h.maxDelay
	}
	return d + rand.N(h.step)
}

func (h *Handler) pause(d time.Duration) {
	if d > 0 {
		h.clock.Sleep(d)
	}
}

func (h *Handler) mishandle(w http.ResponseWriter, r *http.Request) {
	h.pause(h.delay(h.strike(host(r))))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Server", "Apache")
	w.WriteHeader(http.StatusNotFound)

	flusher, _ := w.(http.Flusher)
	payload := []byte(notFoundPage)
	for len(payload) > 0 {
		n := min(10+rand.IntN(10), len(payload))
		if _, err := w.Write(payload[:n]); err != nil {
			return
		}
		payload = payload[n:]
		if flusher != nil {
			flusher.Flush()
		}
		h.pause(h.step)
	}
}

// last2 returns the last two non-empty segments of path joined by "/".
func last2(path string) string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.Join(parts, "/")
}

// trapping reports whether path ends in one of the tarpit paths.
func (h *Handler) trapping(path string) (string, bool) {
	tail := last2(path)
	if _, ok := h.paths[tail]; ok {
		return tail, true
	}
	if i := strings.Index(tail, "/"); i != -1 {
		if _, ok := h.paths[tail[i+1:]]; ok {
			return tail[i+1:], true
		}
	}
	return "", false
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := h.trapping(r.URL.Path)
	if !ok {
		h.next.ServeHTTP(w, r)
		return
	}
	trapped.Add(1)
	hits.Add(p, 1)
	h.mishandle(w, r)
}
