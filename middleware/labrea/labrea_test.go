package labrea

import (
	"expvar"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("real page"))
}

func newTestHandler() *Handler {
	return New(&Config{
		Clock: clockwork.NewRealClock(),
		Next:  http.HandlerFunc(ok),
	})
}

func TestLast2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", ""},
		{"/wp-login.php", "wp-login.php"},
		{"/blog/wp-admin/", "blog/wp-admin"},
		{"/a/b/wp-admin/setup-config.php", "wp-admin/setup-config.php"},
		{"//.env", ".env"},
	}
	for _, tt := range tests {
		if got := last2(tt.in); got != tt.want {
			t.Errorf("last2(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrapsScannerPaths(t *testing.T) {
	h := newTestHandler()
	for _, path := range []string{"/wp-login.php", "/.env", "/blog/wp-admin/", "/old/.git/config"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: code = %d, want 404", path, rec.Code)
		}
		if rec.Header().Get("Server") != "Apache" {
			t.Errorf("%s: Server = %q", path, rec.Header().Get("Server"))
		}
		if rec.Body.String() != notFoundPage {
			t.Errorf("%s: body = %q", path, rec.Body.String())
		}
	}
	if v := hits.Get("wp-login.php"); v == nil || v.(*expvar.Int).Value() < 1 {
		t.Errorf("wp-login.php hits = %v", v)
	}
}

func TestPassesThroughSitePaths(t *testing.T) {
	h := newTestHandler()
	for _, path := range []string{"/", "/about", "/contact", "/fs/theme.css", "/sitemap.xml"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "real page" {
			t.Errorf("%s: got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

func TestCustomPaths(t *testing.T) {
	h := New(&Config{
		Clock: clockwork.NewRealClock(),
		Paths: []string{"/secret/"},
		Next:  http.HandlerFunc(ok),
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secret", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("/secret: code = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/wp-login.php trapped with custom paths")
	}
}

func TestDelayGrowsPerAddress(t *testing.T) {
	h := New(&Config{
		Clock:    clockwork.NewRealClock(),
		Step:     10 * time.Millisecond,
		MaxDelay: 25 * time.Millisecond,
		Next:     http.HandlerFunc(ok),
	})
	if h.strike("10.0.0.1") != 1 || h.strike("10.0.0.1") != 2 || h.strike("10.0.0.2") != 1 {
		t.Errorf("strikes not counted per address")
	}
	tests := []struct {
		strikes  int
		min, max time.Duration
	}{
		{1, 10 * time.Millisecond, 20 * time.Millisecond},
		{2, 20 * time.Millisecond, 30 * time.Millisecond},
		{9, 25 * time.Millisecond, 35 * time.Millisecond},
	}
	for _, tt := range tests {
		d := h.delay(tt.strikes)
		if d < tt.min || d >= tt.max {
			t.Errorf("delay(%d) = %v, want [%v, %v)", tt.strikes, d, tt.min, tt.max)
		}
	}
}

func TestNoStepNoDelay(t *testing.T) {
	h := newTestHandler()
	if d := h.delay(50); d != 0 {
		t.Errorf("delay with no step = %v", d)
	}
}

func TestStrikeTableIsBounded(t *testing.T) {
	h := newTestHandler()
	for i := 0; i < forgetAfter+5; i++ {
		h.strike(strings.Repeat("x", i+1))
	}
	if len(h.strikes) > forgetAfter {
		t.Errorf("strike table has %d entries", len(h.strikes))
	}
}
