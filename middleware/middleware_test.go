package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func teapot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("short and stout"))
}

func TestCodeWatcher(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &codeWatcher{w: rec}
	if cw.Code() != http.StatusOK {
		t.Errorf("default Code() = %d", cw.Code())
	}
	teapot(cw, nil)
	if cw.Code() != http.StatusTeapot {
		t.Errorf("Code() = %d, want 418", cw.Code())
	}
	if cw.bytes != len("short and stout") {
		t.Errorf("bytes = %d", cw.bytes)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	rl := NewRequestLogger(http.HandlerFunc(teapot), clockwork.NewFakeClock())
	rec := httptest.NewRecorder()
	rl.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot || rec.Body.String() != "short and stout" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

type secondsClock struct{}

func (secondsClock) Now() time.Time { return time.Now().Truncate(time.Second) }

func TestRequestLoggerDurationIsSubSecond(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
	})
	rl := NewRequestLogger(slow, secondsClock{})
	rl.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", nil))

	line := buf.String()
	if !strings.Contains(line, "[access log] 200 GET") {
		t.Fatalf("log line = %q", line)
	}
	if !strings.Contains(line, "ms)") {
		t.Errorf("duration not measured below a second: %q", line)
	}
}

func TestCacheHeaderAdder(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	tests := []struct {
		name   string
		config CacheHeaderAdderConfig
		path   string
		want   string
	}{
		{
			name:   "public max-age",
			config: CacheHeaderAdderConfig{Enabled: true, MaxAge: time.Hour},
			want:   "public, max-age=3600",
		},
		{
			name:   "private immutable",
			config: CacheHeaderAdderConfig{Enabled: true, CachePrivate: true, Immutable: true, MaxAge: time.Minute},
			want:   "private, max-age=60, immutable",
		},
		{
			name:   "disabled",
			config: CacheHeaderAdderConfig{MaxAge: time.Hour},
			want:   "",
		},
		{
			name: "maybe says no",
			config: CacheHeaderAdderConfig{
				Enabled: true,
				MaxAge:  time.Hour,
				Maybe:   func(r *http.Request) bool { return r.URL.Path != "/nope" },
			},
			path: "/nope",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Next = ok
			path := tt.path
			if path == "" {
				path = "/"
			}
			rec := httptest.NewRecorder()
			NewCacheHeaderAdder(&tt.config).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if got := rec.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}
