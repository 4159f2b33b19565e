package prefstore

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	hash := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("h", 32)))
	block := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("b", 16)))
	c, err := NewCodec(hash, block)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

// replay copies Set-Cookie headers from rec onto a fresh request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	if _, ok := s.Get("k"); ok {
		t.Fatalf("empty store has k")
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := s.Get("k"); !ok || v != "v" {
		t.Errorf("Get(k) = %q, %v", v, ok)
	}
}

func TestNewCodecEmptyIsPlain(t *testing.T) {
	c, err := NewCodec("", "")
	if err != nil || c != nil {
		t.Errorf("NewCodec(\"\", \"\") = %v, %v; want nil, nil", c, err)
	}
}

func TestNewCodecBadKey(t *testing.T) {
	if _, err := NewCodec("%%%", ""); err == nil {
		t.Errorf("bad hash key accepted")
	}
}

func TestCookiesPlainRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec, CookieOptions{})
	if _, ok := s.Get("lg-theme"); ok {
		t.Fatalf("fresh request has a cookie")
	}
	if err := s.Set("lg-theme", "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := s.Get("lg-theme"); v != "light" {
		t.Errorf("Get after Set in same request = %q", v)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Value != "light" || c.Path != "/" || c.HttpOnly || c.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie %+v", c)
	}

	next := NewCookies(replay(rec), nil, CookieOptions{})
	if v, ok := next.Get("lg-theme"); !ok || v != "light" {
		t.Errorf("next request Get = %q, %v", v, ok)
	}
}

func TestCookiesSignedRoundTrip(t *testing.T) {
	opts := CookieOptions{Codec: testCodec(t), Secure: true}
	rec := httptest.NewRecorder()
	s := NewCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec, opts)
	if err := s.Set("lg-theme", "auto"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c := rec.Result().Cookies()[0]
	if c.Value == "auto" {
		t.Errorf("signed cookie stored in the clear")
	}
	if !c.Secure || !c.HttpOnly {
		t.Errorf("signed cookie flags: secure=%v httponly=%v", c.Secure, c.HttpOnly)
	}

	next := NewCookies(replay(rec), nil, opts)
	if v, ok := next.Get("lg-theme"); !ok || v != "auto" {
		t.Errorf("next request Get = %q, %v", v, ok)
	}
}

func TestCookiesTamperedReadsAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "lg-theme", Value: "light"})
	s := NewCookies(r, nil, CookieOptions{Codec: testCodec(t)})
	if v, ok := s.Get("lg-theme"); ok {
		t.Errorf("unsigned cookie accepted as %q", v)
	}
}

func TestCookiesNoWriter(t *testing.T) {
	s := NewCookies(nil, nil, CookieOptions{})
	if _, ok := s.Get("lg-theme"); ok {
		t.Errorf("nil request has a cookie")
	}
	if err := s.Set("lg-theme", "dark"); err == nil {
		t.Errorf("Set without a writer succeeded")
	}
}
