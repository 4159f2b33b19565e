package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CacheHeaderAdder wraps an http.Handler and adds Cache-Control headers.
type CacheHeaderAdder struct {
	enabled      bool
	maybe        func(r *http.Request) bool
	next         http.Handler
	maxAge       time.Duration
	immutable    bool
	cachePrivate bool
}

// CacheHeaderAdderConfig configures the caching behavior.
type CacheHeaderAdderConfig struct {
	// Enabled turns the whole thing on.  Off, requests pass straight through.
	Enabled bool

	// Add cache headers, but only if this returns true.
	Maybe func(r *http.Request) bool

	// Next is the handler to wrap.
	Next http.Handler

	// MaxAge is how long the content should be cached.
	MaxAge time.Duration

	// Immutable indicates that the content will never change.
	Immutable bool

	// CachePrivate keeps shared caches (CDNs, proxies) from storing it.
	// Pages that vary on the theme cookie want this.
	CachePrivate bool
}

// NewCacheHeaderAdder creates a new caching middleware.
func NewCacheHeaderAdder(config *CacheHeaderAdderConfig) *CacheHeaderAdder {
	return &CacheHeaderAdder{
		enabled:      config.Enabled,
		maybe:        config.Maybe,
		next:         config.Next,
		maxAge:       config.MaxAge,
		immutable:    config.Immutable,
		cachePrivate: config.CachePrivate,
	}
}

// Value is the Cache-Control header this adder sets.
func (ch *CacheHeaderAdder) Value() string {
	parts := []string{"public"}
	if ch.cachePrivate {
		parts[0] = "private"
	}
	if secs := int(ch.maxAge.Seconds()); secs > 0 {
		parts = append(parts, fmt.Sprintf("max-age=%d", secs))
	}
	if ch.immutable {
		parts = append(parts, "immutable")
	}
	return strings.Join(parts, ", ")
}

func (ch *CacheHeaderAdder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !ch.enabled || (ch.maybe != nil && !ch.maybe(r)) {
		ch.next.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Cache-Control", ch.Value())
	ch.next.ServeHTTP(w, r)
}
