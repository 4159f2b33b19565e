/*
Package mediapref supplies the OS light/dark preference signal.

On the server the only view of it is the Sec-CH-Prefers-Color-Scheme client
hint, which a browser sends once it has seen our Accept-CH header.  Switch is
a live signal for long-running contexts (siteadmin, tests).
*/
package mediapref

import (
	"net/http"
	"strings"

	"github.com/cleancode-uk/site/observable"
)

const (
	// HintHeader is the client hint request header.
	HintHeader = "Sec-CH-Prefers-Color-Scheme"
)

// Header is the preference a single request reported.  It never changes.
type Header struct {
	dark bool
}

// FromRequest reads the client hint off r.  No hint means light, which is
// what matchMedia reports when there's no preference either.
func FromRequest(r *http.Request) Header {
	return Header{dark: ParseHint(r.Header.Get(HintHeader))}
}

// ParseHint reports whether a hint value says dark.  The value is a
// structured-field string, so it normally arrives quoted.
func ParseHint(v string) bool {
	v = strings.Trim(strings.TrimSpace(v), `"`)
	return strings.EqualFold(v, "dark")
}

func (h Header) PrefersDark() bool { return h.dark }

func (h Header) OnChange(func(bool)) (unsubscribe func()) { return func() {} }

// Switch is a preference that can flip at runtime.
type Switch struct {
	v *observable.Value[bool]
}

func NewSwitch(dark bool) *Switch {
	return &Switch{v: observable.NewValue(dark)}
}

func (s *Switch) PrefersDark() bool { return s.v.Get() }

// Set changes the preference.  Listeners only hear about actual flips.
func (s *Switch) Set(dark bool) {
	if s.v.Get() != dark {
		s.v.Set(dark)
	}
}

func (s *Switch) OnChange(fn func(bool)) (unsubscribe func()) {
	return s.v.Subscribe(fn)
}

// Listeners reports how many OnChange registrations are live.
func (s *Switch) Listeners() int {
	return s.v.Listeners()
}
