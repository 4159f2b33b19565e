/*
varz makes expvar variables named after the package that declares them, so
theme.modeChanges and sitemap.cacheHits don't collide.  Importing it pulls in
expvar, which registers /debug/vars on http.DefaultServeMux; webapp mounts
that handler on its own mux.
*/
package varz

import (
	"expvar"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// callerPackage returns the import path of whoever called NewInt or
// NewMap.  Works for package-level var blocks too, where the caller is the
// package's init.
func callerPackage() string {
	pcs := make([]uintptr, 1)
	// skip runtime.Callers, callerPackage, and NewInt/NewMap
	if runtime.Callers(3, pcs) == 0 {
		return "varz.unknown"
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	if frame.Function == "" {
		return "varz.unknown"
	}
	return packageOf(frame.Function)
}

// packageOf trims the function part off a qualified name like
// "github.com/cleancode-uk/site/theme.init".
func packageOf(qualified string) string {
	slash := strings.LastIndex(qualified, "/")
	dot := strings.Index(qualified[slash+1:], ".")
	if dot == -1 {
		return qualified
	}
	return qualified[:slash+1+dot]
}

func NewInt(name string) *expvar.Int {
	return expvar.NewInt(fmt.Sprintf("%s.%s", callerPackage(), name))
}

func NewMap(name string) *expvar.Map {
	return expvar.NewMap(fmt.Sprintf("%s.%s", callerPackage(), name))
}

// Handler serves every published variable as JSON.
func Handler() http.Handler {
	return expvar.Handler()
}
