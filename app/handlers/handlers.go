package handlers

import (
	"io"
	"net/http"
	"strings"
)

// RobotsTXT allows everything and points crawlers at the sitemap under base.
func RobotsTXT(base string) http.HandlerFunc {
	data := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
		"Sitemap: " + strings.TrimSuffix(base, "/") + "/sitemap.xml",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, line := range data {
			io.WriteString(w, line+"\r\n")
		}
	}
}
