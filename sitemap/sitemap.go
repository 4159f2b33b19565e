// Package sitemap builds /sitemap.xml from a fixed list of site paths.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"text/template"
)

const (
	// Namespace is written into <urlset>.  It's the https spelling the site
	// has always published.
	Namespace = "https://www.sitemaps.org/schemas/sitemap/0.9"

	ContentType = "application/xml; charset=utf-8"

	DefaultBase        = "https://cleancode.uk"
	DefaultContactPath = "/contact"
)

// DefaultRoutes are the site's pages.  /contact/success is left out on
// purpose; it's only reachable after a form post.
var DefaultRoutes = []string{
	"/",
	"/about",
	"/experience",
	"/contact",
}

// Config says what goes in the sitemap.
type Config struct {
	Base        string
	Routes      []string
	ContactPath string
}

// Entry is one <url>.
type Entry struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   string
}

func (c Config) withDefaults() Config {
	if c.Base == "" {
		c.Base = DefaultBase
	}
	c.Base = strings.TrimSuffix(c.Base, "/")
	if c.Routes == nil {
		c.Routes = DefaultRoutes
	}
	if c.ContactPath == "" {
		c.ContactPath = DefaultContactPath
	}
	return c
}

// Entries returns one Entry per route, in route order, stamped with today.
func Entries(c Config, today string) []Entry {
	c = c.withDefaults()
	entries := make([]Entry, 0, len(c.Routes))
	for _, path := range c.Routes {
		e := Entry{
			Loc:        c.Base + path,
			LastMod:    today,
			ChangeFreq: "monthly",
			Priority:   "0.8",
		}
		switch path {
		case "/":
			e.ChangeFreq = "weekly"
			e.Priority = "1.0"
		case c.ContactPath:
			e.Priority = "0.6"
		}
		entries = append(entries, e)
	}
	return entries
}

func xmlEscape(s string) (string, error) {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

var urlsetTemplate = template.Must(template.New("urlset").Funcs(template.FuncMap{
	"xml": xmlEscape,
}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="{{.Namespace}}">
{{- range .Entries}}
  <url><loc>{{xml .Loc}}</loc><lastmod>{{.LastMod}}</lastmod><changefreq>{{.ChangeFreq}}</changefreq><priority>{{.Priority}}</priority></url>
{{- end}}
</urlset>
`))

// Render writes the sitemap document for entries.
func Render(w io.Writer, entries []Entry) error {
	args := struct {
		Namespace string
		Entries   []Entry
	}{
		Namespace: Namespace,
		Entries:   entries,
	}
	if err := urlsetTemplate.Execute(w, args); err != nil {
		return fmt.Errorf("can't render sitemap: %w", err)
	}
	return nil
}
