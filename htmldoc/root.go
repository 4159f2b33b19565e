// Package htmldoc models the <html> element of a server-rendered page.
package htmldoc

import (
	"html"
	"html/template"
	"sort"
	"strings"
)

// Root is the attribute set of a page's root element.  It satisfies
// theme.Document, so the theme controller can mutate it before the page is
// written out.
type Root struct {
	attrs map[string]string
}

// NewRoot returns a root element whose lang attribute is lang.  Empty lang
// leaves it off.
func NewRoot(lang string) *Root {
	r := &Root{attrs: map[string]string{}}
	if lang != "" {
		r.attrs["lang"] = lang
	}
	return r
}

func (r *Root) SetAttribute(name, value string) {
	r.attrs[strings.ToLower(name)] = value
}

func (r *Root) RemoveAttribute(name string) {
	delete(r.attrs, strings.ToLower(name))
}

// Attribute returns the value of name and whether it is present.
func (r *Root) Attribute(name string) (string, bool) {
	v, ok := r.attrs[strings.ToLower(name)]
	return v, ok
}

// Attrs renders the attributes for use inside the tag, sorted by name, e.g.
// `data-bs-theme="dark" lang="en"`.
func (r *Root) Attrs() template.HTMLAttr {
	names := make([]string, 0, len(r.attrs))
	for name := range r.attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(html.EscapeString(name))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(r.attrs[name]))
		b.WriteByte('"')
	}
	return template.HTMLAttr(b.String())
}

// OpenTag returns the full start tag.
func (r *Root) OpenTag() template.HTML {
	attrs := r.Attrs()
	if attrs == "" {
		return "<html>"
	}
	return template.HTML("<html " + string(attrs) + ">")
}
