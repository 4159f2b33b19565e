package htmldoc

import (
	"testing"
)

func TestRoot(t *testing.T) {
	r := NewRoot("en")
	if got := r.OpenTag(); got != `<html lang="en">` {
		t.Errorf("OpenTag() = %s", got)
	}

	r.SetAttribute("data-bs-theme", "dark")
	if got := r.OpenTag(); got != `<html data-bs-theme="dark" lang="en">` {
		t.Errorf("OpenTag() = %s", got)
	}
	if v, ok := r.Attribute("DATA-BS-THEME"); !ok || v != "dark" {
		t.Errorf("Attribute() = %q, %v", v, ok)
	}

	r.RemoveAttribute("data-bs-theme")
	if _, ok := r.Attribute("data-bs-theme"); ok {
		t.Errorf("attribute survived RemoveAttribute")
	}
	r.RemoveAttribute("never-set")
}

func TestRootEscapes(t *testing.T) {
	r := NewRoot("")
	if got := r.OpenTag(); got != "<html>" {
		t.Errorf("empty OpenTag() = %s", got)
	}
	r.SetAttribute("title", `"><script>`)
	if got := r.Attrs(); got != `title="&#34;&gt;&lt;script&gt;"` {
		t.Errorf("Attrs() = %s", got)
	}
}
