package theme

import (
	"fmt"
)

// Mode is what the visitor picked.
type Mode string

const (
	Auto  Mode = "auto"
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Resolved is what actually gets shown.  It is never auto.
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

const (
	// StorageKey is the one key this package persists under.
	StorageKey = "lg-theme"

	// Attribute is set on (or removed from) the document root; stylesheets
	// key off it.
	Attribute = "data-bs-theme"

	// DefaultMode is used when nothing usable was persisted.
	DefaultMode = Dark
)

// Variant selects which modes a site offers.
type Variant string

const (
	// VariantFull offers auto, light and dark.
	VariantFull Variant = "full"

	// VariantDarkOnly is the locked-down site: dark, always.
	VariantDarkOnly Variant = "dark-only"
)

// ParseVariant maps a config string to a Variant.  Empty means full.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantFull:
		return VariantFull, nil
	case VariantDarkOnly:
		return VariantDarkOnly, nil
	}
	return "", fmt.Errorf("unknown theme variant %q", s)
}

// Modes lists the modes v recognizes.
func (v Variant) Modes() []Mode {
	if v == VariantDarkOnly {
		return []Mode{Dark}
	}
	return []Mode{Auto, Light, Dark}
}

// Recognizes reports whether m is one of v's modes.
func (v Variant) Recognizes(m Mode) bool {
	for _, x := range v.Modes() {
		if x == m {
			return true
		}
	}
	return false
}

// ParseMode returns the Mode spelled by s if v recognizes it.
func (v Variant) ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	if v.Recognizes(m) {
		return m, true
	}
	return "", false
}

// Resolve turns a Mode into what's displayed, given whether the OS
// currently prefers dark.
func (v Variant) Resolve(m Mode, osPrefersDark bool) Resolved {
	if v == VariantDarkOnly {
		return ResolvedDark
	}
	switch m {
	case Light:
		return ResolvedLight
	case Dark:
		return ResolvedDark
	}
	if osPrefersDark {
		return ResolvedDark
	}
	return ResolvedLight
}
