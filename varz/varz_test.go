package varz

import (
	"expvar"
	"testing"
)

var (
	testCounter = NewInt("testCounter")
	testMap     = NewMap("testMap")
)

func TestPackageOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"github.com/cleancode-uk/site/theme.init", "github.com/cleancode-uk/site/theme"},
		{"github.com/cleancode-uk/site/theme.(*Controller).Init", "github.com/cleancode-uk/site/theme"},
		{"main.main", "main"},
		{"nodots", "nodots"},
	}
	for _, tt := range tests {
		if got := packageOf(tt.in); got != tt.want {
			t.Errorf("packageOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewIntIsQualified(t *testing.T) {
	testCounter.Add(2)
	v := expvar.Get("github.com/cleancode-uk/site/varz.testCounter")
	if v == nil {
		t.Fatalf("counter not published under package-qualified name")
	}
	if v.String() != "2" {
		t.Errorf("counter = %s, want 2", v.String())
	}
}

func TestNewMapIsQualified(t *testing.T) {
	testMap.Add("wp-login.php", 3)
	v := expvar.Get("github.com/cleancode-uk/site/varz.testMap")
	if v == nil {
		t.Fatalf("map not published under package-qualified name")
	}
	if got := v.(*expvar.Map).Get("wp-login.php").String(); got != "3" {
		t.Errorf("testMap[wp-login.php] = %s, want 3", got)
	}
}
