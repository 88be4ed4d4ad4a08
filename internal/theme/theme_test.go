// internal/theme/theme_test.go

package theme

import (
	"database/sql"
	"strings"
	"testing"
)

func TestResolve_NilPresetYieldsDefaults(t *testing.T) {
	if got := Resolve(nil); got != Defaults() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestResolve_PartialPresetFallsBackPerColor(t *testing.T) {
	p := &Preset{
		Primary: sql.NullString{String: "#112233", Valid: true},
		Accent:  sql.NullString{Valid: true}, // NULL-ish empty string
	}
	got := Resolve(p)
	if got.Primary != "#112233" {
		t.Fatalf("primary not applied: %+v", got)
	}
	def := Defaults()
	if got.Accent != def.Accent || got.Secondary != def.Secondary {
		t.Fatalf("fallback broken: %+v", got)
	}
}

func TestCSSVars(t *testing.T) {
	s := string(Defaults().CSSVars())
	for _, name := range []string{"--color-primary", "--color-background", "--color-text"} {
		if !strings.Contains(s, name) {
			t.Fatalf("CSSVars missing %s: %q", name, s)
		}
	}
}
