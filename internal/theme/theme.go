// internal/theme/theme.go
//
// Tenant theme variables.
//
// Context
// -------
// A theme is a small fixed-shape record of named colors.  It is derived
// from a preset row the site references, or from the compiled-in
// defaults when the site has none.  The content store replaces the whole
// record on every tenant change; nothing else writes it (one writer,
// many readers).
//
// Notes
// -----
// • Per-color fallback: a preset may leave individual colors NULL, and
//   each one falls back to its default independently.
// • Oxford commas, two spaces after periods.

package theme

import (
	"fmt"
	"html/template"
)

// Variables is the fixed-shape color record applied per tenant.
type Variables struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Text       string
}

// Defaults returns the compiled-in color set used when a site references
// no preset, and as the per-color fallback when a preset is partial.
func Defaults() Variables {
	return Variables{
		Primary:    "#8b5e34",
		Secondary:  "#d4a373",
		Accent:     "#e76f51",
		Background: "#fefae0",
		Text:       "#3a2e26",
	}
}

// CSSVars renders the record as CSS custom properties for a style
// attribute or an inline <style> block.
func (v Variables) CSSVars() template.CSS {
	s := fmt.Sprintf(
		"--color-primary:%s;--color-secondary:%s;--color-accent:%s;"+
			"--color-background:%s;--color-text:%s;",
		v.Primary, v.Secondary, v.Accent, v.Background, v.Text)
	return template.CSS(s)
}
