// internal/theme/preset.go
//
// Theme preset rows and resolution.
//
// A preset is a named, admin-curated color palette stored in the shared
// database.  Every column except the name is nullable so palettes can
// override only the colors they care about.

package theme

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Preset mirrors one row in `theme_preset`.
type Preset struct {
	ID         uint64         `db:"id"`
	Name       string         `db:"name"`
	Primary    sql.NullString `db:"primary_color"`
	Secondary  sql.NullString `db:"secondary_color"`
	Accent     sql.NullString `db:"accent_color"`
	Background sql.NullString `db:"background_color"`
	Text       sql.NullString `db:"text_color"`
}

// PresetByID fetches one preset row.
func PresetByID(ctx context.Context, db *sqlx.DB, id uint64) (*Preset, error) {
	const q = `
        SELECT id, name, primary_color, secondary_color, accent_color,
               background_color, text_color
        FROM   theme_preset
        WHERE  id = ?
        LIMIT  1;`
	var p Preset
	if err := db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Resolve merges a preset over the defaults.  A nil preset yields the
// full default set.
func Resolve(p *Preset) Variables {
	v := Defaults()
	if p == nil {
		return v
	}
	if p.Primary.Valid && p.Primary.String != "" {
		v.Primary = p.Primary.String
	}
	if p.Secondary.Valid && p.Secondary.String != "" {
		v.Secondary = p.Secondary.String
	}
	if p.Accent.Valid && p.Accent.String != "" {
		v.Accent = p.Accent.String
	}
	if p.Background.Valid && p.Background.String != "" {
		v.Background = p.Background.String
	}
	if p.Text.Valid && p.Text.String != "" {
		v.Text = p.Text.String
	}
	return v
}
