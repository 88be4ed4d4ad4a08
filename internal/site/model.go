// internal/site/model.go
//
// Row models for the shared control-plane schema.
//
// Context
// -------
// Every bakery site is one row in `site`.  Soft deactivation is an
// `active` flag flipped by the admin screens; hard deletes remove the row
// outright, so the loader only ever distinguishes "missing" from
// "present but inactive".  Section toggles live in `site_section`, one
// row per named page region; a missing row means the section was never
// configured, which is NOT the same as disabled (tri-state rule, see
// internal/section).
//
// Notes
// -----
// • `enabled` is nullable: NULL means "configured, default on".
// • Oxford commas, two spaces after periods.

package site

import (
	"database/sql"
	"time"
)

// Record mirrors one row in the `site` table.
type Record struct {
	ID        uint64        `db:"id"`
	Subdomain string        `db:"subdomain"`
	Token     string        `db:"token"`
	Title     string        `db:"title"`
	Active    bool          `db:"active"`
	ThemeID   sql.NullInt64 `db:"theme_id"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// SectionRow mirrors one row in `site_section`.  Enabled is nullable on
// purpose: a row inserted without an explicit flag counts as enabled.
type SectionRow struct {
	SiteID  uint64       `db:"site_id"`
	Name    string       `db:"name"`
	Enabled sql.NullBool `db:"enabled"`
}

// Setting is one key-value pair from `site_setting`.
type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}
