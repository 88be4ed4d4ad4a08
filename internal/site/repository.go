// internal/site/repository.go
//
// sqlx lookups against the shared control-plane database.
//
// The two ID lookups exist separately from ByID so the content store can
// resolve a Selector to an identifier first, then fetch the full record
// and the section rows concurrently.  All queries take a context so they
// respect request deadlines.

package site

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// IDBySubdomain resolves a subdomain label to a site ID.  Inactive sites
// still resolve; the content store decides how to treat them.
func IDBySubdomain(ctx context.Context, db *sqlx.DB, label string) (uint64, error) {
	const q = `
        SELECT id
        FROM   site
        WHERE  subdomain = ?
        LIMIT  1;`
	var id uint64
	if err := db.GetContext(ctx, &id, q, label); err != nil {
		return 0, err
	}
	return id, nil
}

// IDByToken resolves an opaque site token (from the ?site= query
// parameter) to a site ID.
func IDByToken(ctx context.Context, db *sqlx.DB, token string) (uint64, error) {
	const q = `
        SELECT id
        FROM   site
        WHERE  token = ?
        LIMIT  1;`
	var id uint64
	if err := db.GetContext(ctx, &id, q, token); err != nil {
		return 0, err
	}
	return id, nil
}

// ByID fetches one full site row.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = `
        SELECT id, subdomain, token, title, active, theme_id,
               created_at, updated_at
        FROM   site
        WHERE  id = ?
        LIMIT  1;`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SectionsBySite returns every section-visibility row for one site.  An
// empty slice is a valid result: it means nothing has been configured
// yet, and every section stays in the unknown state.
func SectionsBySite(ctx context.Context, db *sqlx.DB, siteID uint64) ([]SectionRow, error) {
	const q = `
        SELECT site_id, name, enabled
        FROM   site_section
        WHERE  site_id = ?`
	rows := make([]SectionRow, 0, 8)
	if err := db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, err
	}
	return rows, nil
}

// SettingsBySite returns a map[key]value for one site.  The map is
// fetched once per tenant load and cached alongside the snapshot.
func SettingsBySite(ctx context.Context, db *sqlx.DB, siteID uint64) (map[string]string, error) {
	const q = `
	    SELECT  ` + "`key`, value" + `
	    FROM    site_setting
	    WHERE   site_id = ?`
	rows := make([]Setting, 0, 8)
	if err := db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}
