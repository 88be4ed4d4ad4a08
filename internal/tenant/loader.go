// internal/tenant/loader.go
//
// Selector → Snapshot.
//
// Context
// -------
// Loading happens in two phases.  Phase one resolves the Selector to a
// site ID (one indexed lookup, by subdomain label or by opaque token).
// Phase two fetches the full site row and the section-visibility rows
// concurrently; they are independent, so an errgroup runs them in
// parallel and the snapshot is assembled only after both complete.  A
// failure in either fetch surfaces as PartialLoadError, never as
// ErrNotFound, so a flaky query can't masquerade as a missing site.
//
// Visibility derivation
// ---------------------
// Every returned row sets map[name] = enabled, with NULL counting as
// true.  Sections no row mentions stay absent from the map, which the
// gate reports as Unknown; assuming enabled there would mask a missing
// configuration row as content.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package tenant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/section"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/site"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/theme"
)

// Loader turns selectors into snapshots against the shared database.
type Loader struct {
	db *sqlx.DB
}

// NewLoader wraps the control-plane pool.
func NewLoader(db *sqlx.DB) *Loader { return &Loader{db: db} }

// Load resolves sel and builds a complete Snapshot.  Inactive sites
// return ErrInactive; public callers treat that like ErrNotFound.
func (l *Loader) Load(ctx context.Context, sel resolver.Selector) (*Snapshot, error) {
	id, err := l.resolveID(ctx, sel)
	if err != nil {
		return nil, err
	}

	// Fetch the site row, the section rows, and the settings map
	// concurrently.  They are independent reads.
	var (
		rec      *site.Record
		rows     []site.SectionRow
		settings map[string]string
		recErr   error
		rowsErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, recErr = site.ByID(gctx, l.db, id)
		return nil
	})
	g.Go(func() error {
		rows, rowsErr = site.SectionsBySite(gctx, l.db, id)
		if rowsErr == nil {
			settings, rowsErr = site.SettingsBySite(gctx, l.db, id)
		}
		return nil
	})
	_ = g.Wait()

	if recErr != nil || rowsErr != nil {
		return nil, &PartialLoadError{SiteErr: recErr, SectionsErr: rowsErr}
	}
	if !rec.Active {
		return nil, ErrInactive
	}

	vis := make(section.Map, len(rows))
	for _, r := range rows {
		enabled := true
		if r.Enabled.Valid {
			enabled = r.Enabled.Bool
		}
		vis[r.Name] = enabled
	}

	vars, err := l.resolveTheme(ctx, rec)
	if err != nil {
		return nil, &PartialLoadError{ThemeErr: err}
	}

	return &Snapshot{
		Site:     *rec,
		Sections: vis,
		Settings: settings,
		Theme:    vars,
	}, nil
}

// resolveID maps a selector to a site ID.  sql.ErrNoRows becomes
// ErrNotFound; a None selector never reaches the database.
func (l *Loader) resolveID(ctx context.Context, sel resolver.Selector) (uint64, error) {
	var (
		id  uint64
		err error
	)
	switch sel.Kind {
	case resolver.Subdomain:
		id, err = site.IDBySubdomain(ctx, l.db, sel.Value)
	case resolver.QueryToken:
		id, err = site.IDByToken(ctx, l.db, sel.Value)
	default:
		return 0, ErrNotFound
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// resolveTheme fetches the referenced preset, falling back per color to
// the defaults; a site without a preset gets the full default set.
func (l *Loader) resolveTheme(ctx context.Context, rec *site.Record) (theme.Variables, error) {
	if !rec.ThemeID.Valid {
		return theme.Defaults(), nil
	}
	p, err := theme.PresetByID(ctx, l.db, uint64(rec.ThemeID.Int64))
	if errors.Is(err, sql.ErrNoRows) {
		// Dangling preset reference: render with defaults rather than
		// failing the whole site.
		return theme.Defaults(), nil
	}
	if err != nil {
		return theme.Variables{}, err
	}
	return theme.Resolve(p), nil
}
