// internal/storage/storage.go
//
// Row-level backing-store surface.
//
// Context
// -------
// The editor pipeline and the admin tooling only ever need five row
// operations: read one by id, read many by parent, update fields by id,
// update fields by parent, and insert one.  Store is that capability
// surface; the rest of the core depends on the interface, never on the
// driver.  SQL statements are assembled with huandu/go-sqlbuilder so
// identifiers and placeholders stay separated, and every identifier is
// additionally checked against a strict pattern because table and column
// names arrive from the edit API, not from code.
//
// Notes
// -----
// • Row atomicity is the database's job; Store adds none of its own.
// • Oxford commas, two spaces after periods.

package storage

import (
	"context"
	"fmt"
	"regexp"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
)

// Store is the only storage capability the core depends on.
type Store interface {
	// GetByID returns one row as a column→value map.
	GetByID(ctx context.Context, table, id string) (map[string]any, error)
	// ListByParent returns every row whose site_id matches parentID.
	ListByParent(ctx context.Context, table string, parentID uint64) ([]map[string]any, error)
	// UpdateByID sets the given fields on the row with the given id.
	UpdateByID(ctx context.Context, table, id string, fields map[string]any) error
	// UpdateByParent sets the given fields on the single row owned by
	// parentID.  Used when a table holds one row per site.
	UpdateByParent(ctx context.Context, table string, parentID uint64, fields map[string]any) error
	// Insert adds one row and returns its auto-increment id.
	Insert(ctx context.Context, table string, fields map[string]any) (int64, error)
}

// identPattern accepts snake_case SQL identifiers only.
var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ErrBadIdentifier wraps the offending name so handlers can 400 on it.
type ErrBadIdentifier struct{ Name string }

func (e ErrBadIdentifier) Error() string {
	return fmt.Sprintf("storage: invalid identifier %q", e.Name)
}

func checkIdent(names ...string) error {
	for _, n := range names {
		if !identPattern.MatchString(n) {
			return ErrBadIdentifier{Name: n}
		}
	}
	return nil
}

// SQL implements Store over a sqlx pool (MySQL flavor).
type SQL struct {
	db *sqlx.DB
}

// NewSQL wraps an open pool.
func NewSQL(db *sqlx.DB) *SQL { return &SQL{db: db} }

var _ Store = (*SQL)(nil)

func (s *SQL) GetByID(ctx context.Context, table, id string) (map[string]any, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	sb := sqlbuilder.MySQL.NewSelectBuilder()
	sb.Select("*").From(table)
	sb.Where(sb.Equal("id", id))
	sb.Limit(1)
	q, args := sb.Build()

	row := s.db.QueryRowxContext(ctx, q, args...)
	out := map[string]any{}
	if err := row.MapScan(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQL) ListByParent(ctx context.Context, table string, parentID uint64) ([]map[string]any, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	sb := sqlbuilder.MySQL.NewSelectBuilder()
	sb.Select("*").From(table)
	sb.Where(sb.Equal("site_id", parentID))
	q, args := sb.Build()

	rows, err := s.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQL) UpdateByID(ctx context.Context, table, id string, fields map[string]any) error {
	return s.update(ctx, table, "id", id, fields)
}

func (s *SQL) UpdateByParent(ctx context.Context, table string, parentID uint64, fields map[string]any) error {
	return s.update(ctx, table, "site_id", parentID, fields)
}

func (s *SQL) update(ctx context.Context, table, keyCol string, keyVal any, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	if err := checkIdent(append([]string{table}, names...)...); err != nil {
		return err
	}

	ub := sqlbuilder.MySQL.NewUpdateBuilder()
	ub.Update(table)
	assigns := make([]string, 0, len(fields))
	for _, name := range sortedKeys(fields) {
		assigns = append(assigns, ub.Assign(name, fields[name]))
	}
	ub.Set(assigns...)
	ub.Where(ub.Equal(keyCol, keyVal))
	q, args := ub.Build()

	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *SQL) Insert(ctx context.Context, table string, fields map[string]any) (int64, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	if err := checkIdent(append([]string{table}, names...)...); err != nil {
		return 0, err
	}

	ib := sqlbuilder.MySQL.NewInsertBuilder()
	ib.InsertInto(table)
	cols := sortedKeys(fields)
	vals := make([]any, 0, len(cols))
	for _, c := range cols {
		vals = append(vals, fields[c])
	}
	ib.Cols(cols...)
	ib.Values(vals...)
	q, args := ib.Build()

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// sortedKeys makes statement shape deterministic for tests and logs.
func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
