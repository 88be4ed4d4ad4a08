// internal/site/repository_test.go
//
// Unit-tests for site repository helpers using sqlmock.
//
// Run: go test ./internal/site -v

package site

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestIDBySubdomain(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("sweetdelights").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := IDBySubdomain(context.Background(), db, "sweetdelights")
	if err != nil {
		t.Fatalf("IDBySubdomain: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSectionsBySite_NullEnabled(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT site_id, name, enabled")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"site_id", "name", "enabled"}).
			AddRow(7, "hero", true).
			AddRow(7, "faq", nil).
			AddRow(7, "testimonials", false))

	rows, err := SectionsBySite(context.Background(), db, 7)
	if err != nil {
		t.Fatalf("SectionsBySite: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	if rows[1].Enabled.Valid {
		t.Fatalf("NULL enabled scanned as valid: %+v", rows[1])
	}
	if !rows[2].Enabled.Valid || rows[2].Enabled.Bool {
		t.Fatalf("explicit false lost: %+v", rows[2])
	}
}

func TestSettingsBySite(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("tagline", "Fresh daily").
			AddRow("phone", "555-0100"))

	got, err := SettingsBySite(context.Background(), db, 7)
	if err != nil {
		t.Fatalf("SettingsBySite: %v", err)
	}
	if got["tagline"] != "Fresh daily" || got["phone"] != "555-0100" {
		t.Fatalf("unexpected map: %#v", got)
	}
}
