// internal/tenant/cache_test.go
//
// Tests for the snapshot cache: load-once behavior, and the refresh
// contract (version bumps by exactly one, exactly one re-load, selection
// untouched).

package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/resolver"
)

func newCacheMock(t *testing.T) (*Cache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	c := New(sqlx.NewDb(db, "mysql"), time.Hour, 10)
	t.Cleanup(func() { c.Stop(); db.Close() })
	return c, mock
}

func expectFullLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT id\s+FROM\s+site\s+WHERE\s+subdomain`).
		WithArgs("sweetdelights").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT id, subdomain, token`).
		WithArgs(uint64(7)).
		WillReturnRows(siteRows(true, nil))
	mock.ExpectQuery(`FROM\s+site_section`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"site_id", "name", "enabled"}).
			AddRow(7, "hero", true))
	mock.ExpectQuery(`FROM\s+site_setting`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))
}

func TestCache_GetLoadsOnce(t *testing.T) {
	c, mock := newCacheMock(t)
	sel := resolver.Selector{Kind: resolver.Subdomain, Value: "sweetdelights"}

	expectFullLoad(mock)

	first, err := c.Get(context.Background(), sel)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first.Version != 1 {
		t.Fatalf("initial version = %d, want 1", first.Version)
	}

	// Second hit must come from the cache: no further expectations set.
	second, err := c.Get(context.Background(), sel)
	if err != nil {
		t.Fatalf("cached Get: %v", err)
	}
	if second != first {
		t.Fatal("second Get returned a different snapshot")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestCache_RefreshBumpsVersionAndReloadsOnce(t *testing.T) {
	c, mock := newCacheMock(t)
	sel := resolver.Selector{Kind: resolver.Subdomain, Value: "sweetdelights"}

	expectFullLoad(mock)
	if _, err := c.Get(context.Background(), sel); err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Exactly one full re-load for the refresh.
	expectFullLoad(mock)
	snap, err := c.Refresh(context.Background(), sel)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.Version != 2 {
		t.Fatalf("version after refresh = %d, want 2", snap.Version)
	}

	// The refreshed snapshot is what Get now serves (same selection).
	got, err := c.Get(context.Background(), sel)
	if err != nil {
		t.Fatalf("Get after refresh: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("served version = %d, want 2", got.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("reload count wrong: %v", err)
	}
}

func TestCache_NoneSelector(t *testing.T) {
	c, _ := newCacheMock(t)
	if _, err := c.Get(context.Background(), resolver.Selector{}); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
