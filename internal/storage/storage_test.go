// internal/storage/storage_test.go
//
// Unit-tests for the sqlx-backed Store using sqlmock.

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQL(sqlx.NewDb(db, "mysql")), mock
}

func TestUpdateByID(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(`UPDATE page_content SET headline = \? WHERE id = \?`).
		WithArgs("Fresh Bread Daily", "12").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateByID(context.Background(), "page_content", "12",
		map[string]any{"headline": "Fresh Bread Daily"})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdateByParent(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(`UPDATE site_content SET tagline = \? WHERE site_id = \?`).
		WithArgs("Baked with love", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateByParent(context.Background(), "site_content", 7,
		map[string]any{"tagline": "Baked with love"})
	if err != nil {
		t.Fatalf("UpdateByParent: %v", err)
	}
}

func TestUpdate_EmptyFieldsIsNoop(t *testing.T) {
	s, mock := newMock(t)
	if err := s.UpdateByID(context.Background(), "t", "1", nil); err != nil {
		t.Fatalf("noop update errored: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL issued: %v", err)
	}
}

func TestInsert(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO menu_item`).
		WithArgs("Croissant", uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := s.Insert(context.Background(), "menu_item",
		map[string]any{"name": "Croissant", "site_id": uint64(7)})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestBadIdentifierRejected(t *testing.T) {
	s, _ := newMock(t)

	err := s.UpdateByID(context.Background(), "page_content; DROP TABLE site", "1",
		map[string]any{"headline": "x"})
	var bad ErrBadIdentifier
	if !errors.As(err, &bad) {
		t.Fatalf("got %v, want ErrBadIdentifier", err)
	}

	err = s.UpdateByID(context.Background(), "page_content", "1",
		map[string]any{"headline = '' --": "x"})
	if !errors.As(err, &bad) {
		t.Fatalf("field name accepted: %v", err)
	}
}
