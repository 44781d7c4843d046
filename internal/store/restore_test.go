package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestReplaceTableRows(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "Department"`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "Department" ("id", "name") VALUES ($1, $2)`)).
		WithArgs("1", "Emergency").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "Department" ("id", "name") VALUES ($1, $2)`)).
		WithArgs("2", "Pharmacy").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`SELECT setval(pg_get_serial_sequence('"Department"', 'id'), COALESCE((SELECT MAX("id") FROM "Department"), 0) + 1, false)`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Column order in the INSERT is sorted regardless of map order.
	err := repo.ReplaceTableRows(context.Background(), "Department", []map[string]any{
		{"name": "Emergency", "id": "1"},
		{"id": "2", "name": "Pharmacy"},
	})
	if err != nil {
		t.Fatalf("ReplaceTableRows() error = %v", err)
	}
	assertSQLMock(t, mock)
}

func TestReplaceTableRowsRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	boom := errors.New("duplicate key")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "Department"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "Department"`)).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.ReplaceTableRows(context.Background(), "Department", []map[string]any{
		{"id": "1", "name": "Emergency"},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped insert failure", err)
	}
	assertSQLMock(t, mock)
}
