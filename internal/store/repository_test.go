package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestRunQueryReturnsGenericRows(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "Product" LIMIT 2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stockBalance"}).
			AddRow(int64(1), []byte("Surgical Gauze"), int64(120)).
			AddRow(int64(2), []byte("Syringe 5ml"), nil))

	rows, err := repo.RunQuery(context.Background(), `SELECT * FROM "Product" LIMIT 2`)
	if err != nil {
		t.Fatalf("RunQuery() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0]["name"] != "Surgical Gauze" {
		t.Fatalf("rows[0][name] = %#v, want string", rows[0]["name"])
	}
	if rows[0]["id"] != int64(1) {
		t.Fatalf("rows[0][id] = %#v", rows[0]["id"])
	}
	if rows[1]["stockBalance"] != nil {
		t.Fatalf("rows[1][stockBalance] = %#v, want nil", rows[1]["stockBalance"])
	}
	assertSQLMock(t, mock)
}

func TestRunQueryEmptyResult(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "name" FROM "Department"`)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	rows, err := repo.RunQuery(context.Background(), `SELECT "name" FROM "Department"`)
	if err != nil {
		t.Fatalf("RunQuery() error = %v", err)
	}
	if rows == nil {
		t.Fatal("rows should be an empty slice, not nil")
	}
	if len(rows) != 0 {
		t.Fatalf("len(rows) = %d", len(rows))
	}
	assertSQLMock(t, mock)
}

func TestRunQuerySurfacesDatabaseError(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	dbErr := errors.New(`relation "Prodcut" does not exist`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "Prodcut"`)).WillReturnError(dbErr)

	_, err := repo.RunQuery(context.Background(), `SELECT * FROM "Prodcut"`)
	if !errors.Is(err, dbErr) {
		t.Fatalf("error = %v, want the database error", err)
	}
	assertSQLMock(t, mock)
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}
