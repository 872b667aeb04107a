// internal/contact/repository_test.go
//
// Unit tests for the contact repository using sqlmock.
//
// Run: go test ./internal/contact -v

package contact

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const selectCols = `SELECT id, name, phone_number, email, message, is_read, created_at FROM contact_messages`

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func messageRows(id int64, read bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "phone_number", "email", "message", "is_read", "created_at",
	}).AddRow(id, "Jane Doe", "", "jane@example.com",
		"Hello, I would like to get in touch about a project.", read,
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestCreateReturnsStoredRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO contact_messages (name, email, message, phone_number) VALUES (?, ?, ?, ?)`,
	)).
		WithArgs("Jane Doe", "jane@example.com",
			"Hello, I would like to get in touch about a project.", "").
		WillReturnResult(sqlmock.NewResult(7, 1))

	mock.ExpectQuery(regexp.QuoteMeta(selectCols+` WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(messageRows(7, false))

	got, err := repo.Create(context.Background(), Submission{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Body:  "Hello, I would like to get in touch about a project.",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Name != "Jane Doe" || got.IsRead {
		t.Fatalf("unexpected row: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCols+` WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.ByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("ByID error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row, got %+v", got)
	}
}

func TestAllNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "phone_number", "email", "message", "is_read", "created_at",
	}).
		AddRow(2, "B", "", "b@example.com", "second message body", false,
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)).
		AddRow(1, "A", "", "a@example.com", "first message body", true,
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(regexp.QuoteMeta(selectCols+` ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	got, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSetReadUpdatesAndReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE contact_messages SET is_read = ? WHERE id = ?`,
	)).
		WithArgs(true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(selectCols+` WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(messageRows(7, true))

	got, err := repo.SetRead(context.Background(), 7, true)
	if err != nil {
		t.Fatalf("SetRead error: %v", err)
	}
	if got == nil || !got.IsRead {
		t.Fatalf("expected is_read=true row, got %+v", got)
	}
}

func TestSetReadMissingID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE contact_messages SET is_read = ? WHERE id = ?`,
	)).
		WithArgs(true, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(regexp.QuoteMeta(selectCols+` WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.SetRead(context.Background(), 99, true)
	if err != nil {
		t.Fatalf("SetRead error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil sentinel, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM contact_messages WHERE id = ?`,
	)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), 7)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for deleted row")
	}

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM contact_messages WHERE id = ?`,
	)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.Delete(context.Background(), 7)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for missing row")
	}
}
