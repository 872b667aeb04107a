// internal/contact/repository.go
//
// sqlx query helpers for contact_messages.
//
// Context
// -------
// All statements are parameterized; nothing in this file concatenates user
// input into SQL.  Create is a two-step insert-then-select because MySQL
// has no RETURNING clause — the re-read picks up the generated id and the
// store-assigned created_at.  SetRead and Delete distinguish "no such row"
// from a server error with nil/false sentinels so the HTTP layer can emit
// a 404 instead of a 500.
package contact

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository wraps the process-wide pool.  Construct once and inject into
// the HTTP layer.
type Repository struct {
	db *sqlx.DB
}

// NewRepository binds the repository to a pool.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// Create inserts a validated submission and returns the stored row.
func (r *Repository) Create(ctx context.Context, s Submission) (*Message, error) {
	const q = `
        INSERT INTO contact_messages (name, email, message, phone_number)
        VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, q, s.Name, s.Email, s.Body, s.Phone)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

// ByID fetches a single message.  Returns (nil, nil) when no row matches.
func (r *Repository) ByID(ctx context.Context, id int64) (*Message, error) {
	const q = `
        SELECT id, name, phone_number, email, message, is_read, created_at
        FROM   contact_messages
        WHERE  id = ?`

	var m Message
	if err := r.db.GetContext(ctx, &m, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// All returns every message, newest first.
func (r *Repository) All(ctx context.Context) ([]Message, error) {
	const q = `
        SELECT id, name, phone_number, email, message, is_read, created_at
        FROM   contact_messages
        ORDER  BY created_at DESC`

	rows := make([]Message, 0, 16)
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetRead flips the read flag and returns the updated row, or (nil, nil)
// when the id does not exist.
func (r *Repository) SetRead(ctx context.Context, id int64, read bool) (*Message, error) {
	const q = `UPDATE contact_messages SET is_read = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, read, id); err != nil {
		return nil, err
	}
	// RowsAffected counts *changed* rows on MySQL, so a no-op update (flag
	// already at the requested value) would also report zero.  The re-read
	// settles both cases: missing id → (nil, nil), unchanged row → the row.
	return r.ByID(ctx, id)
}

// Delete removes a message.  The bool reports whether a row matched.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM contact_messages WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
