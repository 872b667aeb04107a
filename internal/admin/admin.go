// internal/admin/admin.go
//
// Admin users and credential checks.
//
// Context
// -------
// `admin_users` holds the accounts allowed to read, flag, and delete
// contact messages.  Passwords are stored as bcrypt hashes; login verifies
// the hash and never reveals whether the username or the password was the
// failing half.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// User mirrors one row of admin_users.  The hash never leaves this package.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Repository wraps the process-wide pool.
type Repository struct {
	db *sqlx.DB
}

// NewRepository binds the repository to a pool.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// ByUsername fetches a single admin.  Returns (nil, nil) when no row
// matches so callers can treat unknown users and bad passwords alike.
func (r *Repository) ByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
        SELECT id, username, email, password_hash, created_at
        FROM   admin_users
        WHERE  username = ?`

	var u User
	if err := r.db.GetContext(ctx, &u, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate returns the user when username and password both check out,
// and (nil, nil) for any credential mismatch.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := r.ByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return u, nil
}
