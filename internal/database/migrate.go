// internal/database/migrate.go
//
// Idempotent schema migration and admin bootstrap.
//
// Context
// -------
// The schema is two flat tables with no relations, so migrations are plain
// CREATE TABLE IF NOT EXISTS statements run at startup.  When bootstrap
// admin credentials are configured, the first admin user is seeded with a
// bcrypt hash; an existing username makes the seed a no-op so restarts are
// safe.
package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/abasuthakur/portfolio-api/internal/config"
)

const createContactMessages = `
CREATE TABLE IF NOT EXISTS contact_messages (
    id           INT AUTO_INCREMENT PRIMARY KEY,
    name         VARCHAR(255) NOT NULL,
    phone_number VARCHAR(30)  DEFAULT '',
    email        VARCHAR(254) NOT NULL,
    message      TEXT         NOT NULL,
    is_read      BOOLEAN      DEFAULT FALSE,
    created_at   TIMESTAMP    DEFAULT CURRENT_TIMESTAMP
)`

const createAdminUsers = `
CREATE TABLE IF NOT EXISTS admin_users (
    id            INT AUTO_INCREMENT PRIMARY KEY,
    username      VARCHAR(150) NOT NULL UNIQUE,
    email         VARCHAR(254) NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    created_at    TIMESTAMP    DEFAULT CURRENT_TIMESTAMP
)`

// bcryptCost matches the cost the production seed used.
const bcryptCost = 12

// Migrate creates missing tables and seeds the bootstrap admin user.
func Migrate(ctx context.Context, db *sqlx.DB, admin config.Admin) error {
	for _, ddl := range []string{createContactMessages, createAdminUsers} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	zap.S().Infow("schema ready")

	return seedAdmin(ctx, db, admin)
}

// seedAdmin inserts the bootstrap admin unless credentials are unset or the
// username already exists.
func seedAdmin(ctx context.Context, db *sqlx.DB, admin config.Admin) error {
	if admin.Username == "" || admin.Email == "" || admin.Password == "" {
		return nil
	}

	var id int64
	err := db.GetContext(ctx, &id,
		`SELECT id FROM admin_users WHERE username = ?`, admin.Username)
	if err == nil {
		zap.S().Infow("admin user exists", "username", admin.Username)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO admin_users (username, email, password_hash) VALUES (?, ?, ?)`,
		admin.Username, admin.Email, string(hash))
	if err != nil {
		return err
	}
	zap.S().Infow("admin user created", "username", admin.Username)
	return nil
}
