package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GokulM8/taskflow/internal/model"
)

// CreateUser inserts a user record. The caller supplies the password hash;
// plaintext never reaches this package.
// Returns model.ErrDuplicateEmail if the email is already registered.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicateEmail
	}

	now := db.timestamp()
	res, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		name, email, passwordHash, now)
	if isUniqueViolation(err) {
		// lost a race with a concurrent registration
		return nil, model.ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	return db.GetUser(ctx, id)
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return db.scanUser(db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE id = ?`, id))
}

// GetUserByEmail retrieves a user by email, matched in normalized form.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.scanUser(db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = ?`, model.NormalizeEmail(email)))
}

func (db *DB) scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
