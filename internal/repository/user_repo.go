package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipebook/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (email, username, password_hash) VALUES (?, ?, ?)`

	selectUserByIDSQL       = `SELECT id, email, username, password_hash, reset_token, reset_token_expires_at FROM users WHERE id = ?`
	selectUserByEmailSQL    = `SELECT id, email, username, password_hash, reset_token, reset_token_expires_at FROM users WHERE email = ?`
	selectUserByUsernameSQL = `SELECT id, email, username, password_hash, reset_token, reset_token_expires_at FROM users WHERE username = ?`

	updatePasswordSQL = `UPDATE users SET password_hash = ? WHERE id = ?`

	setResetTokenSQL = `UPDATE users SET reset_token = ?, reset_token_expires_at = ? WHERE email = ?`

	// Consume is a single statement so a matched token can never leave the
	// password updated but the token still set.
	consumeResetTokenSQL = `
		UPDATE users
		SET password_hash = ?, reset_token = NULL, reset_token_expires_at = NULL
		WHERE reset_token = ? AND reset_token_expires_at > ?
	`

	purgeExpiredTokensSQL = `
		UPDATE users
		SET reset_token = NULL, reset_token_expires_at = NULL
		WHERE reset_token IS NOT NULL AND reset_token_expires_at <= ?
	`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, email, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

// getOne fetches a single user by the given query. Returns (nil, nil) if not found.
func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		u         models.User
		token     sql.NullString
		expiresAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &token, &expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by %v: %w", arg, err)
	}
	if token.Valid {
		u.ResetToken = &token.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		u.ResetTokenExpiresAt = &t
	}
	return &u, nil
}

// UpdatePassword overwrites the password hash for a single user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordSQL, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password for user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update password for user %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// SetResetToken stores a fresh reset token, overwriting any prior one.
func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, setResetTokenSQL, token, expiresAt.UTC(), email)
	if err != nil {
		return fmt.Errorf("set reset token for %q: %w", email, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %q: %w", email, err)
	}
	if n == 0 {
		return fmt.Errorf("set reset token for %q: %w", email, sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, consumeResetTokenSQL, passwordHash, token, now.UTC())
	if err != nil {
		return false, fmt.Errorf("consume reset token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume reset token rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, purgeExpiredTokensSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge expired reset tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge expired reset tokens rows affected: %w", err)
	}
	return n, nil
}
