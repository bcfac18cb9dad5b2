package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/hotelbot/internal/model"
)

// UserRepository provides access to bot users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a repository over the given connection pool.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByTelegramID returns a user by Telegram identity.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE telegram_id = $1", telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", telegramID, err)
	}
	return &user, nil
}

// Create registers a new user. First contact never grants admin.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (telegram_id, first_name, last_name, username, is_admin)
		 VALUES ($1, $2, $3, $4, FALSE)`,
		user.TelegramID, user.FirstName, user.LastName, user.Username,
	)
	if err != nil {
		return fmt.Errorf("create user %d: %w", user.TelegramID, err)
	}
	return nil
}

// IsAdmin reports the admin flag for a user; unknown users are not admins.
func (r *UserRepository) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	var isAdmin bool
	err := r.db.GetContext(ctx, &isAdmin, "SELECT is_admin FROM users WHERE telegram_id = $1", telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check admin %d: %w", telegramID, err)
	}
	return isAdmin, nil
}

// SetAdmin flips the admin flag. Only an existing admin may call this path.
func (r *UserRepository) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET is_admin = $1 WHERE telegram_id = $2", isAdmin, telegramID)
	if err != nil {
		return fmt.Errorf("set admin %d: %w", telegramID, err)
	}
	return requireRows(res)
}

var userColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"username":   "username",
}

// UpdateField sets a single whitelisted column of a user.
func (r *UserRepository) UpdateField(ctx context.Context, telegramID int64, field, value string) error {
	column, ok := userColumns[field]
	if !ok {
		return fmt.Errorf("update user field %q: %w", field, ErrNotFound)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE users SET %s = $1 WHERE telegram_id = $2", column),
		value, telegramID,
	)
	if err != nil {
		return fmt.Errorf("update user %d: %w", telegramID, err)
	}
	return requireRows(res)
}

// Delete removes a user record.
func (r *UserRepository) Delete(ctx context.Context, telegramID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE telegram_id = $1", telegramID)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", telegramID, err)
	}
	return requireRows(res)
}

// ListAll returns every known user, admins included.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY telegram_id"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// requireRows converts a zero-rows-affected result into ErrNotFound so
// handlers can tell "changed nothing" from success.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
