package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faylbot/internal/models"
)

// CreateUserIfAbsent registers a user on first contact. Repeated calls for
// the same telegram id are silent no-ops.
func (db *DB) CreateUserIfAbsent(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (telegram_id, first_name, last_name, username, language_code)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(telegram_id) DO NOTHING
	`

	res, err := db.conn.ExecContext(ctx, query,
		user.TelegramID, user.FirstName, user.LastName, user.Username, user.LanguageCode)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		db.logger.Info().
			Int64("telegram_id", user.TelegramID).
			Str("username", user.Username).
			Msg("user registered")
	}
	return nil
}

func (db *DB) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `
		SELECT id, telegram_id, first_name, last_name, username, language_code, created_at
		FROM users WHERE telegram_id = ?
	`

	var u models.User
	err := db.conn.QueryRowContext(ctx, query, telegramID).Scan(
		&u.ID, &u.TelegramID, &u.FirstName, &u.LastName, &u.Username, &u.LanguageCode, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetAllUsers returns every registered user, oldest first. Broadcast and
// export both iterate this set.
func (db *DB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, telegram_id, first_name, last_name, username, language_code, created_at
		FROM users ORDER BY created_at ASC
	`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.FirstName, &u.LastName,
			&u.Username, &u.LanguageCode, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (db *DB) GetUserCount(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
