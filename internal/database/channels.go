package database

import (
	"context"
	"fmt"
	"strings"
)

// AddChannel stores a mandatory-subscription channel handle. The leading "@"
// is stripped before storage.
func (db *DB) AddChannel(ctx context.Context, handle string) error {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return fmt.Errorf("empty channel handle")
	}

	_, err := db.conn.ExecContext(ctx, `INSERT INTO channels (username) VALUES (?)`, handle)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrChannelExists
		}
		return fmt.Errorf("add channel: %w", err)
	}

	db.logger.Info().Str("channel", handle).Msg("channel added")
	return nil
}

func (db *DB) RemoveChannel(ctx context.Context, handle string) error {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")

	res, err := db.conn.ExecContext(ctx, `DELETE FROM channels WHERE username = ?`, handle)
	if err != nil {
		return fmt.Errorf("remove channel: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove channel: %w", err)
	}
	if n == 0 {
		return ErrChannelNotFound
	}

	db.logger.Info().Str("channel", handle).Msg("channel removed")
	return nil
}

// GetChannels returns all mandatory channel handles, without "@".
func (db *DB) GetChannels(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT username FROM channels ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	var channels []string
	for rows.Next() {
		var handle string
		if err := rows.Scan(&handle); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, handle)
	}
	return channels, rows.Err()
}
