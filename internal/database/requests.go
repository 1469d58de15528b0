package database

import (
	"context"
	"fmt"
	"time"

	"faylbot/internal/models"
)

// LogFileRequest appends one audit row. Called after the subscription gate
// passed and the code resolved, before delivery is attempted.
func (db *DB) LogFileRequest(ctx context.Context, userID int64, code string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO file_requests (user_id, file_code) VALUES (?, ?)`, userID, code)
	if err != nil {
		return fmt.Errorf("log file request: %w", err)
	}
	return nil
}

// CountUserRequests counts one user's requests inside [start, end]. Zero
// bounds are open.
func (db *DB) CountUserRequests(ctx context.Context, userID int64, start, end time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM file_requests WHERE user_id = ?`
	args := []interface{}{userID}
	if !start.IsZero() {
		query += ` AND requested_at >= ?`
		args = append(args, start.UTC())
	}
	if !end.IsZero() {
		query += ` AND requested_at <= ?`
		args = append(args, end.UTC())
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count user requests: %w", err)
	}
	return count, nil
}

func (db *DB) GetUserRequests(ctx context.Context, userID int64, start, end time.Time) ([]*models.FileRequest, error) {
	query := `SELECT id, user_id, file_code, requested_at FROM file_requests WHERE user_id = ?`
	args := []interface{}{userID}
	if !start.IsZero() {
		query += ` AND requested_at >= ?`
		args = append(args, start.UTC())
	}
	if !end.IsZero() {
		query += ` AND requested_at <= ?`
		args = append(args, end.UTC())
	}
	query += ` ORDER BY requested_at ASC, id ASC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list user requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.FileRequest
	for rows.Next() {
		var r models.FileRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.FileCode, &r.RequestedAt); err != nil {
			return nil, fmt.Errorf("scan file request: %w", err)
		}
		requests = append(requests, &r)
	}
	return requests, rows.Err()
}

// CountRequestsSince counts requests across all users from the given moment.
// Used by the stats summary for its "today" line.
func (db *DB) CountRequestsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM file_requests WHERE requested_at >= ?`, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return count, nil
}
