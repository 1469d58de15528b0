package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"faylbot/internal/models"
)

// CreateFile stores a new file under its code. The code is unique forever;
// a duplicate returns ErrCodeExists.
func (db *DB) CreateFile(ctx context.Context, file *models.StoredFile) error {
	query := `
		INSERT INTO files (file_code, file_id, file_link, file_type, caption)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query,
		file.Code, file.FileID, file.FileLink, string(file.Kind), file.Caption)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrCodeExists
		}
		return fmt.Errorf("create file: %w", err)
	}

	db.logger.Info().
		Str("code", file.Code).
		Str("kind", string(file.Kind)).
		Msg("file stored")
	return nil
}

func (db *DB) GetFileByCode(ctx context.Context, code string) (*models.StoredFile, error) {
	query := `
		SELECT id, file_code, file_id, file_link, file_type, caption, uploaded_at
		FROM files WHERE file_code = ?
	`

	var f models.StoredFile
	var kind string
	err := db.conn.QueryRowContext(ctx, query, code).Scan(
		&f.ID, &f.Code, &f.FileID, &f.FileLink, &kind, &f.Caption, &f.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	f.Kind = models.MediaKind(kind)
	return &f, nil
}

func (db *DB) FileCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM files WHERE file_code = ?)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check file code: %w", err)
	}
	return exists, nil
}

func (db *DB) DeleteFile(ctx context.Context, code string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM files WHERE file_code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if n == 0 {
		return ErrFileNotFound
	}

	db.logger.Info().Str("code", code).Msg("file deleted")
	return nil
}

// ListFiles pages through stored files, newest first. An empty kind means
// no filter.
func (db *DB) ListFiles(ctx context.Context, kind models.MediaKind, offset, limit int) ([]*models.StoredFile, error) {
	query := `
		SELECT id, file_code, file_id, file_link, file_type, caption, uploaded_at
		FROM files
	`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE file_type = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY uploaded_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []*models.StoredFile
	for rows.Next() {
		var f models.StoredFile
		var k string
		if err := rows.Scan(&f.ID, &f.Code, &f.FileID, &f.FileLink, &k, &f.Caption, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		f.Kind = models.MediaKind(k)
		files = append(files, &f)
	}
	return files, rows.Err()
}

func (db *DB) CountFiles(ctx context.Context, kind models.MediaKind) (int, error) {
	query := `SELECT COUNT(*) FROM files`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE file_type = ?`
		args = append(args, string(kind))
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return count, nil
}
