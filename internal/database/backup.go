package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// BackupService periodically snapshots the sqlite file with VACUUM INTO and
// prunes snapshots older than the retention window.
type BackupService struct {
	db            *DB
	storagePath   string
	interval      time.Duration
	retentionDays int
	logger        *zerolog.Logger
}

func NewBackupService(db *DB, storagePath string, interval time.Duration, retentionDays int, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		db:            db,
		storagePath:   storagePath,
		interval:      interval,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run blocks until ctx is cancelled, taking a backup every interval.
func (s *BackupService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Int("retention_days", s.retentionDays).
		Msg("backup service started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("backup service stopped")
			return
		case <-ticker.C:
			if err := s.Backup(ctx); err != nil {
				s.logger.Error().Err(err).Msg("backup failed")
			}
			if err := s.cleanup(); err != nil {
				s.logger.Error().Err(err).Msg("backup cleanup failed")
			}
		}
	}
}

// Backup writes one timestamped snapshot into the storage directory.
func (s *BackupService) Backup(ctx context.Context) error {
	if err := os.MkdirAll(s.storagePath, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().UTC().Format("20060102_150405"))
	target := filepath.Join(s.storagePath, name)

	_, err := s.db.conn.ExecContext(ctx, `VACUUM INTO ?`, target)
	if err != nil {
		return fmt.Errorf("vacuum into %s: %w", target, err)
	}

	s.logger.Info().Str("file", target).Msg("backup created")
	return nil
}

func (s *BackupService) cleanup() error {
	entries, err := os.ReadDir(s.storagePath)
	if err != nil {
		return fmt.Errorf("read backup dir: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.storagePath, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Warn().Err(err).Str("file", path).Msg("failed to remove old backup")
				continue
			}
			s.logger.Info().Str("file", path).Msg("old backup removed")
		}
	}
	return nil
}
