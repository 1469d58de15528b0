package database

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	logger := zerolog.New(io.Discard)
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDB(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestBackup(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.AddChannel(ctx, "backup_channel"))

	dir := t.TempDir()
	logger := zerolog.New(io.Discard)
	svc := NewBackupService(db, dir, 0, 7, &logger)
	require.NoError(t, svc.Backup(ctx))

	matches, err := filepath.Glob(filepath.Join(dir, "backup_*.db"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
