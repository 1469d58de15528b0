package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faylbot/internal/models"
)

func TestCreateAndGetFile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	file := &models.StoredFile{
		Code:    "42",
		FileID:  "BQACAgIAAxkBAAIB",
		Kind:    models.KindDocument,
		Caption: "yearly report",
	}
	require.NoError(t, db.CreateFile(ctx, file))

	got, err := db.GetFileByCode(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", got.Code)
	assert.Equal(t, file.FileID, got.FileID)
	assert.Equal(t, models.KindDocument, got.Kind)
	assert.Equal(t, "yearly report", got.Caption)
	assert.False(t, got.UploadedAt.IsZero())
}

func TestCreateFileDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateFile(ctx, &models.StoredFile{Code: "7", FileID: "a", Kind: models.KindPhoto}))

	err := db.CreateFile(ctx, &models.StoredFile{Code: "7", FileID: "b", Kind: models.KindVideo})
	assert.ErrorIs(t, err, ErrCodeExists)
}

func TestGetFileNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetFileByCode(context.Background(), "999")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileCodeExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	exists, err := db.FileCodeExists(ctx, "5")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.CreateFile(ctx, &models.StoredFile{Code: "5", FileID: "x", Kind: models.KindVoice}))

	exists, err = db.FileCodeExists(ctx, "5")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteFile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateFile(ctx, &models.StoredFile{Code: "11", FileID: "x", Kind: models.KindDocument}))
	require.NoError(t, db.DeleteFile(ctx, "11"))

	_, err := db.GetFileByCode(ctx, "11")
	assert.ErrorIs(t, err, ErrFileNotFound)

	assert.ErrorIs(t, db.DeleteFile(ctx, "11"), ErrFileNotFound)
}

func TestListFilesFilterAndPaging(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		kind := models.KindDocument
		if i%3 == 0 {
			kind = models.KindPhoto
		}
		require.NoError(t, db.CreateFile(ctx, &models.StoredFile{
			Code:   fmt.Sprintf("%d", 100+i),
			FileID: "id",
			Kind:   kind,
		}))
	}

	total, err := db.CountFiles(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 15, total)

	photos, err := db.CountFiles(ctx, models.KindPhoto)
	require.NoError(t, err)
	assert.Equal(t, 5, photos)

	page, err := db.ListFiles(ctx, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	// newest first
	assert.Equal(t, "114", page[0].Code)

	rest, err := db.ListFiles(ctx, "", 10, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 5)

	onlyPhotos, err := db.ListFiles(ctx, models.KindPhoto, 0, 10)
	require.NoError(t, err)
	require.Len(t, onlyPhotos, 5)
	for _, f := range onlyPhotos {
		assert.Equal(t, models.KindPhoto, f.Kind)
	}
}
