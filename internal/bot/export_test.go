package bot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"faylbot/internal/models"
)

func TestWriteUsersXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.xlsx")
	users := []*models.User{
		{TelegramID: 111, FirstName: "Aziz", Username: "aziz_dev", LanguageCode: "uz", CreatedAt: time.Now()},
		{TelegramID: 222, FirstName: "Olim", CreatedAt: time.Now()},
	}

	require.NoError(t, writeUsersXLSX(users, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Foydalanuvchilar"
	header, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Telegram ID", header)

	id, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "111", id)

	name, err := f.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Olim", name)
}

func TestWriteRequestsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	requests := []*models.FileRequest{
		{UserID: 7, FileCode: "42", RequestedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}

	require.NoError(t, writeRequestsXLSX(7, requests, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Statistika"
	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Foydalanuvchi: 7", title)

	code, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "42", code)

	ts, err := f.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01 12:00:00", ts)
}

func TestWriteUsersXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, writeUsersXLSX(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Foydalanuvchilar", "A1")
	require.NoError(t, err)
	assert.Equal(t, "#", header)
}
