package service

import (
	"context"
	"time"

	"faylbot/internal/models"
)

// Store is the persistence surface the services need. *database.DB
// satisfies it.
type Store interface {
	CreateUserIfAbsent(ctx context.Context, user *models.User) error
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserCount(ctx context.Context) (int, error)

	CreateFile(ctx context.Context, file *models.StoredFile) error
	GetFileByCode(ctx context.Context, code string) (*models.StoredFile, error)
	FileCodeExists(ctx context.Context, code string) (bool, error)
	DeleteFile(ctx context.Context, code string) error
	ListFiles(ctx context.Context, kind models.MediaKind, offset, limit int) ([]*models.StoredFile, error)
	CountFiles(ctx context.Context, kind models.MediaKind) (int, error)

	AddChannel(ctx context.Context, handle string) error
	RemoveChannel(ctx context.Context, handle string) error
	GetChannels(ctx context.Context) ([]string, error)

	LogFileRequest(ctx context.Context, userID int64, code string) error
	CountUserRequests(ctx context.Context, userID int64, start, end time.Time) (int, error)
	GetUserRequests(ctx context.Context, userID int64, start, end time.Time) ([]*models.FileRequest, error)
	CountRequestsSince(ctx context.Context, since time.Time) (int, error)
}
