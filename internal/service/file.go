package service

import (
	"context"

	"github.com/rs/zerolog"

	"faylbot/internal/events"
	"faylbot/internal/models"
)

type FileService struct {
	store  Store
	bus    *events.Bus
	logger *zerolog.Logger
}

func NewFileService(store Store, bus *events.Bus, logger *zerolog.Logger) *FileService {
	return &FileService{store: store, bus: bus, logger: logger}
}

func (s *FileService) SaveFile(ctx context.Context, file *models.StoredFile) error {
	if err := s.store.CreateFile(ctx, file); err != nil {
		return err
	}
	s.bus.PublishJSON(ctx, events.TopicFileStored, map[string]interface{}{
		"code": file.Code,
		"kind": string(file.Kind),
	})
	return nil
}

func (s *FileService) GetFile(ctx context.Context, code string) (*models.StoredFile, error) {
	return s.store.GetFileByCode(ctx, code)
}

func (s *FileService) DeleteFile(ctx context.Context, code string) error {
	if err := s.store.DeleteFile(ctx, code); err != nil {
		return err
	}
	s.bus.PublishJSON(ctx, events.TopicFileDeleted, map[string]string{"code": code})
	return nil
}

func (s *FileService) CodeExists(ctx context.Context, code string) (bool, error) {
	return s.store.FileCodeExists(ctx, code)
}

func (s *FileService) ListFiles(ctx context.Context, kind models.MediaKind, offset, limit int) ([]*models.StoredFile, error) {
	return s.store.ListFiles(ctx, kind, offset, limit)
}

func (s *FileService) CountFiles(ctx context.Context, kind models.MediaKind) (int, error) {
	return s.store.CountFiles(ctx, kind)
}
