package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"faylbot/internal/models"
)

type StatsService struct {
	store  Store
	logger *zerolog.Logger
}

func NewStatsService(store Store, logger *zerolog.Logger) *StatsService {
	return &StatsService{store: store, logger: logger}
}

func (s *StatsService) Summary(ctx context.Context) (*models.StatsSummary, error) {
	users, err := s.store.GetUserCount(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.store.CountFiles(ctx, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.store.CountRequestsSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	return &models.StatsSummary{
		TotalUsers:    users,
		TotalFiles:    files,
		RequestsToday: today,
	}, nil
}

func (s *StatsService) CountUserRequests(ctx context.Context, userID int64, start, end time.Time) (int, error) {
	return s.store.CountUserRequests(ctx, userID, start, end)
}

func (s *StatsService) UserRequests(ctx context.Context, userID int64, start, end time.Time) ([]*models.FileRequest, error) {
	return s.store.GetUserRequests(ctx, userID, start, end)
}

func (s *StatsService) LogRequest(ctx context.Context, userID int64, code string) error {
	return s.store.LogFileRequest(ctx, userID, code)
}
