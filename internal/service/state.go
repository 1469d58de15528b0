package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"faylbot/internal/domain"
	"faylbot/internal/models"
)

// StateService is the conversation-state layer over a StateRepository.
type StateService struct {
	repo      domain.StateRepository
	rateLimit int
	rateWin   time.Duration
	logger    *zerolog.Logger
}

func NewStateService(repo domain.StateRepository, rateLimit int, rateWindow time.Duration, logger *zerolog.Logger) *StateService {
	return &StateService{repo: repo, rateLimit: rateLimit, rateWin: rateWindow, logger: logger}
}

func (s *StateService) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	return s.repo.GetState(ctx, userID)
}

// SetStep moves the user to a new step, replacing any previous step data.
func (s *StateService) SetStep(ctx context.Context, userID int64, step string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	state := &models.UserState{
		UserID:      userID,
		CurrentStep: step,
		TempData:    data,
	}
	if err := s.repo.SetState(ctx, state); err != nil {
		return fmt.Errorf("set step %s: %w", step, err)
	}

	s.logger.Debug().Int64("user_id", userID).Str("step", step).Msg("state transition")
	return nil
}

func (s *StateService) ClearState(ctx context.Context, userID int64) error {
	return s.repo.DeleteState(ctx, userID)
}

func (s *StateService) CheckRateLimit(ctx context.Context, userID int64) (bool, error) {
	return s.repo.CheckRateLimit(ctx, userID, s.rateLimit, s.rateWin)
}
