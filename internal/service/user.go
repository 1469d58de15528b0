package service

import (
	"context"

	"github.com/rs/zerolog"

	"faylbot/internal/events"
	"faylbot/internal/models"
)

type UserService struct {
	store  Store
	admins map[int64]struct{}
	bus    *events.Bus
	logger *zerolog.Logger
}

func NewUserService(store Store, admins []int64, bus *events.Bus, logger *zerolog.Logger) *UserService {
	set := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}
	return &UserService{store: store, admins: set, bus: bus, logger: logger}
}

func (s *UserService) RegisterUser(ctx context.Context, user *models.User) error {
	if err := s.store.CreateUserIfAbsent(ctx, user); err != nil {
		return err
	}
	s.bus.PublishJSON(ctx, events.TopicUserRegistered, map[string]interface{}{
		"telegram_id": user.TelegramID,
		"username":    user.Username,
	})
	return nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.GetAllUsers(ctx)
}

func (s *UserService) Recipients(ctx context.Context) ([]int64, error) {
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.TelegramID)
	}
	return ids, nil
}

func (s *UserService) IsAdmin(telegramID int64) bool {
	_, ok := s.admins[telegramID]
	return ok
}
