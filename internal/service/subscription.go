package service

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/domain"
)

// SubscriptionService checks membership in every mandatory channel.
type SubscriptionService struct {
	channels domain.ChannelService
	tg       domain.TelegramService
	isAdmin  func(int64) bool
	logger   *zerolog.Logger
}

func NewSubscriptionService(channels domain.ChannelService, tg domain.TelegramService, isAdmin func(int64) bool, logger *zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{channels: channels, tg: tg, isAdmin: isAdmin, logger: logger}
}

// IsSubscribed reports whether the user passes the gate. Admins always pass,
// as does everyone when no channels are configured. The first channel the
// user is not a member of fails the whole check; a membership lookup error
// also fails it (the gate is closed when in doubt).
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID int64) (bool, error) {
	if s.isAdmin(userID) {
		return true, nil
	}

	channels, err := s.channels.ListChannels(ctx)
	if err != nil {
		return false, err
	}
	if len(channels) == 0 {
		return true, nil
	}

	for _, handle := range channels {
		member, err := s.tg.GetChatMember(tgbotapi.GetChatMemberConfig{
			ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
				SuperGroupUsername: "@" + handle,
				UserID:             userID,
			},
		})
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("channel", handle).
				Int64("user_id", userID).
				Msg("membership check failed, treating as not subscribed")
			return false, nil
		}

		switch member.Status {
		case "member", "administrator", "creator":
		default:
			return false, nil
		}
	}
	return true, nil
}

func (s *SubscriptionService) Channels(ctx context.Context) ([]string, error) {
	return s.channels.ListChannels(ctx)
}
