// Package domain declares the service contracts the bot is wired against.
// Handlers depend on these interfaces, never on concrete implementations,
// which keeps them mockable in tests.
package domain

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"faylbot/internal/models"
)

// StateRepository persists per-user conversation state and rate-limit
// counters. Implementations: redis (primary), in-memory (fallback) and a
// failover decorator combining the two.
type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	DeleteState(ctx context.Context, userID int64) error

	// CheckRateLimit reports whether the user is still under limit within
	// the window, incrementing the counter as a side effect.
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

// StateService is the conversation-state API the handlers use.
type StateService interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetStep(ctx context.Context, userID int64, step string, data map[string]interface{}) error
	ClearState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64) (bool, error)
}

// TelegramService wraps the Bot API surface the handlers need.
type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) error
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetFileDirectURL(fileID string) (string, error)
	GetSelf() tgbotapi.User
}

type UserService interface {
	// RegisterUser is idempotent; re-registering an existing user changes
	// nothing.
	RegisterUser(ctx context.Context, user *models.User) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	// Recipients returns the telegram ids of every registered user.
	Recipients(ctx context.Context) ([]int64, error)
	IsAdmin(telegramID int64) bool
}

type FileService interface {
	SaveFile(ctx context.Context, file *models.StoredFile) error
	GetFile(ctx context.Context, code string) (*models.StoredFile, error)
	DeleteFile(ctx context.Context, code string) error
	CodeExists(ctx context.Context, code string) (bool, error)
	ListFiles(ctx context.Context, kind models.MediaKind, offset, limit int) ([]*models.StoredFile, error)
	CountFiles(ctx context.Context, kind models.MediaKind) (int, error)
}

type ChannelService interface {
	AddChannel(ctx context.Context, handle string) error
	RemoveChannel(ctx context.Context, handle string) error
	ListChannels(ctx context.Context) ([]string, error)
}

// SubscriptionService gates file delivery on channel membership.
type SubscriptionService interface {
	// IsSubscribed reports whether the user may pass the gate. Admins and
	// an empty channel set always pass; any membership-check failure is
	// treated as not subscribed.
	IsSubscribed(ctx context.Context, userID int64) (bool, error)
	Channels(ctx context.Context) ([]string, error)
}

type StatsService interface {
	Summary(ctx context.Context) (*models.StatsSummary, error)
	CountUserRequests(ctx context.Context, userID int64, start, end time.Time) (int, error)
	UserRequests(ctx context.Context, userID int64, start, end time.Time) ([]*models.FileRequest, error)
	LogRequest(ctx context.Context, userID int64, code string) error
}
