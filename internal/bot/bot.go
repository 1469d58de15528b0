// Package bot wires Telegram updates to the admin console and the file
// delivery flows.
package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"faylbot/internal/broadcast"
	"faylbot/internal/config"
	"faylbot/internal/domain"
	"faylbot/internal/events"
	"faylbot/internal/metrics"
)

const handlerTimeout = 30 * time.Second

// telegramClient is domain.TelegramService plus the long-polling surface
// only the update loop needs.
type telegramClient interface {
	domain.TelegramService
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Deps bundles everything the bot depends on.
type Deps struct {
	Telegram      telegramClient
	Users         domain.UserService
	Files         domain.FileService
	Channels      domain.ChannelService
	Subscriptions domain.SubscriptionService
	Stats         domain.StatsService
	State         domain.StateService
	Engine        *broadcast.Engine
	Bus           *events.Bus
	Metrics       *metrics.Metrics
}

type Bot struct {
	tg       telegramClient
	users    domain.UserService
	files    domain.FileService
	channels domain.ChannelService
	subs     domain.SubscriptionService
	stats    domain.StatsService
	state    domain.StateService
	engine   *broadcast.Engine
	bus      *events.Bus
	metrics  *metrics.Metrics
	cfg      *config.Config
	logger   zerolog.Logger

	bg sync.WaitGroup // in-flight broadcasts and exports
}

func New(cfg *config.Config, deps Deps, logger zerolog.Logger) *Bot {
	return &Bot{
		tg:       deps.Telegram,
		users:    deps.Users,
		files:    deps.Files,
		channels: deps.Channels,
		subs:     deps.Subscriptions,
		stats:    deps.Stats,
		state:    deps.State,
		engine:   deps.Engine,
		bus:      deps.Bus,
		metrics:  deps.Metrics,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run consumes the long-polling update channel until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.GetSelf().UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			b.bg.Wait()
			b.logger.Info().Msg("bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.bg.Wait()
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(parent context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(parent, handlerTimeout)
	defer cancel()

	l := b.logger.With().Str("request_id", uuid.NewString()).Logger()
	ctx = l.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			b.metrics.HandlerErrors.WithLabelValues("panic").Inc()
			l.Error().Interface("panic", r).Int("update_id", update.UpdateID).Msg("handler panicked")
		}
	}()

	start := time.Now()
	switch {
	case update.CallbackQuery != nil:
		b.metrics.UpdatesTotal.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
		b.metrics.HandlerDuration.WithLabelValues("callback").Observe(time.Since(start).Seconds())
	case update.Message != nil:
		b.metrics.UpdatesTotal.WithLabelValues("message").Inc()
		if !b.allowMessage(ctx, update.Message) {
			return
		}
		b.handleMessage(ctx, update.Message)
		b.metrics.HandlerDuration.WithLabelValues("message").Observe(time.Since(start).Seconds())
	}
}

// allowMessage applies the per-user rate limit. Admins are exempt.
func (b *Bot) allowMessage(ctx context.Context, msg *tgbotapi.Message) bool {
	if msg.From == nil || b.users.IsAdmin(msg.From.ID) {
		return true
	}

	ok, err := b.state.CheckRateLimit(ctx, msg.From.ID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !ok {
		b.metrics.RateLimited.Inc()
		zerolog.Ctx(ctx).Debug().Int64("user_id", msg.From.ID).Msg("rate limited")
	}
	return ok
}

// reply sends a plain text message; send errors are logged, not propagated.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.tg.SendMessage(chatID, text); err != nil {
		b.metrics.HandlerErrors.WithLabelValues("send").Inc()
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := b.tg.Send(c); err != nil {
		b.metrics.HandlerErrors.WithLabelValues("send").Inc()
		zerolog.Ctx(ctx).Error().Err(err).Msg("send failed")
	}
}

// clearToAdminMenu drops any conversation state and shows the admin menu.
func (b *Bot) clearToAdminMenu(ctx context.Context, userID, chatID int64, text string) {
	if err := b.state.ClearState(ctx, userID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("clear state failed")
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = adminKeyboard()
	b.send(ctx, msg)
}
