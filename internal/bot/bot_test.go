package bot

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"faylbot/internal/broadcast"
	"faylbot/internal/config"
	"faylbot/internal/database"
	"faylbot/internal/events"
	"faylbot/internal/metrics"
	"faylbot/internal/repository"
	"faylbot/internal/service"
)

// promauto registers on the default registry; one instance for the package.
var (
	testMetrics     *metrics.Metrics
	testMetricsOnce sync.Once
)

type mockTG struct {
	mu           sync.Mutex
	sent         []tgbotapi.Chattable
	requested    []tgbotapi.Chattable
	sendErr      error
	memberStatus map[string]string // "@handle" -> status
}

func (m *mockTG) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
	return tgbotapi.Message{MessageID: len(m.sent)}, m.sendErr
}

func (m *mockTG) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = append(m.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *mockTG) SendMessage(chatID int64, text string) error {
	_, err := m.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (m *mockTG) GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.memberStatus[config.SuperGroupUsername]
	if !ok {
		status = "left"
	}
	return tgbotapi.ChatMember{Status: status}, nil
}

func (m *mockTG) GetFileDirectURL(string) (string, error) { return "", nil }
func (m *mockTG) GetSelf() tgbotapi.User                  { return tgbotapi.User{UserName: "faylbot_test"} }

func (m *mockTG) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return nil }
func (m *mockTG) StopReceivingUpdates()                                        {}

func (m *mockTG) sentTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var texts []string
	for _, c := range m.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

func (m *mockTG) lastText() string {
	texts := m.sentTexts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (m *mockTG) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.requested = nil
}

type testEnv struct {
	bot *Bot
	tg  *mockTG
	db  *database.DB
}

func newTestBot(t *testing.T, admins ...int64) *testEnv {
	t.Helper()
	testMetricsOnce.Do(func() { testMetrics = metrics.New() })

	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewBus(&logger)
	tg := &mockTG{memberStatus: map[string]string{}}

	users := service.NewUserService(db, admins, bus, &logger)
	files := service.NewFileService(db, bus, &logger)
	channels := service.NewChannelService(db, &logger)
	subs := service.NewSubscriptionService(channels, tg, users.IsAdmin, &logger)
	stats := service.NewStatsService(db, &logger)
	state := service.NewStateService(repository.NewMemoryStateRepository(), 1000, time.Minute, &logger)
	engine := broadcast.NewEngine(2, 100, 0, 0, &logger)

	cfg := &config.Config{Admins: admins}
	cfg.Bot.PaginationSize = 10
	cfg.Exports.Path = t.TempDir()

	b := New(cfg, Deps{
		Telegram:      tg,
		Users:         users,
		Files:         files,
		Channels:      channels,
		Subscriptions: subs,
		Stats:         stats,
		State:         state,
		Engine:        engine,
		Bus:           bus,
		Metrics:       testMetrics,
	}, logger)

	return &testEnv{bot: b, tg: tg, db: db}
}

func userMsg(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, FirstName: "Test", LanguageCode: "uz"},
		Chat:      &tgbotapi.Chat{ID: userID, Type: "private"},
		Text:      text,
	}
}

func cmdMsg(userID int64, cmd string) *tgbotapi.Message {
	m := userMsg(userID, cmd)
	m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	return m
}

func (e *testEnv) handle(msg *tgbotapi.Message) {
	e.bot.handleMessage(context.Background(), msg)
}
