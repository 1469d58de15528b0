package bot

import (
	"context"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faylbot/internal/models"
)

func callbackFrom(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: userID, LanguageCode: "uz"},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 10,
			Chat:      &tgbotapi.Chat{ID: userID, Type: "private"},
		},
	}
}

func (e *testEnv) callback(cb *tgbotapi.CallbackQuery) {
	e.bot.handleCallback(context.Background(), cb)
}

func TestParsePageCallback(t *testing.T) {
	kind, page, ok := parsePageCallback("page_all_2")
	require.True(t, ok)
	assert.Equal(t, "all", kind)
	assert.Equal(t, 2, page)

	kind, page, ok = parsePageCallback("page_photo_0")
	require.True(t, ok)
	assert.Equal(t, "photo", kind)
	assert.Equal(t, 0, page)

	_, _, ok = parsePageCallback("page_photo")
	assert.False(t, ok)

	_, _, ok = parsePageCallback("page_photo_x")
	assert.False(t, ok)

	_, _, ok = parsePageCallback("page_photo_-1")
	assert.False(t, ok)
}

func TestCheckSubscriptionPasses(t *testing.T) {
	env := newTestBot(t, adminID)
	require.NoError(t, env.db.AddChannel(context.Background(), "mychannel"))
	env.tg.memberStatus["@mychannel"] = "member"

	env.callback(callbackFrom(userID, models.CallbackCheckSubscription))

	assert.Equal(t, msgSubChecked, env.tg.lastText())
}

func TestCheckSubscriptionStillFails(t *testing.T) {
	env := newTestBot(t, adminID)
	require.NoError(t, env.db.AddChannel(context.Background(), "mychannel"))

	env.callback(callbackFrom(userID, models.CallbackCheckSubscription))

	// no chat message, only the alert answer
	assert.Empty(t, env.tg.sentTexts())
	env.tg.mu.Lock()
	defer env.tg.mu.Unlock()
	require.Len(t, env.tg.requested, 1)
	answer, ok := env.tg.requested[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.True(t, answer.ShowAlert)
	assert.Equal(t, subscriptionWarnings["uz"], answer.Text)
}

func TestFileListCallbacks(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, env.db.CreateFile(ctx, &models.StoredFile{
			Code: fmt.Sprintf("%d", 100+i), FileID: "x", Kind: models.KindDocument,
		}))
	}

	env.callback(callbackFrom(adminID, models.CallbackFilterPrefix+"document"))

	env.tg.mu.Lock()
	last := env.tg.sent[len(env.tg.sent)-1]
	env.tg.mu.Unlock()
	edit, ok := last.(tgbotapi.EditMessageTextConfig)
	require.True(t, ok, "expected an edit, got %T", last)
	assert.Contains(t, edit.Text, "114")
	assert.NotContains(t, edit.Text, "104", "second page codes are not on page one")

	env.callback(callbackFrom(adminID, models.CallbackPagePrefix+"document_1"))

	env.tg.mu.Lock()
	last = env.tg.sent[len(env.tg.sent)-1]
	env.tg.mu.Unlock()
	edit, ok = last.(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "104")
}

func TestFileListEmptyKind(t *testing.T) {
	env := newTestBot(t, adminID)

	env.callback(callbackFrom(adminID, models.CallbackFilterPrefix+"voice"))

	env.tg.mu.Lock()
	last := env.tg.sent[len(env.tg.sent)-1]
	env.tg.mu.Unlock()
	edit, ok := last.(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, msgFileListEmpty, edit.Text)
}

func TestCallbacksRequireAdmin(t *testing.T) {
	env := newTestBot(t, adminID)

	env.callback(callbackFrom(userID, models.CallbackFilterPrefix+"all"))

	assert.Empty(t, env.tg.sentTexts())
	env.tg.mu.Lock()
	defer env.tg.mu.Unlock()
	require.Len(t, env.tg.requested, 1)
	answer, ok := env.tg.requested[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.Equal(t, msgNotAdmin, answer.Text)
}
