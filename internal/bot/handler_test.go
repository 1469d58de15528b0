package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faylbot/internal/database"
	"faylbot/internal/models"
)

const (
	adminID = int64(100)
	userID  = int64(200)
)

func TestStartAdmin(t *testing.T) {
	env := newTestBot(t, adminID)

	env.handle(cmdMsg(adminID, "/start"))

	assert.Equal(t, msgAdminWelcome, env.tg.lastText())

	// admin is registered as a user too
	u, err := env.db.GetUserByTelegramID(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, adminID, u.TelegramID)
}

func TestStartUserNoChannels(t *testing.T) {
	env := newTestBot(t, adminID)

	env.handle(cmdMsg(userID, "/start"))

	assert.Equal(t, msgWelcome, env.tg.lastText())
}

func TestStartUserGated(t *testing.T) {
	env := newTestBot(t, adminID)
	require.NoError(t, env.db.AddChannel(context.Background(), "mychannel"))

	env.handle(cmdMsg(userID, "/start"))

	assert.Equal(t, msgSubscribePrompt, env.tg.lastText())
}

func TestNonAdminMenuButtonRejected(t *testing.T) {
	env := newTestBot(t, adminID)

	for _, label := range []string{btnStats, btnUploadFile, btnBroadcast, btnChannels, btnBcText} {
		env.tg.reset()
		env.handle(userMsg(userID, label))
		assert.Equal(t, msgNotAdmin, env.tg.lastText(), "label %s", label)
	}
}

func TestCancelNonAdmin(t *testing.T) {
	env := newTestBot(t, adminID)

	env.handle(cmdMsg(userID, "/cancel"))

	assert.Equal(t, msgNotAdmin, env.tg.lastText())
}

func TestUploadFlow(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	env.handle(userMsg(adminID, btnUploadFile))
	assert.Equal(t, msgAskCode, env.tg.lastText())

	env.handle(userMsg(adminID, "not-a-number"))
	assert.Equal(t, msgBadCode, env.tg.lastText())

	env.handle(userMsg(adminID, "55"))
	assert.Equal(t, msgAskFile, env.tg.lastText())

	// wrong payload keeps the step active
	env.handle(userMsg(adminID, "just text"))
	assert.Equal(t, msgWrongFile, env.tg.lastText())

	doc := userMsg(adminID, "")
	doc.Document = &tgbotapi.Document{FileID: "DOC123", FileName: "report.pdf"}
	doc.Caption = "yearly report"
	env.handle(doc)
	assert.Equal(t, fmt.Sprintf(msgFileSaved, "55"), env.tg.lastText())

	file, err := env.db.GetFileByCode(ctx, "55")
	require.NoError(t, err)
	assert.Equal(t, models.KindDocument, file.Kind)
	assert.Equal(t, "DOC123", file.FileID)
	assert.Equal(t, "yearly report", file.Caption)

	// state is cleared, the same digits now resolve as a delivery request
	state, err := env.bot.state.GetState(ctx, adminID)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestUploadDuplicateCode(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	require.NoError(t, env.db.CreateFile(ctx, &models.StoredFile{
		Code: "7", FileID: "x", Kind: models.KindPhoto,
	}))

	env.handle(userMsg(adminID, btnUploadFile))
	env.handle(userMsg(adminID, "7"))

	assert.Equal(t, fmt.Sprintf(msgCodeExists, "7"), env.tg.lastText())
}

func TestDeleteFlow(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	require.NoError(t, env.db.CreateFile(ctx, &models.StoredFile{
		Code: "9", FileID: "x", Kind: models.KindVideo,
	}))

	env.handle(userMsg(adminID, btnDeleteFile))
	assert.Equal(t, msgAskDeleteCode, env.tg.lastText())

	env.handle(userMsg(adminID, "9"))
	assert.Equal(t, fmt.Sprintf(msgFileDeleted, "9"), env.tg.lastText())

	_, err := env.db.GetFileByCode(ctx, "9")
	assert.ErrorIs(t, err, database.ErrFileNotFound)
}

func TestDeliveryUnknownCode(t *testing.T) {
	env := newTestBot(t, adminID)

	env.handle(userMsg(userID, "404"))

	assert.Equal(t, msgFileNotFound, env.tg.lastText())
}

func TestDeliveryDocument(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	require.NoError(t, env.db.CreateFile(ctx, &models.StoredFile{
		Code: "12", FileID: "DOC", Kind: models.KindDocument, Caption: "hello",
	}))

	env.handle(userMsg(userID, "12"))

	env.tg.mu.Lock()
	last := env.tg.sent[len(env.tg.sent)-1]
	env.tg.mu.Unlock()
	doc, ok := last.(tgbotapi.DocumentConfig)
	require.True(t, ok, "expected a document send, got %T", last)
	assert.Equal(t, "hello", doc.Caption)

	// the request is logged
	count, err := env.db.CountUserRequests(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeliveryLinkOnlyRow(t *testing.T) {
	env := newTestBot(t, adminID)

	require.NoError(t, env.db.CreateFile(context.Background(), &models.StoredFile{
		Code: "33", FileLink: "https://example.com/f.zip", Kind: models.KindDocument,
	}))

	env.handle(userMsg(userID, "33"))

	assert.Equal(t, fmt.Sprintf(msgLinkForCode, "33", "https://example.com/f.zip"), env.tg.lastText())
}

func TestDeliveryCorruptedRow(t *testing.T) {
	env := newTestBot(t, adminID)

	require.NoError(t, env.db.CreateFile(context.Background(), &models.StoredFile{
		Code: "44", Kind: models.KindDocument,
	}))

	env.handle(userMsg(userID, "44"))

	assert.Equal(t, msgFileCorrupted, env.tg.lastText())
}

func TestDeliveryGated(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	require.NoError(t, env.db.AddChannel(ctx, "mychannel"))
	require.NoError(t, env.db.CreateFile(ctx, &models.StoredFile{
		Code: "1", FileID: "x", Kind: models.KindDocument,
	}))

	env.handle(userMsg(userID, "1"))
	assert.Equal(t, msgSubscribePrompt, env.tg.lastText())

	// nothing logged while the gate is closed
	count, err := env.db.CountUserRequests(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// after joining, delivery works
	env.tg.memberStatus["@mychannel"] = "member"
	env.tg.reset()
	env.handle(userMsg(userID, "1"))

	env.tg.mu.Lock()
	last := env.tg.sent[len(env.tg.sent)-1]
	env.tg.mu.Unlock()
	_, ok := last.(tgbotapi.DocumentConfig)
	assert.True(t, ok, "expected a document send, got %T", last)
}

func TestDeliveryAdminBypassesGate(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	require.NoError(t, env.db.AddChannel(ctx, "mychannel"))
	require.NoError(t, env.db.CreateFile(ctx, &models.StoredFile{
		Code: "2", FileID: "x", Kind: models.KindPhoto,
	}))

	env.handle(userMsg(adminID, "2"))

	env.tg.mu.Lock()
	last := env.tg.sent[len(env.tg.sent)-1]
	env.tg.mu.Unlock()
	_, ok := last.(tgbotapi.PhotoConfig)
	assert.True(t, ok, "expected a photo send, got %T", last)
}

func TestChannelFlow(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	env.handle(userMsg(adminID, btnChannelAdd))
	assert.Equal(t, msgAskChannelAdd, env.tg.lastText())

	env.handle(userMsg(adminID, "@newchannel"))
	assert.Equal(t, fmt.Sprintf(msgChannelAdded, "newchannel"), env.tg.lastText())

	channels, err := env.db.GetChannels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newchannel"}, channels)

	env.handle(userMsg(adminID, btnChannelList))
	assert.Contains(t, env.tg.lastText(), "@newchannel")

	env.handle(userMsg(adminID, btnChannelRemove))
	env.handle(userMsg(adminID, "newchannel"))
	assert.Equal(t, fmt.Sprintf(msgChannelRemoved, "newchannel"), env.tg.lastText())

	channels, err = env.db.GetChannels(ctx)
	require.NoError(t, err)
	assert.Empty(t, channels)
}

func TestChannelAddRequiresAtPrefix(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	env.handle(userMsg(adminID, btnChannelAdd))
	env.handle(userMsg(adminID, "plainhandle"))
	assert.Equal(t, msgChannelNeedAt, env.tg.lastText())

	channels, err := env.db.GetChannels(ctx)
	require.NoError(t, err)
	assert.Empty(t, channels)

	// the step stays active, a proper handle still goes through
	env.handle(userMsg(adminID, "@plainhandle"))
	assert.Equal(t, fmt.Sprintf(msgChannelAdded, "plainhandle"), env.tg.lastText())

	channels, err = env.db.GetChannels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plainhandle"}, channels)
}

func TestBroadcastTextFlow(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	// three recipients
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, env.db.CreateUserIfAbsent(ctx, &models.User{TelegramID: id}))
	}

	env.handle(userMsg(adminID, btnBcText))
	assert.Equal(t, msgAskBcText, env.tg.lastText())

	env.handle(userMsg(adminID, "salom hammaga"))
	env.bot.bg.Wait()

	texts := env.tg.sentTexts()
	broadcastCount := 0
	for _, text := range texts {
		if text == "salom hammaga" {
			broadcastCount++
		}
	}
	assert.Equal(t, 3, broadcastCount)
	assert.Contains(t, texts[len(texts)-1], "Reklama yakunlandi")
}

func TestBroadcastWrongContent(t *testing.T) {
	env := newTestBot(t, adminID)

	env.handle(userMsg(adminID, btnBcPhoto))
	env.handle(userMsg(adminID, "this is not a photo"))

	assert.Equal(t, msgBroadcastWrong, env.tg.lastText())
}

func TestStatsFlow(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	require.NoError(t, env.db.CreateUserIfAbsent(ctx, &models.User{TelegramID: userID}))
	require.NoError(t, env.db.LogFileRequest(ctx, userID, "5"))
	require.NoError(t, env.db.LogFileRequest(ctx, userID, "6"))

	env.handle(userMsg(adminID, btnStats))
	assert.Equal(t, msgAskStatsUser, env.tg.lastText())

	env.handle(userMsg(adminID, "abc"))
	assert.Equal(t, msgBadUserID, env.tg.lastText())

	env.handle(userMsg(adminID, fmt.Sprintf("%d", userID)))
	assert.Equal(t, msgAskStatsStart, env.tg.lastText())

	env.handle(userMsg(adminID, "nonsense"))
	assert.Equal(t, msgBadDateFilter, env.tg.lastText())

	env.handle(userMsg(adminID, "all"))
	assert.Equal(t, msgAskStatsEnd, env.tg.lastText())

	env.handle(userMsg(adminID, "all"))
	assert.Equal(t, fmt.Sprintf(msgUserStats, userID, 2), env.tg.lastText())
}

func TestBackButtonLeavesFlow(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	env.handle(userMsg(adminID, btnUploadFile))
	env.handle(userMsg(adminID, btnBack))

	state, err := env.bot.state.GetState(ctx, adminID)
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.Equal(t, msgAdminWelcome, env.tg.lastText())
}

func TestStaleStateClearedForNonAdmin(t *testing.T) {
	env := newTestBot(t, adminID)
	ctx := context.Background()

	// a leftover state row must not capture a plain user's messages
	require.NoError(t, env.bot.state.SetStep(ctx, userID, models.StepUploadCode, nil))

	env.handle(userMsg(userID, "hello"))
	assert.Equal(t, msgDigitsHint, env.tg.lastText())

	state, err := env.bot.state.GetState(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("123"))
	assert.True(t, isDigits("0"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("12a"))
	assert.False(t, isDigits("-5"))
	assert.False(t, isDigits("1 2"))
}
