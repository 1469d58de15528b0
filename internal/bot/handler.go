package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/models"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || !msg.Chat.IsPrivate() {
		return
	}
	userID := msg.From.ID
	isAdmin := b.users.IsAdmin(userID)

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, isAdmin)
		return
	}

	state, err := b.state.GetState(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("get state failed")
		state = nil
	}

	text := strings.TrimSpace(msg.Text)

	// Only admins ever enter stateful flows, but a stale row for a demoted
	// admin must not capture their messages.
	if state != nil && state.CurrentStep != "" {
		if !isAdmin {
			if err := b.state.ClearState(ctx, userID); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("clear state failed")
			}
		} else if b.dispatchStep(ctx, msg, state, text) {
			return
		}
	}

	if b.handleMenuButton(ctx, msg, text, isAdmin) {
		return
	}

	if isDigits(text) {
		b.deliverFile(ctx, msg, text)
		return
	}

	b.handleFallback(ctx, msg, isAdmin)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, isAdmin bool) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg, isAdmin)
	case "cancel":
		if isAdmin {
			b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgCancelled)
		} else {
			b.reply(ctx, msg.Chat.ID, msgNotAdmin)
		}
	case "help":
		b.reply(ctx, msg.Chat.ID, msgHelp)
	default:
		b.reply(ctx, msg.Chat.ID, msgDigitsHint)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, isAdmin bool) {
	user := &models.User{
		TelegramID:   msg.From.ID,
		FirstName:    msg.From.FirstName,
		LastName:     msg.From.LastName,
		Username:     msg.From.UserName,
		LanguageCode: msg.From.LanguageCode,
	}
	if err := b.users.RegisterUser(ctx, user); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("register user failed")
	}

	if err := b.state.ClearState(ctx, msg.From.ID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("clear state failed")
	}

	if isAdmin {
		out := tgbotapi.NewMessage(msg.Chat.ID, msgAdminWelcome)
		out.ReplyMarkup = adminKeyboard()
		b.send(ctx, out)
		return
	}

	if !b.gate(ctx, msg.Chat.ID, msg.From.ID) {
		return
	}
	b.reply(ctx, msg.Chat.ID, msgWelcome)
}

// dispatchStep routes a message by the active conversation step. Returns
// false when the step is unknown so the message falls through to the idle
// handlers.
func (b *Bot) dispatchStep(ctx context.Context, msg *tgbotapi.Message, state *models.UserState, text string) bool {
	if text == btnBack {
		b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgAdminWelcome)
		return true
	}

	step := state.CurrentStep
	switch {
	case step == models.StepUploadCode:
		b.handleUploadCode(ctx, msg, text)
	case step == models.StepUploadFile:
		b.handleUploadFile(ctx, msg, state)
	case step == models.StepDeleteCode:
		b.handleDeleteCode(ctx, msg, text)
	case step == models.StepChannelAdd:
		b.handleChannelAdd(ctx, msg, text)
	case step == models.StepChannelRemove:
		b.handleChannelRemove(ctx, msg, text)
	case step == models.StepStatsUser:
		b.handleStatsUser(ctx, msg, text)
	case step == models.StepStatsStart:
		b.handleStatsStart(ctx, msg, state, text)
	case step == models.StepStatsEnd:
		b.handleStatsEnd(ctx, msg, state, text)
	case strings.HasPrefix(step, models.StepBroadcastPrefix):
		kind := models.BroadcastKind(strings.TrimPrefix(step, models.StepBroadcastPrefix))
		if !kind.Valid() {
			zerolog.Ctx(ctx).Error().Str("step", step).Msg("unknown broadcast step")
			b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgInternalError)
			return true
		}
		b.handleBroadcastContent(ctx, msg, kind)
	default:
		zerolog.Ctx(ctx).Warn().Str("step", step).Msg("unknown conversation step")
		return false
	}
	return true
}

// handleMenuButton reacts to the reply-keyboard labels. Non-admins pressing
// an admin label get an explicit rejection.
func (b *Bot) handleMenuButton(ctx context.Context, msg *tgbotapi.Message, text string, isAdmin bool) bool {
	_, isBroadcastBtn := broadcastButtons[text]
	isMenuLabel := isBroadcastBtn
	switch text {
	case btnStats, btnExportUsers, btnUploadFile, btnDeleteFile, btnListFiles,
		btnBroadcast, btnChannels, btnBack,
		btnChannelAdd, btnChannelRemove, btnChannelList:
		isMenuLabel = true
	}
	if !isMenuLabel {
		return false
	}
	if !isAdmin {
		b.reply(ctx, msg.Chat.ID, msgNotAdmin)
		return true
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	if kind, ok := broadcastButtons[text]; ok {
		b.startBroadcastFlow(ctx, chatID, userID, kind)
		return true
	}

	switch text {
	case btnStats:
		b.handleStatsSummary(ctx, chatID, userID)
	case btnExportUsers:
		b.exportUsers(ctx, chatID)
	case btnUploadFile:
		if err := b.state.SetStep(ctx, userID, models.StepUploadCode, nil); err != nil {
			b.reply(ctx, chatID, msgInternalError)
			return true
		}
		b.reply(ctx, chatID, msgAskCode)
	case btnDeleteFile:
		if err := b.state.SetStep(ctx, userID, models.StepDeleteCode, nil); err != nil {
			b.reply(ctx, chatID, msgInternalError)
			return true
		}
		b.reply(ctx, chatID, msgAskDeleteCode)
	case btnListFiles:
		out := tgbotapi.NewMessage(chatID, msgFileListMenu)
		out.ReplyMarkup = fileKindKeyboard()
		b.send(ctx, out)
	case btnBroadcast:
		out := tgbotapi.NewMessage(chatID, msgBroadcastMenu)
		out.ReplyMarkup = broadcastKeyboard()
		b.send(ctx, out)
	case btnChannels:
		out := tgbotapi.NewMessage(chatID, msgChannelMenu)
		out.ReplyMarkup = channelKeyboard()
		b.send(ctx, out)
	case btnChannelAdd:
		if err := b.state.SetStep(ctx, userID, models.StepChannelAdd, nil); err != nil {
			b.reply(ctx, chatID, msgInternalError)
			return true
		}
		b.reply(ctx, chatID, msgAskChannelAdd)
	case btnChannelRemove:
		if err := b.state.SetStep(ctx, userID, models.StepChannelRemove, nil); err != nil {
			b.reply(ctx, chatID, msgInternalError)
			return true
		}
		b.reply(ctx, chatID, msgAskChannelRemove)
	case btnChannelList:
		b.handleChannelList(ctx, chatID)
	case btnBack:
		b.clearToAdminMenu(ctx, userID, chatID, msgAdminWelcome)
	}
	return true
}

// handleFallback answers anything that matched nothing else.
func (b *Bot) handleFallback(ctx context.Context, msg *tgbotapi.Message, isAdmin bool) {
	if isAdmin {
		b.reply(ctx, msg.Chat.ID, msgDigitsHint)
		return
	}
	if !b.gate(ctx, msg.Chat.ID, msg.From.ID) {
		return
	}
	b.reply(ctx, msg.Chat.ID, msgDigitsHint)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
