package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/models"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil {
		return
	}
	data := cb.Data
	isAdmin := b.users.IsAdmin(cb.From.ID)

	switch {
	case data == models.CallbackCheckSubscription:
		b.handleCheckSubscription(ctx, cb)

	case data == models.CallbackBackToMenu:
		if !isAdmin {
			b.answerCallback(ctx, cb.ID, msgNotAdmin)
			return
		}
		b.answerCallback(ctx, cb.ID, "")
		if cb.Message != nil {
			edit := tgbotapi.NewEditMessageTextAndMarkup(
				cb.Message.Chat.ID, cb.Message.MessageID, msgFileListMenu, fileKindKeyboard())
			b.send(ctx, edit)
		}

	case strings.HasPrefix(data, models.CallbackFilterPrefix):
		if !isAdmin {
			b.answerCallback(ctx, cb.ID, msgNotAdmin)
			return
		}
		b.answerCallback(ctx, cb.ID, "")
		b.showFileList(ctx, cb, strings.TrimPrefix(data, models.CallbackFilterPrefix), 0)

	case strings.HasPrefix(data, models.CallbackPagePrefix):
		if !isAdmin {
			b.answerCallback(ctx, cb.ID, msgNotAdmin)
			return
		}
		kindToken, page, ok := parsePageCallback(data)
		b.answerCallback(ctx, cb.ID, "")
		if ok {
			b.showFileList(ctx, cb, kindToken, page)
		}

	case strings.HasPrefix(data, models.CallbackExportStats):
		if !isAdmin {
			b.answerCallback(ctx, cb.ID, msgNotAdmin)
			return
		}
		b.answerCallback(ctx, cb.ID, "")
		b.handleExportStats(ctx, cb, strings.TrimPrefix(data, models.CallbackExportStats))

	case data == "noop":
		b.answerCallback(ctx, cb.ID, "")

	default:
		zerolog.Ctx(ctx).Warn().Str("data", data).Msg("unknown callback")
		b.answerCallback(ctx, cb.ID, "")
	}
}

func (b *Bot) answerCallback(ctx context.Context, callbackID, text string) {
	if _, err := b.tg.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("answer callback failed")
	}
}

// handleCheckSubscription re-runs the gate when the user claims to have
// joined. Success removes the prompt; failure shows a localized alert.
func (b *Bot) handleCheckSubscription(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	ok, err := b.subs.IsSubscribed(ctx, cb.From.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("subscription re-check failed")
		b.answerCallback(ctx, cb.ID, msgInternalError)
		return
	}

	if !ok {
		alert := tgbotapi.NewCallbackWithAlert(cb.ID, subscriptionWarning(cb.From.LanguageCode))
		if _, err := b.tg.Request(alert); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("answer callback failed")
		}
		return
	}

	b.answerCallback(ctx, cb.ID, "")
	if cb.Message != nil {
		if _, err := b.tg.Request(tgbotapi.NewDeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID)); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("delete prompt failed")
		}
		b.reply(ctx, cb.Message.Chat.ID, msgSubChecked)
	}
}

// handleExportStats builds and sends the per-user xlsx report named by the
// callback payload: "<user_id>_<start_token>_<end_token>".
func (b *Bot) handleExportStats(ctx context.Context, cb *tgbotapi.CallbackQuery, payload string) {
	if cb.Message == nil {
		return
	}
	parts := strings.SplitN(payload, "_", 3)
	if len(parts) != 3 {
		zerolog.Ctx(ctx).Warn().Str("payload", payload).Msg("malformed export callback")
		return
	}

	target, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Str("payload", payload).Msg("malformed export user id")
		return
	}
	start, err := resolveFilterTime(parts[1], false)
	if err != nil {
		b.reply(ctx, cb.Message.Chat.ID, msgBadDateFilter)
		return
	}
	end, err := resolveFilterTime(parts[2], true)
	if err != nil {
		b.reply(ctx, cb.Message.Chat.ID, msgBadDateFilter)
		return
	}

	b.exportUserStats(ctx, cb.Message.Chat.ID, target, start, end)
}

func parsePageCallback(data string) (kindToken string, page int, ok bool) {
	rest := strings.TrimPrefix(data, models.CallbackPagePrefix)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 0 {
		return "", 0, false
	}
	return parts[0], page, true
}
