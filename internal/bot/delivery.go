package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/database"
	"faylbot/internal/events"
	"faylbot/internal/models"
)

// gate enforces mandatory subscription. Returns true when the user may
// proceed; otherwise the join prompt has been sent.
func (b *Bot) gate(ctx context.Context, chatID, userID int64) bool {
	ok, err := b.subs.IsSubscribed(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("subscription check failed")
		b.reply(ctx, chatID, msgInternalError)
		return false
	}
	if ok {
		return true
	}

	b.metrics.SubscriptionDenied.Inc()
	channels, err := b.subs.Channels(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list channels failed")
		b.reply(ctx, chatID, msgInternalError)
		return false
	}

	out := tgbotapi.NewMessage(chatID, msgSubscribePrompt)
	out.ReplyMarkup = subscriptionKeyboard(channels)
	b.send(ctx, out)
	return false
}

// deliverFile resolves a numeric code and replays the stored media. The
// request is logged once the code resolves, before the replay attempt.
func (b *Bot) deliverFile(ctx context.Context, msg *tgbotapi.Message, code string) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if !b.users.IsAdmin(userID) && !b.gate(ctx, chatID, userID) {
		return
	}

	file, err := b.files.GetFile(ctx, code)
	if errors.Is(err, database.ErrFileNotFound) {
		b.reply(ctx, chatID, msgFileNotFound)
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("code", code).Msg("file lookup failed")
		b.reply(ctx, chatID, msgInternalError)
		return
	}

	if err := b.stats.LogRequest(ctx, userID, code); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("code", code).Msg("log request failed")
	}

	if !file.HasPayload() {
		b.reply(ctx, chatID, msgFileCorrupted)
		return
	}

	// link-only rows are replayed as plain text
	if file.FileID == "" {
		b.reply(ctx, chatID, fmt.Sprintf(msgLinkForCode, code, file.FileLink))
		b.deliveredOK(ctx, userID, code)
		return
	}

	caption := file.Caption
	if caption == "" {
		caption = fmt.Sprintf(msgFileCaption, code)
	}

	var out tgbotapi.Chattable
	media := tgbotapi.FileID(file.FileID)
	switch file.Kind {
	case models.KindDocument:
		c := tgbotapi.NewDocument(chatID, media)
		c.Caption = caption
		out = c
	case models.KindPhoto:
		c := tgbotapi.NewPhoto(chatID, media)
		c.Caption = caption
		out = c
	case models.KindVideo:
		c := tgbotapi.NewVideo(chatID, media)
		c.Caption = caption
		out = c
	case models.KindAudio:
		c := tgbotapi.NewAudio(chatID, media)
		c.Caption = caption
		out = c
	case models.KindAnimation:
		c := tgbotapi.NewAnimation(chatID, media)
		c.Caption = caption
		out = c
	case models.KindVoice:
		c := tgbotapi.NewVoice(chatID, media)
		c.Caption = caption
		out = c
	case models.KindSticker:
		out = tgbotapi.NewSticker(chatID, media)
	default:
		zerolog.Ctx(ctx).Error().Str("code", code).Str("kind", string(file.Kind)).Msg("stored file has unknown kind")
		b.reply(ctx, chatID, msgFileCorrupted)
		return
	}

	if _, err := b.tg.Send(out); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("code", code).Msg("file replay failed")
		b.reply(ctx, chatID, msgSendFailed)
		return
	}
	b.deliveredOK(ctx, userID, code)
}

func (b *Bot) deliveredOK(ctx context.Context, userID int64, code string) {
	b.metrics.FilesDelivered.Inc()
	b.bus.PublishJSON(ctx, events.TopicFileDelivered, map[string]interface{}{
		"user_id": userID,
		"code":    code,
	})
}
