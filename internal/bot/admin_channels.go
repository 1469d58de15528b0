package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/database"
)

func normalizeHandle(text string) string {
	return strings.TrimPrefix(strings.TrimSpace(text), "@")
}

func (b *Bot) handleChannelAdd(ctx context.Context, msg *tgbotapi.Message, text string) {
	text = strings.TrimSpace(text)
	// the handle must be given with "@"; anything else re-prompts
	if !strings.HasPrefix(text, "@") || len(text) == 1 {
		b.reply(ctx, msg.Chat.ID, msgChannelNeedAt)
		return
	}
	handle := strings.TrimPrefix(text, "@")

	err := b.channels.AddChannel(ctx, handle)
	if errors.Is(err, database.ErrChannelExists) {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf(msgChannelExists, handle))
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("channel", handle).Msg("add channel failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}

	if err := b.state.ClearState(ctx, msg.From.ID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("clear state failed")
	}
	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(msgChannelAdded, handle))
	out.ReplyMarkup = channelKeyboard()
	b.send(ctx, out)
}

func (b *Bot) handleChannelRemove(ctx context.Context, msg *tgbotapi.Message, text string) {
	handle := normalizeHandle(text)
	if handle == "" {
		b.reply(ctx, msg.Chat.ID, msgAskChannelRemove)
		return
	}

	err := b.channels.RemoveChannel(ctx, handle)
	if errors.Is(err, database.ErrChannelNotFound) {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf(msgChannelNotFound, handle))
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("channel", handle).Msg("remove channel failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}

	if err := b.state.ClearState(ctx, msg.From.ID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("clear state failed")
	}
	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(msgChannelRemoved, handle))
	out.ReplyMarkup = channelKeyboard()
	b.send(ctx, out)
}

func (b *Bot) handleChannelList(ctx context.Context, chatID int64) {
	channels, err := b.channels.ListChannels(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list channels failed")
		b.reply(ctx, chatID, msgInternalError)
		return
	}
	if len(channels) == 0 {
		b.reply(ctx, chatID, msgChannelListEmpty)
		return
	}

	var sb strings.Builder
	sb.WriteString(msgChannelListHead)
	for i, handle := range channels {
		fmt.Fprintf(&sb, "\n%d. @%s", i+1, handle)
	}
	b.reply(ctx, chatID, sb.String())
}
