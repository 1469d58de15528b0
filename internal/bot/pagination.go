package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/models"
)

// showFileList renders one page of the stored-file list in place of the
// callback's message. kindToken is a media kind or "all".
func (b *Bot) showFileList(ctx context.Context, cb *tgbotapi.CallbackQuery, kindToken string, page int) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	var kind models.MediaKind
	if kindToken != "all" {
		parsed, err := models.ParseMediaKind(kindToken)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Str("token", kindToken).Msg("unknown file filter")
			return
		}
		kind = parsed
	}

	count, err := b.files.CountFiles(ctx, kind)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("count files failed")
		return
	}

	backRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBack, models.CallbackBackToMenu))

	if count == 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
			msgFileListEmpty, tgbotapi.NewInlineKeyboardMarkup(backRow))
		b.send(ctx, edit)
		return
	}

	size := b.cfg.Bot.PaginationSize
	totalPages := (count + size - 1) / size
	if page >= totalPages {
		page = totalPages - 1
	}

	files, err := b.files.ListFiles(ctx, kind, page*size, size)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list files failed")
		return
	}

	var sb strings.Builder
	title := "📦 Hammasi"
	if kind != "" {
		title = kindLabels[kind]
	}
	fmt.Fprintf(&sb, "%s (%d ta fayl):\n", title, count)
	for _, f := range files {
		fmt.Fprintf(&sb, "\n🔑 %s — %s (%s)", f.Code, kindLabels[f.Kind], f.UploadedAt.Format("02.01.2006"))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️",
			fmt.Sprintf("%s%s_%d", models.CallbackPagePrefix, kindToken, page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d/%d", page+1, totalPages), "noop"))
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️",
			fmt.Sprintf("%s%s_%d", models.CallbackPagePrefix, kindToken, page+1)))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(nav...), backRow)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, sb.String(), kb)
	b.send(ctx, edit)
}
