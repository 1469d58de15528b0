package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/models"
)

// handleStatsSummary shows the global snapshot and opens the per-user flow.
func (b *Bot) handleStatsSummary(ctx context.Context, chatID, userID int64) {
	summary, err := b.stats.Summary(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("stats summary failed")
		b.reply(ctx, chatID, msgInternalError)
		return
	}
	b.reply(ctx, chatID, fmt.Sprintf(msgStatsSummary,
		summary.TotalUsers, summary.TotalFiles, summary.RequestsToday))

	if err := b.state.SetStep(ctx, userID, models.StepStatsUser, nil); err != nil {
		b.reply(ctx, chatID, msgInternalError)
		return
	}
	b.reply(ctx, chatID, msgAskStatsUser)
}

func (b *Bot) handleStatsUser(ctx context.Context, msg *tgbotapi.Message, text string) {
	target, err := strconv.ParseInt(text, 10, 64)
	if err != nil || target <= 0 {
		b.reply(ctx, msg.Chat.ID, msgBadUserID)
		return
	}

	err = b.state.SetStep(ctx, msg.From.ID, models.StepStatsStart,
		map[string]interface{}{"stats_user": target})
	if err != nil {
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}
	b.reply(ctx, msg.Chat.ID, msgAskStatsStart)
}

func (b *Bot) handleStatsStart(ctx context.Context, msg *tgbotapi.Message, state *models.UserState, text string) {
	if _, err := resolveFilterTime(text, false); err != nil {
		b.reply(ctx, msg.Chat.ID, msgBadDateFilter)
		return
	}

	err := b.state.SetStep(ctx, msg.From.ID, models.StepStatsEnd, map[string]interface{}{
		"stats_user":  state.GetInt64("stats_user"),
		"start_token": text,
	})
	if err != nil {
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}
	b.reply(ctx, msg.Chat.ID, msgAskStatsEnd)
}

func (b *Bot) handleStatsEnd(ctx context.Context, msg *tgbotapi.Message, state *models.UserState, text string) {
	end, err := resolveFilterTime(text, true)
	if err != nil {
		b.reply(ctx, msg.Chat.ID, msgBadDateFilter)
		return
	}

	target := state.GetInt64("stats_user")
	startToken := state.GetString("start_token")
	start, err := resolveFilterTime(startToken, false)
	if err != nil || target == 0 {
		b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgInternalError)
		return
	}

	count, err := b.stats.CountUserRequests(ctx, target, start, end)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("target", target).Msg("count user requests failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}

	if err := b.state.ClearState(ctx, msg.From.ID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("clear state failed")
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(msgUserStats, target, count))
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnExportStats,
				fmt.Sprintf("%s%d_%s_%s", models.CallbackExportStats, target, startToken, text)),
		),
	)
	b.send(ctx, out)
}
