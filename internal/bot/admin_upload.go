package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/database"
	"faylbot/internal/models"
)

// handleUploadCode validates the requested code and advances to the file
// step. Invalid input keeps the step active.
func (b *Bot) handleUploadCode(ctx context.Context, msg *tgbotapi.Message, text string) {
	if !isDigits(text) {
		b.reply(ctx, msg.Chat.ID, msgBadCode)
		return
	}

	exists, err := b.files.CodeExists(ctx, text)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("code check failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}
	if exists {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf(msgCodeExists, text))
		return
	}

	err = b.state.SetStep(ctx, msg.From.ID, models.StepUploadFile,
		map[string]interface{}{"file_code": text})
	if err != nil {
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}
	b.reply(ctx, msg.Chat.ID, msgAskFile)
}

// handleUploadFile stores the received media under the previously chosen
// code. The code is re-checked at save time; a clash sends the admin back to
// the code step.
func (b *Bot) handleUploadFile(ctx context.Context, msg *tgbotapi.Message, state *models.UserState) {
	code := state.GetString("file_code")
	if code == "" {
		b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgInternalError)
		return
	}

	file, ok := extractMedia(msg)
	if !ok {
		b.reply(ctx, msg.Chat.ID, msgWrongFile)
		return
	}
	file.Code = code

	if err := b.files.SaveFile(ctx, file); err != nil {
		if errors.Is(err, database.ErrCodeExists) {
			if serr := b.state.SetStep(ctx, msg.From.ID, models.StepUploadCode, nil); serr != nil {
				b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgInternalError)
				return
			}
			b.reply(ctx, msg.Chat.ID, fmt.Sprintf(msgCodeExists, code))
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("code", code).Msg("save file failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}

	b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, fmt.Sprintf(msgFileSaved, code))
}

func (b *Bot) handleDeleteCode(ctx context.Context, msg *tgbotapi.Message, text string) {
	if !isDigits(text) {
		b.reply(ctx, msg.Chat.ID, msgBadCode)
		return
	}

	err := b.files.DeleteFile(ctx, text)
	if errors.Is(err, database.ErrFileNotFound) {
		b.reply(ctx, msg.Chat.ID, msgFileNotFound)
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("code", text).Msg("delete file failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}

	b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, fmt.Sprintf(msgFileDeleted, text))
}

// extractMedia pulls the storable payload out of an admin message. A plain
// http(s) URL is stored as a link-only row.
func extractMedia(msg *tgbotapi.Message) (*models.StoredFile, bool) {
	switch {
	case msg.Animation != nil:
		// animations also carry a Document; check first
		return &models.StoredFile{Kind: models.KindAnimation, FileID: msg.Animation.FileID, Caption: msg.Caption}, true
	case msg.Document != nil:
		return &models.StoredFile{Kind: models.KindDocument, FileID: msg.Document.FileID, Caption: msg.Caption}, true
	case len(msg.Photo) > 0:
		// the last size is the largest
		return &models.StoredFile{Kind: models.KindPhoto, FileID: msg.Photo[len(msg.Photo)-1].FileID, Caption: msg.Caption}, true
	case msg.Video != nil:
		return &models.StoredFile{Kind: models.KindVideo, FileID: msg.Video.FileID, Caption: msg.Caption}, true
	case msg.Audio != nil:
		return &models.StoredFile{Kind: models.KindAudio, FileID: msg.Audio.FileID, Caption: msg.Caption}, true
	case msg.Voice != nil:
		return &models.StoredFile{Kind: models.KindVoice, FileID: msg.Voice.FileID, Caption: msg.Caption}, true
	case msg.Sticker != nil:
		return &models.StoredFile{Kind: models.KindSticker, FileID: msg.Sticker.FileID}, true
	}

	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return &models.StoredFile{Kind: models.KindDocument, FileLink: text}, true
	}
	return nil, false
}
