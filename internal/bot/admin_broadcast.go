package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"faylbot/internal/broadcast"
	"faylbot/internal/events"
	"faylbot/internal/models"
)

// startBroadcastFlow puts the admin into the waiting step of the chosen
// broadcast kind.
func (b *Bot) startBroadcastFlow(ctx context.Context, chatID, userID int64, kind models.BroadcastKind) {
	step := models.StepBroadcastPrefix + string(kind)
	if err := b.state.SetStep(ctx, userID, step, nil); err != nil {
		b.reply(ctx, chatID, msgInternalError)
		return
	}

	var prompt string
	switch kind {
	case models.BroadcastText:
		prompt = msgAskBcText
	case models.BroadcastPhoto:
		prompt = msgAskBcPhoto
	case models.BroadcastVideo:
		prompt = msgAskBcVideo
	case models.BroadcastDocument:
		prompt = msgAskBcDocument
	case models.BroadcastAnimation:
		prompt = msgAskBcAnimation
	case models.BroadcastVoice:
		prompt = msgAskBcVoice
	case models.BroadcastLocation:
		prompt = msgAskBcLocation
	case models.BroadcastAudio:
		prompt = msgAskBcAudio
	}
	b.reply(ctx, chatID, prompt)
}

// handleBroadcastContent accepts the awaited payload and launches the mass
// send. A message of the wrong shape keeps the step active.
func (b *Bot) handleBroadcastContent(ctx context.Context, msg *tgbotapi.Message, kind models.BroadcastKind) {
	send, ok := b.broadcastSendFunc(ctx, msg, kind)
	if !ok {
		b.reply(ctx, msg.Chat.ID, msgBroadcastWrong)
		return
	}

	recipients, err := b.users.Recipients(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("load recipients failed")
		b.reply(ctx, msg.Chat.ID, msgInternalError)
		return
	}

	b.clearToAdminMenu(ctx, msg.From.ID, msg.Chat.ID, msgBroadcastStarted)

	chatID := msg.Chat.ID
	b.bg.Add(1)
	go func() {
		defer b.bg.Done()

		// a broadcast outlives the per-update deadline
		bctx := b.logger.WithContext(context.Background())
		report := b.engine.Run(bctx, recipients, send)

		b.metrics.BroadcastSends.WithLabelValues("delivered").Add(float64(report.Delivered))
		b.metrics.BroadcastSends.WithLabelValues("blocked").Add(float64(report.Blocked))
		b.metrics.BroadcastSends.WithLabelValues("failed").Add(float64(report.Failed))
		b.bus.PublishJSON(bctx, events.TopicBroadcastDone, report)

		if err := b.tg.SendMessage(chatID, fmt.Sprintf(msgBroadcastReport,
			report.Attempted, report.Delivered, report.Blocked, report.Failed)); err != nil {
			b.logger.Error().Err(err).Msg("broadcast report send failed")
		}
	}()
}

// broadcastSendFunc builds the per-recipient sender for the accepted
// payload, or reports that the message does not match the awaited kind.
func (b *Bot) broadcastSendFunc(ctx context.Context, msg *tgbotapi.Message, kind models.BroadcastKind) (broadcast.SendFunc, bool) {
	caption := msg.Caption

	switch kind {
	case models.BroadcastText:
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			return nil, false
		}
		return func(_ context.Context, userID int64) error {
			return b.tg.SendMessage(userID, text)
		}, true

	case models.BroadcastPhoto:
		fileID := ""
		switch {
		case len(msg.Photo) > 0:
			fileID = msg.Photo[len(msg.Photo)-1].FileID
		case msg.Document != nil && isImageDocument(msg.Document.FileName):
			id, err := b.documentToPhotoID(ctx, msg)
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("document to photo conversion failed")
				return nil, false
			}
			fileID = id
		default:
			return nil, false
		}
		return func(_ context.Context, userID int64) error {
			c := tgbotapi.NewPhoto(userID, tgbotapi.FileID(fileID))
			c.Caption = caption
			_, err := b.tg.Send(c)
			return err
		}, true

	case models.BroadcastVideo:
		if msg.Video == nil {
			return nil, false
		}
		fileID := msg.Video.FileID
		return func(_ context.Context, userID int64) error {
			c := tgbotapi.NewVideo(userID, tgbotapi.FileID(fileID))
			c.Caption = caption
			_, err := b.tg.Send(c)
			return err
		}, true

	case models.BroadcastDocument:
		if msg.Document == nil {
			return nil, false
		}
		fileID := msg.Document.FileID
		return func(_ context.Context, userID int64) error {
			c := tgbotapi.NewDocument(userID, tgbotapi.FileID(fileID))
			c.Caption = caption
			_, err := b.tg.Send(c)
			return err
		}, true

	case models.BroadcastAnimation:
		if msg.Animation == nil {
			return nil, false
		}
		fileID := msg.Animation.FileID
		return func(_ context.Context, userID int64) error {
			c := tgbotapi.NewAnimation(userID, tgbotapi.FileID(fileID))
			c.Caption = caption
			_, err := b.tg.Send(c)
			return err
		}, true

	case models.BroadcastVoice:
		if msg.Voice == nil {
			return nil, false
		}
		fileID := msg.Voice.FileID
		return func(_ context.Context, userID int64) error {
			c := tgbotapi.NewVoice(userID, tgbotapi.FileID(fileID))
			c.Caption = caption
			_, err := b.tg.Send(c)
			return err
		}, true

	case models.BroadcastLocation:
		if msg.Location == nil {
			return nil, false
		}
		lat, lon := msg.Location.Latitude, msg.Location.Longitude
		return func(_ context.Context, userID int64) error {
			_, err := b.tg.Send(tgbotapi.NewLocation(userID, lat, lon))
			return err
		}, true

	case models.BroadcastAudio:
		if msg.Audio == nil {
			return nil, false
		}
		fileID := msg.Audio.FileID
		return func(_ context.Context, userID int64) error {
			c := tgbotapi.NewAudio(userID, tgbotapi.FileID(fileID))
			c.Caption = caption
			_, err := b.tg.Send(c)
			return err
		}, true
	}
	return nil, false
}

func isImageDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// documentToPhotoID turns an image sent as a document into a real photo:
// download the file, re-upload it to the admin chat as a photo and reuse the
// resulting file id for the broadcast.
func (b *Bot) documentToPhotoID(ctx context.Context, msg *tgbotapi.Message) (string, error) {
	url, err := b.tg.GetFileDirectURL(msg.Document.FileID)
	if err != nil {
		return "", fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "bc_photo_*"+filepath.Ext(msg.Document.FileName))
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	sent, err := b.tg.Send(tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FilePath(tmp.Name())))
	if err != nil {
		return "", fmt.Errorf("upload as photo: %w", err)
	}
	if len(sent.Photo) == 0 {
		return "", fmt.Errorf("no photo in upload response")
	}
	return sent.Photo[len(sent.Photo)-1].FileID, nil
}
