package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"faylbot/internal/models"
)

// exportUsers sends the full user list as an xlsx document. The file is
// written under the exports directory and removed after sending.
func (b *Bot) exportUsers(ctx context.Context, chatID int64) {
	users, err := b.users.GetAllUsers(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("load users for export failed")
		b.reply(ctx, chatID, msgExportFailed)
		return
	}

	path := b.exportPath("users")
	if err := writeUsersXLSX(users, path); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("users export failed")
		b.reply(ctx, chatID, msgExportFailed)
		return
	}
	defer os.Remove(path)

	b.sendExport(ctx, chatID, path)
}

// exportUserStats sends one user's request log as xlsx for the given window.
func (b *Bot) exportUserStats(ctx context.Context, chatID, userID int64, start, end time.Time) {
	requests, err := b.stats.UserRequests(ctx, userID, start, end)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("target", userID).Msg("load requests for export failed")
		b.reply(ctx, chatID, msgExportFailed)
		return
	}

	path := b.exportPath(fmt.Sprintf("stats_%d", userID))
	if err := writeRequestsXLSX(userID, requests, path); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("stats export failed")
		b.reply(ctx, chatID, msgExportFailed)
		return
	}
	defer os.Remove(path)

	b.sendExport(ctx, chatID, path)
}

func (b *Bot) exportPath(prefix string) string {
	name := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	return filepath.Join(b.cfg.Exports.Path, name)
}

func (b *Bot) sendExport(ctx context.Context, chatID int64, path string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = msgExportReady
	if _, err := b.tg.Send(doc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("file", path).Msg("export send failed")
		b.reply(ctx, chatID, msgExportFailed)
	}
}

func writeUsersXLSX(users []*models.User, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create exports dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Foydalanuvchilar"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"#", "Telegram ID", "Ism", "Familiya", "Username", "Til", "Ro'yxatdan o'tgan sana"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, u := range users {
		row := i + 2
		values := []interface{}{
			i + 1, u.TelegramID, u.FirstName, u.LastName, u.Username, u.LanguageCode,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func writeRequestsXLSX(userID int64, requests []*models.FileRequest, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create exports dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statistika"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("Foydalanuvchi: %d", userID)); err != nil {
		return err
	}
	headers := []string{"#", "Fayl kodi", "So'ralgan vaqt"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range requests {
		row := i + 3
		values := []interface{}{
			i + 1, r.FileCode, r.RequestedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
