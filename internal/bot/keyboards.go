package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"faylbot/internal/models"
)

// Admin main menu labels. Pressing one is the only way into the admin flows.
const (
	btnStats       = "📊 Statistika"
	btnExportUsers = "📥 Excelni yuklash"
	btnUploadFile  = "📤 Fayl yuklash"
	btnDeleteFile  = "🗑 Faylni o'chirish"
	btnListFiles   = "📁 Fayllar ro'yxati"
	btnBroadcast   = "📢 Reklama"
	btnChannels    = "🔗 Majburiy obuna"
	btnBack        = "🔙 Orqaga"
)

// Broadcast submenu labels, one per broadcast kind.
const (
	btnBcText      = "📝 SMS"
	btnBcPhoto     = "🖼 Rasm"
	btnBcVideo     = "🎥 Video"
	btnBcDocument  = "📁 Fayl"
	btnBcAnimation = "🎞 GIF"
	btnBcVoice     = "🎙 Ovozli xabar"
	btnBcLocation  = "📍 Lokatsiya"
	btnBcAudio     = "🎵 Musiqa"
)

// Channel submenu labels.
const (
	btnChannelAdd    = "➕ Kanal qo'shish"
	btnChannelRemove = "➖ Kanalni olib tashlash"
	btnChannelList   = "📋 Kanallar ro'yxati"
)

// broadcastButtons maps submenu labels to broadcast kinds.
var broadcastButtons = map[string]models.BroadcastKind{
	btnBcText:      models.BroadcastText,
	btnBcPhoto:     models.BroadcastPhoto,
	btnBcVideo:     models.BroadcastVideo,
	btnBcDocument:  models.BroadcastDocument,
	btnBcAnimation: models.BroadcastAnimation,
	btnBcVoice:     models.BroadcastVoice,
	btnBcLocation:  models.BroadcastLocation,
	btnBcAudio:     models.BroadcastAudio,
}

func adminKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnExportUsers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnUploadFile),
			tgbotapi.NewKeyboardButton(btnDeleteFile),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnListFiles),
			tgbotapi.NewKeyboardButton(btnBroadcast),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnChannels),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func broadcastKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBcText),
			tgbotapi.NewKeyboardButton(btnBcPhoto),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBcVideo),
			tgbotapi.NewKeyboardButton(btnBcDocument),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBcAnimation),
			tgbotapi.NewKeyboardButton(btnBcVoice),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBcLocation),
			tgbotapi.NewKeyboardButton(btnBcAudio),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func channelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnChannelAdd),
			tgbotapi.NewKeyboardButton(btnChannelRemove),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnChannelList),
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// subscriptionKeyboard builds one join-link row per channel plus the
// re-check button.
func subscriptionKeyboard(channels []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(channels)+1)
	for i, handle := range channels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(
				fmt.Sprintf("%d - kanal", i+1),
				"https://t.me/"+handle,
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnCheckSub, models.CallbackCheckSubscription),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// kindLabels are the display names of the media kinds in the file list.
var kindLabels = map[models.MediaKind]string{
	models.KindDocument:  "📄 Hujjat",
	models.KindPhoto:     "🖼 Rasm",
	models.KindVideo:     "🎥 Video",
	models.KindAudio:     "🎵 Musiqa",
	models.KindAnimation: "🎞 GIF",
	models.KindVoice:     "🎙 Ovozli",
	models.KindSticker:   "💟 Stiker",
}

// fileKindKeyboard is the entry menu of the file list: one filter per media
// kind plus "all".
func fileKindKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 5)
	row := make([]tgbotapi.InlineKeyboardButton, 0, 2)
	for _, kind := range models.MediaKinds {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			kindLabels[kind], models.CallbackFilterPrefix+string(kind)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 2)
		}
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		"📦 Hammasi", models.CallbackFilterPrefix+"all"))
	rows = append(rows, row)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
