package bot

// User-facing texts. The audience is Uzbek-speaking; the subscription
// warning is additionally localized for the most common user locales.

const (
	msgNotAdmin     = "Siz admin emassiz."
	msgCancelled    = "🚫 Bekor qilindi. Siz bosh menyudasiz."
	msgAdminWelcome = "👨‍💻 Admin panelga xush kelibsiz!"

	msgWelcome = "👋 Assalomu alaykum!\n" +
		"Fayl olish uchun fayl kodini yuboring (faqat raqam).\n\n" +
		"👋 Здравствуйте!\n" +
		"Отправьте код файла, чтобы получить файл (только цифры).\n\n" +
		"👋 Сәлеметсіз бе!\n" +
		"Файл алу үшін файл кодын жіберіңіз (тек сандар)."

	msgHelp = "ℹ️ Fayl olish uchun fayl kodini yuboring (faqat raqam).\n" +
		"Bekor qilish uchun /cancel buyrug'idan foydalaning."

	msgDigitsHint = "Iltimos, fayl kodini kiriting (faqat raqam)."

	msgAskCode       = "📥 Fayl kodini kiriting (faqat raqam):"
	msgBadCode       = "❌ Noto'g'ri format! Iltimos, faqat raqam kiriting."
	msgCodeExists    = "❌ %s kodi allaqachon mavjud! Iltimos, boshqa kod kiriting."
	msgAskFile       = "📤 Endi faylni yuboring yoki bekor qilish uchun /cancel bosing:"
	msgFileSaved     = "✅ Fayl '%s' kodi bilan saqlandi."
	msgWrongFile     = "❌ Noto'g'ri format! Iltimos, faylni yuboring yoki amaliyotni bekor qilish uchun /cancel bosing."
	msgFileNotFound  = "❌ Bunday kod bilan fayl topilmadi."
	msgFileCorrupted = "❌ Fayl topilmadi yoki noto'g'ri formatda saqlangan."
	msgLinkForCode   = "📥 '%s' kodi uchun havola:\n%s"
	msgFileCaption   = "📥 '%s' kodi uchun fayl"
	msgSendFailed    = "❌ Faylni yuborishda xatolik yuz berdi. Keyinroq urinib ko'ring."

	msgAskDeleteCode = "🗑 O'chirish uchun fayl kodini kiriting:"
	msgFileDeleted   = "✅ '%s' kodli fayl o'chirildi."

	msgSubscribePrompt = "⚠️ Botdan foydalanish uchun quyidagi kanal(lar)ga obuna bo'ling:"
	btnCheckSub        = "✅ Obuna bo'ldim"
	msgSubChecked      = "✅ Obuna tekshirildi! Fayl kodini kiriting:"

	msgAskChannelAdd    = "➕ Kanal username ni @ bilan kiriting (masalan: @kanal):"
	msgChannelNeedAt    = "❌ Kanal username @ bilan boshlanishi kerak! Masalan: @kanal"
	msgChannelAdded     = "✅ @%s kanali majburiy obunaga qo'shildi."
	msgChannelExists    = "❌ @%s kanali allaqachon ro'yxatda bor."
	msgAskChannelRemove = "➖ Olib tashlash uchun kanal username ni kiriting:"
	msgChannelRemoved   = "✅ @%s kanali ro'yxatdan olib tashlandi."
	msgChannelNotFound  = "❌ @%s kanali ro'yxatda topilmadi."
	msgChannelListHead  = "📋 Majburiy obuna kanallari:"
	msgChannelListEmpty = "📋 Majburiy obuna kanallari ro'yxati bo'sh."
	msgChannelMenu      = "🔗 Majburiy obuna bo'limi:"

	msgBroadcastMenu    = "📢 Reklama turini tanlang:"
	msgBroadcastStarted = "📤 Reklama yuborish boshlandi..."
	msgBroadcastReport  = "📊 Reklama yakunlandi!\n\n" +
		"👥 Jami: %d\n✅ Yuborildi: %d\n🚫 Bloklagan: %d\n❌ Xatolik: %d"
	msgBroadcastWrong = "❌ Noto'g'ri turdagi xabar! Tanlangan turga mos kontent yuboring yoki /cancel bosing."

	msgAskBcText      = "📝 Reklama matnini yuboring:"
	msgAskBcPhoto     = "🖼 Rasmni yuboring (rasm yoki rasmli fayl):"
	msgAskBcVideo     = "🎥 Videoni yuboring:"
	msgAskBcDocument  = "📁 Faylni yuboring:"
	msgAskBcAnimation = "🎞 GIF ni yuboring:"
	msgAskBcVoice     = "🎙 Ovozli xabarni yuboring:"
	msgAskBcLocation  = "📍 Lokatsiyani yuboring:"
	msgAskBcAudio     = "🎵 Musiqani yuboring:"

	msgStatsSummary = "📊 Bot statistikasi:\n\n" +
		"👥 Foydalanuvchilar: %d\n📁 Fayllar: %d\n📥 Bugungi so'rovlar: %d"
	msgAskStatsUser  = "👤 Foydalanuvchi Telegram ID sini kiriting:"
	msgBadUserID     = "❌ Noto'g'ri ID! Iltimos, faqat raqam kiriting."
	msgAskStatsStart = "📅 Boshlanish filtrini kiriting (today, yesterday, week, all yoki 2006-01-02 15:04:05 ko'rinishida):"
	msgAskStatsEnd   = "📅 Tugash filtrini kiriting (today, yesterday, week, all yoki 2006-01-02 15:04:05 ko'rinishida):"
	msgBadDateFilter = "❌ Noto'g'ri filtr! today, yesterday, week, all yoki aniq sana kiriting."
	msgUserStats     = "📊 Foydalanuvchi %d statistikasi:\n\n📥 So'rovlar soni: %d"
	btnExportStats   = "📥 Excel hisobot"

	msgExportReady  = "📥 Hisobot tayyor."
	msgExportFailed = "❌ Hisobot tayyorlashda xatolik yuz berdi."

	msgFileListMenu  = "📁 Fayl turini tanlang:"
	msgFileListEmpty = "📁 Bu turdagi fayllar topilmadi."

	msgInternalError = "❌ Ichki xatolik yuz berdi. Keyinroq urinib ko'ring."
)

// subscriptionWarnings holds the localized gate warning shown as a callback
// alert when the re-check still fails. Unknown locales fall back to uz.
var subscriptionWarnings = map[string]string{
	"uz": "⚠️ Botdan foydalanish uchun barcha kanallarga obuna bo'ling!",
	"ru": "⚠️ Для использования бота подпишитесь на все каналы!",
	"kk": "⚠️ Ботты пайдалану үшін барлық арналарға жазылыңыз!",
	"ky": "⚠️ Ботту колдонуу үчүн бардык каналдарга жазылыңыз!",
	"tk": "⚠️ Botdan peýdalanmak üçin ähli kanallara agza boluň!",
	"hy": "⚠️ Բոտից օգտվելու համար բաժանորդագրվեք բոլոր ալիքներին:",
	"tg": "⚠️ Барои истифодаи бот ба ҳамаи каналҳо обуна шавед!",
}

func subscriptionWarning(locale string) string {
	if msg, ok := subscriptionWarnings[locale]; ok {
		return msg
	}
	return subscriptionWarnings["uz"]
}
