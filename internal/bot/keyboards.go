package bot

import (
	"context"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	helpButtonText = "❓ Yardım"

	callbackCheckNow    = "check_now"
	callbackUnsubscribe = "unsubscribe"
)

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string, markup any) error {
	message := newMarkdownMessage(ctx, chatID, text, b.log)
	if markup != nil {
		message.ReplyMarkup = markup
	}

	_, err := b.sender.Send(ctx, message)
	return err
}

// getUnitKeyboard lists every unit alphabetically, one per row.
func getUnitKeyboard(names []string) tgbotapi.ReplyKeyboardMarkup {
	sorted := slices.Clone(names)
	slices.Sort(sorted)

	rows := make([][]tgbotapi.KeyboardButton, 0, len(sorted)+1)
	for _, name := range sorted {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(name)))
	}

	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(helpButtonText)))

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true

	return keyboard
}

func getSubscriptionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Şimdi kontrol et", callbackCheckNow),
			tgbotapi.NewInlineKeyboardButtonData("🛑 Aboneliği bitir", callbackUnsubscribe),
		),
	)
}
