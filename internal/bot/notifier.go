package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Deactivator interface {
	Unsubscribe(ctx context.Context, userID int64) error
}

// Notifier delivers rendered announcements to subscribers.
type Notifier struct {
	sender Sender
	store  Deactivator
	log    *slog.Logger
}

func NewNotifier(sender Sender, store Deactivator, log *slog.Logger) *Notifier {
	return &Notifier{sender: sender, store: store, log: log}
}

// Deliver sends a MarkdownV2 text to subscriberID. A subscriber who blocked
// the bot is deactivated and the delivery error is still returned.
func (n *Notifier) Deliver(ctx context.Context, subscriberID int64, text string) error {
	_, err := n.sender.Send(ctx, newMarkdownMessage(ctx, subscriberID, text, n.log))
	if err == nil {
		return nil
	}

	if !isBlocked(err) {
		return fmt.Errorf("send message: %w", err)
	}

	n.log.WarnContext(ctx, "Subscriber blocked the bot, deactivating",
		"subscriberID", subscriberID)

	if unsubErr := n.store.Unsubscribe(ctx, subscriberID); unsubErr != nil {
		return errors.Join(
			fmt.Errorf("send message: %w", err),
			fmt.Errorf("unsubscribe blocked subscriber: %w", unsubErr),
		)
	}

	return fmt.Errorf("send message: %w", err)
}

func newMarkdownMessage(ctx context.Context, chatID int64, text string, log *slog.Logger) tgbotapi.MessageConfig {
	normalizedText := strings.ToValidUTF8(text, "?")
	if normalizedText != text {
		log.WarnContext(ctx, "Message text had invalid UTF-8 and was normalized",
			"chatID", chatID,
			"originalLen", len(text),
			"normalizedLen", len(normalizedText))
	}

	message := tgbotapi.NewMessage(chatID, normalizedText)

	// See https://core.telegram.org/bots/api#markdownv2-style.
	message.ParseMode = tgbotapi.ModeMarkdownV2

	message.DisableWebPagePreview = true

	return message
}

func isBlocked(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Code == http.StatusForbidden
}
