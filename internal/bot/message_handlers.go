package bot

import (
	"context"
	"fmt"
	"strings"

	"announcer/internal/domain"
	"announcer/internal/markdown"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch {
	case isCommand(text, "start"):
		return b.handleStartCommand(ctx, chatID)
	case isCommand(text, "help"), text == helpButtonText:
		return b.handleHelpCommand(ctx, chatID)
	case isCommand(text, "update"):
		return b.handleUpdateCommand(ctx, chatID)
	case isCommand(text, "stats"):
		return b.handleStatsCommand(ctx, chatID)
	case isCommand(text, "stop"):
		return b.handleStopCommand(ctx, chatID)
	}

	if _, ok := b.units.Unit(text); ok {
		return b.handleUnitSelection(ctx, chatID, message.From, text)
	}

	return b.sendNotice(ctx, chatID, unknownText, b.unitKeyboard)
}

// isCommand matches /name, /name@botname and /name with arguments.
func isCommand(text, name string) bool {
	head, _, _ := strings.Cut(text, " ")
	head, _, _ = strings.Cut(head, "@")

	return head == "/"+name
}

func (b *Bot) handleUnitSelection(
	ctx context.Context,
	chatID int64,
	from *tgbotapi.User,
	unitName string,
) error {
	username := ""
	if from != nil {
		username = from.UserName
	}

	if err := b.store.Subscribe(ctx, domain.Subscription{
		UserID:   chatID,
		Username: username,
		Unit:     unitName,
		Active:   true,
	}); err != nil {
		return b.failWith(ctx, chatID, failedText, fmt.Errorf("subscribe: %w", err))
	}

	// Current announcements are marked as seen so only later ones arrive.
	primed, err := b.checker.Prime(ctx, unitName)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to prime unit",
			"error", err,
			"unit", unitName,
			"chatID", chatID,
			"primed", primed)
	}

	text := fmt.Sprintf(
		"✅ *%s* bölümüne abone oldunuz\\.\n\nYeni duyurular otomatik olarak size gönderilecek\\.",
		markdown.EscapeV2(unitName),
	)

	return b.sendMessage(ctx, chatID, text, getSubscriptionKeyboard())
}
