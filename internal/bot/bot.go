package bot

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"announcer/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxBackoffSeconds         = 60
	initialBackoffSeconds     = 3
	backoffGrowthFactor       = 2
	resetOffsetBackoffSeconds = 30
	updateProcessingTimeout   = 60 * time.Second

	BotUpdateTimeout = 60

	// Long polling holds the request for BotUpdateTimeout seconds.
	apiClientTimeout = (BotUpdateTimeout + 15) * time.Second
)

// Sender posts messages to Telegram. *ratelimiter.RateLimiter implements it.
type Sender interface {
	Send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Store interface {
	Subscribe(ctx context.Context, sub domain.Subscription) error
	Unsubscribe(ctx context.Context, userID int64) error
	SubscriptionOf(ctx context.Context, userID int64) (domain.Subscription, bool, error)
	SentCount(ctx context.Context, unit string) (int64, error)
	SentRecords(ctx context.Context, unit string) ([]domain.DedupRecord, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type Checker interface {
	CheckNow(ctx context.Context, unitName string, subscriberID int64) (int, error)
	Prime(ctx context.Context, unitName string) (int, error)
}

type Units interface {
	Names() []string
	Unit(name string) (domain.Unit, bool)
}

type Bot struct {
	api          *tgbotapi.BotAPI
	sender       Sender
	store        Store
	checker      Checker
	units        Units
	allowedUsers []int64
	unitKeyboard tgbotapi.ReplyKeyboardMarkup
	log          *slog.Logger
}

// NewAPI connects to the Bot API with an HTTP client that outlives a long
// poll but still bounds every delivery.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPIWithClient(
		strings.TrimSpace(token),
		tgbotapi.APIEndpoint,
		&http.Client{Timeout: apiClientTimeout},
	)
}

func New(
	api *tgbotapi.BotAPI,
	sender Sender,
	store Store,
	checker Checker,
	units Units,
	allowedUsers []int64,
	log *slog.Logger,
) *Bot {
	return &Bot{
		api:          api,
		sender:       sender,
		store:        store,
		checker:      checker,
		units:        units,
		allowedUsers: allowedUsers,
		unitKeyboard: getUnitKeyboard(units.Names()),
		log:          log,
	}
}

func (b *Bot) Start(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = BotUpdateTimeout

	backoffSeconds := initialBackoffSeconds

	for {
		select {
		case <-ctx.Done():
			b.log.InfoContext(ctx, "Bot context is done",
				"error", ctx.Err())
			return
		default:
		}

		updates := b.api.GetUpdatesChan(updateConfig)
		updatesClosed := false

		for !updatesClosed {
			select {
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				b.log.InfoContext(ctx, "Bot context is done",
					"error", ctx.Err())
				return

			case update, ok := <-updates:
				if !ok {
					updatesClosed = true
					continue
				}
				updateConfig.Offset = update.UpdateID + 1

				b.handleUpdate(ctx, &update)
			}
		}

		if ctx.Err() != nil {
			return
		}

		b.log.WarnContext(ctx, "Update channel is closed, reconnecting...",
			"offset", updateConfig.Offset,
			"backoffSeconds", backoffSeconds)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(backoffSeconds) * time.Second):
		}

		backoffSeconds = updateBackoffSeconds(backoffSeconds)

		if backoffSeconds >= resetOffsetBackoffSeconds {
			updateConfig.Offset = 0
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, updateProcessingTimeout)
	defer cancel()

	switch {
	case update.Message != nil && update.Message.From != nil:
		chatID, chatType := chatContext(update.Message.Chat)

		userID := update.Message.From.ID
		if !b.userAllowed(userID) {
			b.log.DebugContext(updateCtx, "User is not allowed",
				"userID", userID,
				"chatID", chatID,
				"username", update.Message.From.UserName,
				"chatType", chatType)

			return
		}

		if err := b.handleMessage(updateCtx, update.Message); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle message",
				"error", err,
				"chatID", chatID,
				"userID", userID,
				"chatType", chatType,
				"messageID", update.Message.MessageID)
		}

	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID := callbackChatID(update.CallbackQuery)

		if !b.userAllowed(update.CallbackQuery.From.ID) {
			b.log.DebugContext(updateCtx, "User is not allowed",
				"userID", update.CallbackQuery.From.ID,
				"chatID", chatID,
				"username", update.CallbackQuery.From.UserName,
				"data", update.CallbackQuery.Data)

			return
		}

		if err := b.handleCallbackQuery(updateCtx, update.CallbackQuery); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle callback query",
				"error", err,
				"chatID", chatID,
				"userID", update.CallbackQuery.From.ID,
				"data", update.CallbackQuery.Data,
				"messageID", callbackMessageID(update.CallbackQuery))
		}
	}
}

func (b *Bot) userAllowed(userID int64) bool {
	return len(b.allowedUsers) == 0 || slices.Contains(b.allowedUsers, userID)
}

func chatContext(chat *tgbotapi.Chat) (int64, string) {
	if chat == nil {
		return 0, ""
	}

	return chat.ID, chat.Type
}

func callbackChatID(cb *tgbotapi.CallbackQuery) int64 {
	if cb != nil && cb.Message != nil && cb.Message.Chat != nil {
		return cb.Message.Chat.ID
	}

	return 0
}

func callbackMessageID(cb *tgbotapi.CallbackQuery) int {
	if cb != nil && cb.Message != nil {
		return cb.Message.MessageID
	}

	return 0
}

func updateBackoffSeconds(backoffSeconds int) int {
	if backoffSeconds < maxBackoffSeconds {
		backoffSeconds *= backoffGrowthFactor
		if backoffSeconds > maxBackoffSeconds {
			backoffSeconds = maxBackoffSeconds
		}
	}
	return backoffSeconds
}
