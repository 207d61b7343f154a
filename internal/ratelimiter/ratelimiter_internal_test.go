package ratelimiter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recordingAPI struct {
	mu    sync.Mutex
	sent  []time.Time
	chats []int64
	err   error
}

func (a *recordingAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sent = append(a.sent, time.Now())
	a.chats = append(a.chats, getChatID(c))

	return tgbotapi.Message{MessageID: len(a.sent)}, a.err
}

func (a *recordingAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (a *recordingAPI) sentTimes() []time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]time.Time(nil), a.sent...)
}

func TestGetDelay(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		chatID   int64
		lastSent time.Time
		wantZero bool
	}{
		{"Private chat - no delay needed", 123456789, now.Add(-2 * time.Second), true},
		{"Private chat - delay needed", 123456789, now.Add(-500 * time.Millisecond), false},
		{"Group chat - no delay needed", -123456789, now.Add(-4 * time.Second), true},
		{"Group chat - delay needed", -123456789, now.Add(-1 * time.Second), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := getDelay(test.chatID, test.lastSent)

			if test.wantZero && got > 0 {
				t.Errorf("Expected zero delay, got %v", got)
			}

			if !test.wantZero && got <= 0 {
				t.Errorf("Expected positive delay, got %v", got)
			}
		})
	}
}

func TestGetChatID(t *testing.T) {
	tests := []struct {
		name    string
		message tgbotapi.Chattable
		want    int64
	}{
		{"MessageConfig", tgbotapi.NewMessage(12345, "test"), 12345},
		{"ChatActionConfig", tgbotapi.NewChatAction(67890, tgbotapi.ChatTyping), 67890},
		{"Unknown", tgbotapi.NewSetMyCommands(), 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := getChatID(test.message); got != test.want {
				t.Errorf("Expected %v chatID, got %v", test.want, got)
			}
		})
	}
}

func TestGetRate(t *testing.T) {
	if got := getRate(1); got != privateChatRate {
		t.Errorf("Expected %v rate, got %v", privateChatRate, got)
	}

	if got := getRate(-1); got != groupChatRate {
		t.Errorf("Expected %v rate, got %v", groupChatRate, got)
	}
}

func TestSendPacesSameChat(t *testing.T) {
	api := &recordingAPI{}
	rl := New(api, slog.Default())
	defer rl.Stop()

	ctx := context.Background()

	for range 2 {
		if _, err := rl.Send(ctx, tgbotapi.NewMessage(42, "duyuru")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sent := api.sentTimes()
	if len(sent) != 2 {
		t.Fatalf("expected two sends, got %d", len(sent))
	}

	if gap := sent[1].Sub(sent[0]); gap < privateChatRate-50*time.Millisecond {
		t.Fatalf("expected sends to be paced, gap was %v", gap)
	}
}

func TestSendReturnsAPIError(t *testing.T) {
	api := &recordingAPI{err: errors.New("Forbidden: bot was blocked by the user")}
	rl := New(api, slog.Default())
	defer rl.Stop()

	if _, err := rl.Send(context.Background(), tgbotapi.NewMessage(7, "x")); err == nil {
		t.Fatalf("expected API error to be returned")
	}
}

func TestSendHonorsCancelledContext(t *testing.T) {
	api := &recordingAPI{}
	rl := New(api, slog.Default())
	defer rl.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.Send(ctx, tgbotapi.NewMessage(7, "x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSendAfterStop(t *testing.T) {
	rl := New(&recordingAPI{}, slog.Default())
	rl.Stop()

	if _, err := rl.Send(context.Background(), tgbotapi.NewMessage(7, "x")); err == nil {
		t.Fatalf("expected error after stop")
	}
}
