package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"announcer/internal/domain"
	"announcer/internal/markdown"
	"announcer/internal/message"
)

const welcomeText = `🎓 *Duyuru Botuna Hoş Geldiniz\!*

Aşağıdaki listeden bölümünüzü seçin\. Seçtiğiniz bölümün yeni duyuruları size otomatik olarak gönderilir\.

/update \- Duyuruları şimdi kontrol et
/stats \- Abonelik bilgisi
/stop \- Aboneliği bitir
/help \- Yardım`

const helpText = `❓ *Yardım*

– Bölümünüzü alttaki listeden seçerek abone olun\.
– Yeni duyurular düzenli aralıklarla kontrol edilir ve size gönderilir\.
– /update ile duyuruları hemen kontrol edebilirsiniz\.
– /stats ile abonelik bilginizi görebilirsiniz\.
– /stop ile aboneliğinizi bitirebilirsiniz\.`

// Plain notices, escaped by message.Notice on send.
const (
	failedText        = "❌ İşlem başarısız oldu. Lütfen daha sonra tekrar deneyin."
	checkFailedText   = "❌ Duyurular şu anda kontrol edilemiyor. Lütfen daha sonra tekrar deneyin."
	noSubscriptionTxt = "⚠️ Henüz bir bölüme abone değilsiniz. Lütfen listeden bir bölüm seçin."
	noNewText         = "✅ Yeni duyuru yok."
	sentCountFormat   = "✅ %d yeni duyuru gönderildi."
	unsubscribedText  = "🛑 Aboneliğiniz sonlandırıldı. Yeniden abone olmak için bir bölüm seçin."
	unknownText       = "🤔 Lütfen listeden bir bölüm seçin."
)

const (
	recentRecordsShown = 3
	recordDateLayout   = "02.01.2006"
)

func (b *Bot) handleStartCommand(ctx context.Context, chatID int64) error {
	return b.sendMessage(ctx, chatID, welcomeText, b.unitKeyboard)
}

func (b *Bot) handleHelpCommand(ctx context.Context, chatID int64) error {
	return b.sendMessage(ctx, chatID, helpText, b.unitKeyboard)
}

func (b *Bot) handleUpdateCommand(ctx context.Context, chatID int64) error {
	sub, ok, err := b.store.SubscriptionOf(ctx, chatID)
	if err != nil {
		return b.failWith(ctx, chatID, failedText, fmt.Errorf("get subscription: %w", err))
	}

	if !ok || !sub.Active {
		return b.sendNotice(ctx, chatID, noSubscriptionTxt, b.unitKeyboard)
	}

	var found int

	err = b.withSpinner(ctx, chatID, func() error {
		var checkErr error
		found, checkErr = b.checker.CheckNow(ctx, sub.Unit, chatID)

		return checkErr
	})
	if err != nil {
		return b.failWith(ctx, chatID, checkFailedText, fmt.Errorf("check now: %w", err))
	}

	if found == 0 {
		return b.sendNotice(ctx, chatID, noNewText, nil)
	}

	return b.sendNotice(ctx, chatID, fmt.Sprintf(sentCountFormat, found), nil)
}

func (b *Bot) handleStatsCommand(ctx context.Context, chatID int64) error {
	sub, ok, err := b.store.SubscriptionOf(ctx, chatID)
	if err != nil {
		return b.failWith(ctx, chatID, failedText, fmt.Errorf("get subscription: %w", err))
	}

	stats, err := b.store.Stats(ctx)
	if err != nil {
		return b.failWith(ctx, chatID, failedText, fmt.Errorf("get stats: %w", err))
	}

	var text strings.Builder
	text.WriteString("📊 *İstatistikler*\n\n")

	if ok && sub.Active {
		sent, countErr := b.store.SentCount(ctx, sub.Unit)
		if countErr != nil {
			return b.failWith(ctx, chatID, failedText, fmt.Errorf("get sent count: %w", countErr))
		}

		records, recordsErr := b.store.SentRecords(ctx, sub.Unit)
		if recordsErr != nil {
			return b.failWith(ctx, chatID, failedText, fmt.Errorf("get sent records: %w", recordsErr))
		}

		fmt.Fprintf(&text, "Bölümünüz: *%s*\n", markdown.EscapeV2(sub.Unit))
		fmt.Fprintf(&text, "Bölümünüz için gönderilen duyuru: %d\n", sent)
		writeRecentRecords(&text, records)
		text.WriteString("\n")
	} else {
		text.WriteString("Henüz bir bölüme abone değilsiniz\\.\n\n")
	}

	fmt.Fprintf(&text, "Toplam kullanıcı: %d\n", stats.TotalUsers)
	fmt.Fprintf(&text, "Aktif kullanıcı: %d\n", stats.ActiveUsers)
	fmt.Fprintf(&text, "Toplam gönderilen duyuru: %d", stats.TotalSentAnnouncements)

	return b.sendMessage(ctx, chatID, text.String(), nil)
}

func (b *Bot) handleStopCommand(ctx context.Context, chatID int64) error {
	if err := b.store.Unsubscribe(ctx, chatID); err != nil {
		return b.failWith(ctx, chatID, failedText, fmt.Errorf("unsubscribe: %w", err))
	}

	return b.sendNotice(ctx, chatID, unsubscribedText, b.unitKeyboard)
}

// writeRecentRecords lists the newest recentRecordsShown records, newest
// first. records must be ordered oldest first.
func writeRecentRecords(text *strings.Builder, records []domain.DedupRecord) {
	if len(records) == 0 {
		return
	}

	text.WriteString("Son gönderilenler:\n")

	for i := len(records) - 1; i >= 0 && i >= len(records)-recentRecordsShown; i-- {
		r := records[i]
		fmt.Fprintf(text, "• %s \\(%s\\)\n",
			markdown.EscapeV2(r.Title),
			markdown.EscapeV2(r.SentAt.Format(recordDateLayout)))
	}
}

func (b *Bot) sendNotice(ctx context.Context, chatID int64, notice string, markup any) error {
	return b.sendMessage(ctx, chatID, message.Notice(notice), markup)
}

// failWith tells the user a short notice and returns cause joined with any
// failure to send that notice.
func (b *Bot) failWith(ctx context.Context, chatID int64, notice string, cause error) error {
	errs := []error{cause}

	if sendErr := b.sendNotice(ctx, chatID, notice, nil); sendErr != nil {
		errs = append(errs, fmt.Errorf("send message: %w", sendErr))
	}

	return errors.Join(errs...)
}
