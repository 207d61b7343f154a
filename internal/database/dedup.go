package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"announcer/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// dedupKey trims both parts of the (unit, fingerprint) key.
func dedupKey(unit, fingerprint string) (string, string) {
	return strings.TrimSpace(unit), strings.TrimSpace(fingerprint)
}

func (d *Database) IsSent(ctx context.Context, unit string, fingerprint string) (bool, error) {
	unit, fingerprint = dedupKey(unit, fingerprint)

	query := `select exists (
		select 1 from sent_announcements
		where unit = ? and fingerprint = ?
	)`

	var sent bool
	if err := d.db.QueryRowContext(ctx, query, unit, fingerprint).Scan(&sent); err != nil {
		return false, fmt.Errorf("query sent announcement: %w", err)
	}

	return sent, nil
}

// MarkSent records that fingerprint was dispatched for unit. Marking an
// already sent fingerprint is a no-op.
func (d *Database) MarkSent(ctx context.Context, unit string, fingerprint string, title string) error {
	unit, fingerprint = dedupKey(unit, fingerprint)

	if unit == "" || fingerprint == "" {
		return errors.New("unit or fingerprint is empty")
	}

	sent, err := d.IsSent(ctx, unit, fingerprint)
	if err != nil {
		return err
	}
	if sent {
		return nil
	}

	query := `insert or ignore into sent_announcements (unit, fingerprint, title, sent_at)
	values (?, ?, ?, ?)`

	if _, err = d.db.ExecContext(ctx, query, unit, fingerprint, title, d.now().Unix()); err != nil {
		return fmt.Errorf("insert sent announcement: %w", err)
	}

	d.log.DebugContext(ctx, "Announcement is marked as sent",
		"unit", unit,
		"fingerprint", fingerprint,
		"title", truncate(title, logTitleMaxChars))

	return nil
}

// SweepOlderThan deletes records sent more than retentionDays ago.
func (d *Database) SweepOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retention days must be positive, got %d", retentionDays)
	}

	cutoff := d.now().Unix() - int64(retentionDays)*secondsPerDay

	res, err := d.db.ExecContext(ctx, "delete from sent_announcements where sent_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old announcements: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted announcements: %w", err)
	}

	return removed, nil
}

func (d *Database) SentRecords(ctx context.Context, unit string) ([]domain.DedupRecord, error) {
	query := `select unit, fingerprint, title, sent_at
	from sent_announcements
	where unit = ?
	order by sent_at, fingerprint`

	rows, err := d.db.QueryContext(ctx, query, strings.TrimSpace(unit))
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"unit", unit,
				"operation", "SentRecords")
		}
	}()

	var records []domain.DedupRecord
	for rows.Next() {
		var (
			r      domain.DedupRecord
			sentAt int64
		)
		if err = rows.Scan(&r.Unit, &r.Fingerprint, &r.Title, &sentAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		r.SentAt = time.Unix(sentAt, 0)
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

func (d *Database) SentCount(ctx context.Context, unit string) (int64, error) {
	var count int64

	err := d.db.QueryRowContext(ctx,
		"select count(*) from sent_announcements where unit = ?", strings.TrimSpace(unit),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sent announcements: %w", err)
	}

	return count, nil
}

func (d *Database) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats

	err := d.db.QueryRowContext(ctx,
		"select count(*), coalesce(sum(active), 0) from subscriptions",
	).Scan(&s.TotalUsers, &s.ActiveUsers)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count subscriptions: %w", err)
	}

	err = d.db.QueryRowContext(ctx,
		"select count(*) from sent_announcements",
	).Scan(&s.TotalSentAnnouncements)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count sent announcements: %w", err)
	}

	return s, nil
}
