package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"announcer/internal/domain"
)

const logTitleMaxChars = 50

func (d *Database) Subscribe(ctx context.Context, sub domain.Subscription) error {
	unit := strings.TrimSpace(sub.Unit)
	if unit == "" {
		return errors.New("unit is empty")
	}

	username := strings.TrimSpace(sub.Username)
	if username == "" {
		username = fmt.Sprintf("user_%d", sub.UserID)
	}

	query := `insert into subscriptions (user_id, username, unit, active, updated_at)
	values (?, ?, ?, 1, ?)
	on conflict (user_id) do update
	set username = excluded.username,
		unit = excluded.unit,
		active = 1,
		updated_at = excluded.updated_at`

	if _, err := d.db.ExecContext(ctx, query, sub.UserID, username, unit, d.now().Unix()); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

func (d *Database) Unsubscribe(ctx context.Context, userID int64) error {
	query := "update subscriptions set active = 0, updated_at = ? where user_id = ?"

	if _, err := d.db.ExecContext(ctx, query, d.now().Unix(), userID); err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}

	return nil
}

func (d *Database) SubscribersOf(ctx context.Context, unit string) ([]int64, error) {
	query := `select user_id
	from subscriptions
	where unit = ? and active = 1
	order by user_id`

	rows, err := d.db.QueryContext(ctx, query, unit)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"unit", unit,
				"operation", "SubscribersOf")
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return ids, nil
}

// SubscriptionOf returns the subscription of userID whether it is active or
// not. The bool is false when the user never picked a unit.
func (d *Database) SubscriptionOf(ctx context.Context, userID int64) (domain.Subscription, bool, error) {
	query := `select user_id, username, unit, active
	from subscriptions
	where user_id = ?`

	var sub domain.Subscription

	err := d.db.QueryRowContext(ctx, query, userID).Scan(&sub.UserID, &sub.Username, &sub.Unit, &sub.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Subscription{}, false, nil
	}
	if err != nil {
		return domain.Subscription{}, false, fmt.Errorf("query subscription: %w", err)
	}

	sub.Unit = strings.TrimSpace(sub.Unit)

	return sub, true, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}

	return string(runes[:maxChars]) + "..."
}
