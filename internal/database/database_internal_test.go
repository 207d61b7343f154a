package database

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"announcer/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	d, err := New(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"), slog.Default())
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	return d
}

func TestMarkSentIsIdempotent(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	for range 2 {
		if err := d.MarkSent(ctx, "Fizik", "abc", "Sınav takvimi"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := d.SentRecords(ctx, "Fizik")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}

	if records[0].Title != "Sınav takvimi" {
		t.Fatalf("unexpected title: %q", records[0].Title)
	}
}

func TestIsSentIsScopedToUnit(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	if err := d.MarkSent(ctx, "Fizik", "abc", "title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent, err := d.IsSent(ctx, "Fizik", "abc")
	if err != nil || !sent {
		t.Fatalf("expected fingerprint to be sent for Fizik, got %v (err %v)", sent, err)
	}

	sent, err = d.IsSent(ctx, "Kimya", "abc")
	if err != nil || sent {
		t.Fatalf("expected fingerprint to be unsent for Kimya, got %v (err %v)", sent, err)
	}
}

func TestDedupKeyIsTrimmedOnReadAndWrite(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	if err := d.MarkSent(ctx, " Fizik ", " abc ", "title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range [][2]string{{"Fizik", "abc"}, {"Fizik", "abc "}, {"\tFizik", " abc"}} {
		sent, err := d.IsSent(ctx, key[0], key[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !sent {
			t.Fatalf("expected (%q, %q) to be sent", key[0], key[1])
		}
	}

	count, err := d.SentCount(ctx, "Fizik ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected one record, got %d", count)
	}
}

func TestMarkSentRejectsEmptyKey(t *testing.T) {
	d := newTestDatabase(t)

	if err := d.MarkSent(context.Background(), "Fizik", " ", "title"); err == nil {
		t.Fatalf("expected error for empty fingerprint")
	}
}

func TestSweepOlderThan(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 2, 0, 0, 0, time.UTC)

	d.now = func() time.Time { return now.AddDate(0, 0, -31) }
	if err := d.MarkSent(ctx, "Fizik", "old", "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d.now = func() time.Time { return now.AddDate(0, 0, -29) }
	if err := d.MarkSent(ctx, "Fizik", "recent", "recent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d.now = func() time.Time { return now }

	removed, err := d.SweepOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if removed != 1 {
		t.Fatalf("expected one removed record, got %d", removed)
	}

	if sent, _ := d.IsSent(ctx, "Fizik", "old"); sent {
		t.Fatalf("expected 31 day old record to be removed")
	}

	if sent, _ := d.IsSent(ctx, "Fizik", "recent"); !sent {
		t.Fatalf("expected 29 day old record to be retained")
	}
}

func TestSweepOlderThanRejectsNonPositive(t *testing.T) {
	d := newTestDatabase(t)

	if _, err := d.SweepOlderThan(context.Background(), 0); err == nil {
		t.Fatalf("expected error for zero retention")
	}
}

func TestSubscriptions(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	subs := []domain.Subscription{
		{UserID: 2, Username: "ayse", Unit: "Fizik"},
		{UserID: 1, Username: "", Unit: "Fizik"},
		{UserID: 3, Username: "mehmet", Unit: "Kimya"},
	}
	for _, sub := range subs {
		if err := d.Subscribe(ctx, sub); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ids, err := d.SubscribersOf(ctx, "Fizik")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected Fizik subscribers: %v", ids)
	}

	sub, ok, err := d.SubscriptionOf(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("expected subscription for user 1, ok %v err %v", ok, err)
	}

	if sub.Username != "user_1" || !sub.Active {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	if err = d.Subscribe(ctx, domain.Subscription{UserID: 2, Username: "ayse", Unit: "Kimya"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = d.Unsubscribe(ctx, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err = d.SubscribersOf(ctx, "Kimya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("unexpected Kimya subscribers after switch and unsubscribe: %v", ids)
	}

	if _, ok, _ = d.SubscriptionOf(ctx, 42); ok {
		t.Fatalf("expected no subscription for unknown user")
	}
}

func TestStats(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		if err := d.Subscribe(ctx, domain.Subscription{UserID: i, Unit: "Fizik"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := d.Unsubscribe(ctx, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.MarkSent(ctx, "Fizik", "a", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.MarkSent(ctx, "Kimya", "b", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := d.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Stats{TotalUsers: 3, ActiveUsers: 2, TotalSentAnnouncements: 2}
	if stats != want {
		t.Fatalf("unexpected stats: got %+v want %+v", stats, want)
	}

	count, err := d.SentCount(ctx, "Fizik")
	if err != nil || count != 1 {
		t.Fatalf("unexpected Fizik count %d (err %v)", count, err)
	}
}

func TestMarkSentSurfacesInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	d := newWithDB(db, slog.Default())

	mock.ExpectQuery("select exists").
		WithArgs("Fizik", "abc").
		WillReturnRows(sqlmock.NewRows([]string{"sent"}).AddRow(false))
	mock.ExpectExec("insert or ignore into sent_announcements").
		WithArgs("Fizik", "abc", "title", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	if err = d.MarkSent(context.Background(), "Fizik", "abc", "title"); err == nil {
		t.Fatalf("expected insert failure to be returned")
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestMarkSentSkipsInsertWhenAlreadySent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	d := newWithDB(db, slog.Default())

	mock.ExpectQuery("select exists").
		WithArgs("Fizik", "abc").
		WillReturnRows(sqlmock.NewRows([]string{"sent"}).AddRow(true))

	if err = d.MarkSent(context.Background(), "Fizik", "abc", "title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}
