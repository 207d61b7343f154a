package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"announcer/internal/domain"
)

type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

type SentChecker interface {
	IsSent(ctx context.Context, unit, fingerprint string) (bool, error)
}

type Scanner struct {
	fetcher   PageFetcher
	extractor *Extractor
	store     SentChecker
	log       *slog.Logger
}

func NewScanner(
	fetcher PageFetcher,
	extractor *Extractor,
	store SentChecker,
	log *slog.Logger,
) *Scanner {
	return &Scanner{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		log:       log,
	}
}

// Scan returns the announcements of unit that were not delivered yet, in
// page order. It never marks anything as sent.
func (s *Scanner) Scan(ctx context.Context, unit domain.Unit, limit int) ([]domain.Announcement, error) {
	markup, err := s.fetcher.Fetch(ctx, unit.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch unit page: %w", err)
	}

	announcements, err := s.extractor.Extract(ctx, markup, unit.URL, limit)
	if err != nil {
		return nil, fmt.Errorf("extract announcements: %w", err)
	}

	fresh := make([]domain.Announcement, 0, len(announcements))

	for _, a := range announcements {
		a.Fingerprint = Fingerprint(a)

		sent, err := s.store.IsSent(ctx, unit.Name, a.Fingerprint)
		if err != nil {
			return nil, fmt.Errorf("check sent announcement: %w", err)
		}

		if sent {
			continue
		}

		fresh = append(fresh, a)
	}

	s.log.DebugContext(ctx, "Unit is scanned",
		"unit", unit.Name,
		"extracted", len(announcements),
		"new", len(fresh))

	return fresh, nil
}
