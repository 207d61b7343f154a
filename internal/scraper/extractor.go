package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"announcer/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultDetailPathPattern = "/duyuru/detay/"
	DefaultLimit             = 5
)

// Page is a parsed listing page handed to every strategy.
type Page struct {
	Doc  *goquery.Document
	Raw  []byte
	Base *url.URL
}

// Strategy turns a page into at most limit announcements. The error reports
// candidates that were skipped and never means the whole page failed.
type Strategy func(page *Page, limit int) ([]domain.Announcement, error)

type NamedStrategy struct {
	Name string
	Run  Strategy
}

type Extractor struct {
	strategies []NamedStrategy
	log        *slog.Logger
}

// NewExtractor returns an extractor trying, in order, detail links matching
// detailPathPattern, generic content blocks and feed documents.
func NewExtractor(detailPathPattern string, log *slog.Logger) *Extractor {
	detailPathPattern = strings.TrimSpace(detailPathPattern)
	if detailPathPattern == "" {
		detailPathPattern = DefaultDetailPathPattern
	}

	return NewExtractorWithStrategies(log,
		NamedStrategy{Name: "detailLink", Run: DetailLinkStrategy(detailPathPattern)},
		NamedStrategy{Name: "genericStructure", Run: GenericStructureStrategy},
		NamedStrategy{Name: "feedDocument", Run: FeedDocumentStrategy},
	)
}

func NewExtractorWithStrategies(log *slog.Logger, strategies ...NamedStrategy) *Extractor {
	return &Extractor{strategies: strategies, log: log}
}

// Extract runs the strategies in order and returns the result of the first
// one producing at least one announcement.
func (e *Extractor) Extract(
	ctx context.Context,
	markup []byte,
	baseURL string,
	limit int,
) ([]domain.Announcement, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}

	page := &Page{Doc: doc, Raw: markup, Base: base}

	for _, strategy := range e.strategies {
		announcements, runErr := runStrategy(strategy, page, limit)
		if runErr != nil {
			e.log.DebugContext(ctx, "Skipped announcement candidates",
				"error", runErr,
				"strategy", strategy.Name,
				"baseURL", baseURL)
		}

		if len(announcements) == 0 {
			continue
		}

		e.log.DebugContext(ctx, "Announcements are extracted",
			"strategy", strategy.Name,
			"count", len(announcements),
			"baseURL", baseURL)

		return announcements, nil
	}

	return nil, nil
}

func runStrategy(strategy NamedStrategy, page *Page, limit int) (announcements []domain.Announcement, err error) {
	defer func() {
		if r := recover(); r != nil {
			announcements = nil
			err = fmt.Errorf("strategy %s panicked: %v", strategy.Name, r)
		}
	}()

	announcements, err = strategy.Run(page, limit)
	if len(announcements) > limit {
		announcements = announcements[:limit]
	}

	return announcements, err
}

// candidate runs fn and turns a panic into an error so that one malformed
// element never aborts the rest of the page.
func candidate(fn func() (domain.Announcement, error)) (a domain.Announcement, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract candidate: %v", r)
		}
	}()

	return fn()
}

func resolveLink(base *url.URL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", errors.New("href is empty")
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse href: %w", err)
	}

	return base.ResolveReference(ref).String(), nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryMaxChars {
		return s
	}

	return string(runes[:summaryMaxChars]) + "..."
}
