package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	DefaultFetchTimeout = 10 * time.Second

	maxPageBytes = 5 << 20
)

type FetchErrorKind int

const (
	FetchErrorTransport FetchErrorKind = iota + 1
	FetchErrorStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorTransport:
		return "transport"
	case FetchErrorStatus:
		return "status"
	default:
		return "unknown"
	}
}

// FetchError is returned by Fetch for every failed retrieval. StatusCode is
// set only for FetchErrorStatus.
type FetchError struct {
	URL        string
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchErrorStatus {
		return fmt.Sprintf("fetch %s: unexpected status: %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Timeout() bool {
	if e.Kind != FetchErrorTransport {
		return false
	}

	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	log       *slog.Logger
}

func NewFetcher(timeout time.Duration, userAgent string, log *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxBytes:  maxPageBytes,
		log:       log,
	}
}

// Fetch returns the raw body of pageURL. It never retries.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorTransport, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req) //nolint:gosec // URLs come from the unit registry.
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorTransport, Err: fmt.Errorf("do request: %w", err)}
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", pageURL,
				"operation", "Fetch")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	if int64(len(body)) > f.maxBytes {
		return nil, &FetchError{
			URL:  pageURL,
			Kind: FetchErrorTransport,
			Err:  fmt.Errorf("body exceeds %d bytes", f.maxBytes),
		}
	}

	return body, nil
}
