package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"announcer/internal/domain"
	"announcer/internal/message"
	"announcer/internal/metrics"
	"announcer/internal/scraper"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Run scans every unit once per interval until ctx is done. The first cycle
// starts immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "Scheduler loop is started",
		"interval", s.opts.Interval,
		"pacing", s.opts.Pacing)

	for {
		if err := s.safeCycle(ctx); err != nil {
			s.log.ErrorContext(ctx, "Failed to run scan cycle",
				"error", err,
				"backoff", s.opts.PanicBackoff)

			select {
			case <-ctx.Done():
				s.log.InfoContext(ctx, "Scheduler loop is stopped")
				return nil
			case <-time.After(s.opts.PanicBackoff):
			}

			continue
		}

		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Scheduler loop is stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scan cycle panicked: %v\n%s", r, debug.Stack())
		}
	}()

	s.runCycle(ctx)

	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) {
	start := time.Now()
	log := s.log.With("cycleID", uuid.NewString())
	pacer := s.newPacer()

	log.InfoContext(ctx, "Scan cycle is started")

	for _, unit := range s.registry.Units() {
		if ctx.Err() != nil {
			log.InfoContext(ctx, "Scan cycle is interrupted",
				"error", ctx.Err(),
				"unit", unit.Name)

			break
		}

		s.processUnit(ctx, log, pacer, unit)
	}

	finished := time.Now()
	s.metrics.ObserveCycle(finished.Sub(start).Seconds(), float64(finished.Unix()))

	log.InfoContext(ctx, "Scan cycle is finished",
		"duration", finished.Sub(start))
}

func (s *Scheduler) newPacer() *rate.Limiter {
	if s.opts.Pacing <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(s.opts.Pacing), 1)
}

func (s *Scheduler) processUnit(
	ctx context.Context,
	log *slog.Logger,
	pacer *rate.Limiter,
	unit domain.Unit,
) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.UnitScanned(metrics.ResultFailed)
			log.ErrorContext(ctx, "Recovered from unit panic",
				"panic", r,
				"unit", unit.Name,
				"stack", string(debug.Stack()))
		}
	}()

	subscribers, err := s.directory.SubscribersOf(ctx, unit.Name)
	if err != nil {
		s.metrics.UnitScanned(metrics.ResultFailed)
		log.ErrorContext(ctx, "Failed to get unit subscribers",
			"error", err,
			"unit", unit.Name)

		return
	}

	if len(subscribers) == 0 {
		s.metrics.UnitScanned(metrics.ResultSkipped)
		return
	}

	if err = pacer.Wait(ctx); err != nil {
		log.InfoContext(ctx, "Unit pacing is interrupted",
			"error", err,
			"unit", unit.Name)

		return
	}

	// A started unit runs to completion even when the loop is stopping.
	unitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.UnitTimeout)
	defer cancel()

	announcements, err := s.scanner.Scan(unitCtx, unit, s.opts.FetchLimit)
	if err != nil {
		s.metrics.UnitScanned(metrics.ResultFailed)
		logScanError(unitCtx, log, unit, err)

		return
	}

	s.metrics.UnitScanned(metrics.ResultOK)
	s.metrics.AnnouncementsFound(unit.Name, len(announcements))

	for _, a := range announcements {
		text := message.Announcement(unit.Name, a)

		for _, subscriberID := range subscribers {
			s.deliver(unitCtx, log, unit.Name, subscriberID, text)
		}

		s.markSent(unitCtx, log, unit.Name, a)
	}

	if len(announcements) > 0 {
		log.InfoContext(unitCtx, "New announcements are delivered",
			"unit", unit.Name,
			"announcements", len(announcements),
			"subscribers", len(subscribers))
	}
}

func (s *Scheduler) deliver(
	ctx context.Context,
	log *slog.Logger,
	unitName string,
	subscriberID int64,
	text string,
) {
	err := s.sink.Deliver(ctx, subscriberID, text)
	s.metrics.Delivered(err)

	if err != nil {
		log.ErrorContext(ctx, "Failed to deliver announcement",
			"error", err,
			"unit", unitName,
			"subscriberID", subscriberID)
	}
}

func (s *Scheduler) markSent(
	ctx context.Context,
	log *slog.Logger,
	unitName string,
	a domain.Announcement,
) {
	if err := s.store.MarkSent(ctx, unitName, a.Fingerprint, a.Title); err != nil {
		log.ErrorContext(ctx, "Failed to mark announcement as sent",
			"error", err,
			"unit", unitName,
			"fingerprint", a.Fingerprint)
	}
}

func logScanError(ctx context.Context, log *slog.Logger, unit domain.Unit, err error) {
	var fetchErr *scraper.FetchError
	if errors.As(err, &fetchErr) {
		log.WarnContext(ctx, "Failed to fetch unit page",
			"error", err,
			"unit", unit.Name,
			"url", unit.URL,
			"kind", fetchErr.Kind.String(),
			"statusCode", fetchErr.StatusCode,
			"timeout", fetchErr.Timeout())

		return
	}

	log.ErrorContext(ctx, "Failed to scan unit",
		"error", err,
		"unit", unit.Name,
		"url", unit.URL)
}
