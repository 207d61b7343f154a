package scheduler

import (
	"context"
	"errors"
	"fmt"

	"announcer/internal/message"
)

// CheckNow scans unitName for subscriberID alone and returns the number of
// new announcements. Every attempted announcement is marked as sent even if
// its delivery failed.
func (s *Scheduler) CheckNow(ctx context.Context, unitName string, subscriberID int64) (int, error) {
	unit, ok := s.registry.Unit(unitName)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, unitName)
	}

	announcements, err := s.scanner.Scan(ctx, unit, s.opts.OnDemandLimit)
	if err != nil {
		return 0, fmt.Errorf("scan unit: %w", err)
	}

	s.metrics.AnnouncementsFound(unit.Name, len(announcements))

	for _, a := range announcements {
		s.deliver(ctx, s.log, unit.Name, subscriberID, message.Announcement(unit.Name, a))
		s.markSent(ctx, s.log, unit.Name, a)
	}

	s.log.InfoContext(ctx, "On-demand check is finished",
		"unit", unit.Name,
		"subscriberID", subscriberID,
		"announcements", len(announcements))

	return len(announcements), nil
}

// Prime marks the current head of unitName's listing as sent without
// delivering it, so that a new subscriber only gets later announcements.
func (s *Scheduler) Prime(ctx context.Context, unitName string) (int, error) {
	unit, ok := s.registry.Unit(unitName)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, unitName)
	}

	announcements, err := s.scanner.Scan(ctx, unit, s.opts.PrimeLimit)
	if err != nil {
		return 0, fmt.Errorf("scan unit: %w", err)
	}

	var (
		marked int
		errs   []error
	)

	for _, a := range announcements {
		if err = s.store.MarkSent(ctx, unit.Name, a.Fingerprint, a.Title); err != nil {
			errs = append(errs, fmt.Errorf("mark %s: %w", a.Fingerprint, err))
			continue
		}

		marked++
	}

	return marked, errors.Join(errs...)
}
