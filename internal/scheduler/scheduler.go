package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"announcer/internal/domain"
	"announcer/internal/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultInterval        = 30 * time.Minute
	DefaultPacing          = 2 * time.Second
	DefaultFetchLimit      = 5
	DefaultOnDemandLimit   = 3
	DefaultPrimeLimit      = 2
	DefaultRetentionDays   = 30
	DefaultMaintenanceSpec = "0 2 * * *"

	defaultUnitTimeout  = 5 * time.Minute
	defaultPanicBackoff = 60 * time.Second
	sweepTimeout        = 5 * time.Minute
)

var ErrUnknownUnit = errors.New("unknown unit")

type Registry interface {
	Units() []domain.Unit
	Unit(name string) (domain.Unit, bool)
}

type Scanner interface {
	Scan(ctx context.Context, unit domain.Unit, limit int) ([]domain.Announcement, error)
}

type Store interface {
	MarkSent(ctx context.Context, unit string, fingerprint string, title string) error
	SweepOlderThan(ctx context.Context, retentionDays int) (int64, error)
}

type Directory interface {
	SubscribersOf(ctx context.Context, unit string) ([]int64, error)
}

type Sink interface {
	Deliver(ctx context.Context, subscriberID int64, text string) error
}

type Deps struct {
	Registry  Registry
	Scanner   Scanner
	Store     Store
	Directory Directory
	Sink      Sink
	Metrics   *metrics.Metrics
}

type Options struct {
	Interval        time.Duration
	Pacing          time.Duration
	FetchLimit      int
	OnDemandLimit   int
	PrimeLimit      int
	RetentionDays   int
	MaintenanceSpec string
	Location        *time.Location

	// UnitTimeout bounds one unit's scan and fan-out, including the unit
	// still in flight when the loop is asked to stop.
	UnitTimeout  time.Duration
	PanicBackoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Pacing < 0 {
		o.Pacing = 0
	}
	if o.FetchLimit <= 0 {
		o.FetchLimit = DefaultFetchLimit
	}
	if o.OnDemandLimit <= 0 {
		o.OnDemandLimit = DefaultOnDemandLimit
	}
	if o.PrimeLimit <= 0 {
		o.PrimeLimit = DefaultPrimeLimit
	}
	if o.RetentionDays <= 0 {
		o.RetentionDays = DefaultRetentionDays
	}
	if o.MaintenanceSpec == "" {
		o.MaintenanceSpec = DefaultMaintenanceSpec
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.UnitTimeout <= 0 {
		o.UnitTimeout = defaultUnitTimeout
	}
	if o.PanicBackoff <= 0 {
		o.PanicBackoff = defaultPanicBackoff
	}

	return o
}

type Scheduler struct {
	ctx       context.Context
	cron      *cron.Cron
	registry  Registry
	scanner   Scanner
	store     Store
	directory Directory
	sink      Sink
	metrics   *metrics.Metrics
	opts      Options
	log       *slog.Logger
}

func New(ctx context.Context, deps Deps, opts Options, log *slog.Logger) *Scheduler {
	opts = opts.withDefaults()

	return &Scheduler{
		ctx:       ctx,
		cron:      cron.New(cron.WithLocation(opts.Location)),
		registry:  deps.Registry,
		scanner:   deps.Scanner,
		store:     deps.Store,
		directory: deps.Directory,
		sink:      deps.Sink,
		metrics:   deps.Metrics,
		opts:      opts,
		log:       log,
	}
}

// Start schedules the daily retention sweep.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.opts.MaintenanceSpec, s.sweepJob); err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep removes dedup records older than the retention window.
func (s *Scheduler) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.store.SweepOlderThan(ctx, s.opts.RetentionDays)
	if err != nil {
		return 0, fmt.Errorf("sweep sent announcements: %w", err)
	}

	s.metrics.Swept(removed)

	return removed, nil
}

func (s *Scheduler) sweepJob() {
	ctx, cancel := context.WithTimeout(s.ctx, sweepTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	removed, err := s.Sweep(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to sweep sent announcements",
			"error", err,
			"retentionDays", s.opts.RetentionDays)

		return
	}

	s.log.InfoContext(ctx, "Sent announcements are swept",
		"removed", removed,
		"retentionDays", s.opts.RetentionDays)
}
