package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"announcer/internal/bot"
	"announcer/internal/config"
	"announcer/internal/database"
	"announcer/internal/metrics"
	"announcer/internal/ratelimiter"
	"announcer/internal/scheduler"
	"announcer/internal/scraper"
	"announcer/internal/units"

	"github.com/joho/godotenv"
)

const (
	metricsReadHeaderTimeout = 5 * time.Second
	shutdownTimeout          = 30 * time.Second
)

func main() {
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	switch {
	case envErr == nil:
		log.InfoContext(ctx, ".env file is loaded")
	case errors.Is(envErr, fs.ErrNotExist):
		log.DebugContext(ctx, ".env file is missing, using process environment")
	default:
		log.WarnContext(ctx, "Failed to load .env file",
			"error", envErr)
	}

	location, err := cfg.Location()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load time zone",
			"error", err,
			"timezone", cfg.Timezone)

		return
	}

	registry, err := units.Load(cfg.UnitsFile)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load units",
			"error", err,
			"unitsFile", cfg.UnitsFile)

		return
	}
	log.InfoContext(ctx, "Units are loaded",
		"count", len(registry.Names()),
		"unitsFile", cfg.UnitsFile)

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	api, err := bot.NewAPI(cfg.Token)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to Telegram",
			"error", err)

		return
	}

	limiter := ratelimiter.New(api, log)
	defer limiter.Stop()

	m := metrics.New()

	scanner := scraper.NewScanner(
		scraper.NewFetcher(cfg.FetchTimeout, cfg.UserAgent, log),
		scraper.NewExtractor(cfg.DetailPathPattern, log),
		db,
		log,
	)

	sched := scheduler.New(ctx, scheduler.Deps{
		Registry:  registry,
		Scanner:   scanner,
		Store:     db,
		Directory: db,
		Sink:      bot.NewNotifier(limiter, db, log),
		Metrics:   m,
	}, scheduler.Options{
		Interval:        cfg.CheckInterval,
		Pacing:          cfg.UnitPacing,
		FetchLimit:      cfg.FetchLimit,
		OnDemandLimit:   cfg.OnDemandLimit,
		PrimeLimit:      cfg.PrimeLimit,
		RetentionDays:   cfg.RetentionDays,
		MaintenanceSpec: cfg.MaintenanceSpec,
		Location:        location,
	}, log)

	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", cfg.MaintenanceSpec,
			"timezone", location.String())

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", cfg.MaintenanceSpec,
		"timezone", location.String())

	botInst := bot.New(api, limiter, db, sched, registry, cfg.AllowedUsers, log)

	var wg sync.WaitGroup

	wg.Go(func() {
		botInst.Start(ctx)
	})
	log.InfoContext(ctx, "Bot is started",
		"updateTimeoutSeconds", bot.BotUpdateTimeout,
		"allowedUsersCount", len(cfg.AllowedUsers))

	wg.Go(func() {
		if runErr := sched.Run(ctx); runErr != nil {
			log.ErrorContext(ctx, "Scheduler loop failed",
				"error", runErr)
		}
	})

	metricsServer := startMetricsServer(ctx, cfg.MetricsAddr, m, log)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if metricsServer != nil {
		if err = metricsServer.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(shutdownCtx, "Failed to shut down metrics server",
				"error", err)
		}
	}

	wg.Wait()

	log.InfoContext(shutdownCtx, "Exiting...",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())
}

func startMetricsServer(ctx context.Context, addr string, m *metrics.Metrics, log *slog.Logger) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Metrics server failed",
				"error", err,
				"addr", addr)
		}
	}()

	log.InfoContext(ctx, "Metrics server is started",
		"addr", addr)

	return srv
}
