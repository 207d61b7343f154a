package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // Embedded zone database for TIMEZONE on minimal images.

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Token        string  `env:"TOKEN,required,notEmpty"`
	AllowedUsers []int64 `env:"ALLOWED_USERS"`
	DBPath       string  `env:"DB_PATH"                 envDefault:"db.sqlite"`
	UnitsFile    string  `env:"UNITS_FILE"`

	CheckInterval time.Duration `env:"CHECK_INTERVAL" envDefault:"30m"`
	UnitPacing    time.Duration `env:"UNIT_PACING"    envDefault:"2s"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT"  envDefault:"10s"`

	FetchLimit    int `env:"FETCH_LIMIT"     envDefault:"5"`
	OnDemandLimit int `env:"ON_DEMAND_LIMIT" envDefault:"3"`
	PrimeLimit    int `env:"PRIME_LIMIT"     envDefault:"2"`
	RetentionDays int `env:"RETENTION_DAYS"  envDefault:"30"`

	MaintenanceSpec   string `env:"MAINTENANCE_SPEC"    envDefault:"0 2 * * *"`
	Timezone          string `env:"TIMEZONE"            envDefault:"Europe/Istanbul"`
	DetailPathPattern string `env:"DETAIL_PATH_PATTERN" envDefault:"/duyuru/detay/"`
	UserAgent         string `env:"USER_AGENT"`

	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err = cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(strings.TrimSpace(c.Timezone))
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) validate() error {
	switch {
	case c.CheckInterval <= 0:
		return fmt.Errorf("CHECK_INTERVAL must be positive, got %s", c.CheckInterval)
	case c.UnitPacing < 0:
		return fmt.Errorf("UNIT_PACING must not be negative, got %s", c.UnitPacing)
	case c.FetchTimeout <= 0:
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	case c.RetentionDays <= 0:
		return fmt.Errorf("RETENTION_DAYS must be positive, got %d", c.RetentionDays)
	case strings.TrimSpace(c.DetailPathPattern) == "":
		return fmt.Errorf("DETAIL_PATH_PATTERN must not be empty")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("load TIMEZONE %q: %w", c.Timezone, err)
	}

	return nil
}
