package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings read from the environment.
type Config struct {
	// DBPath overrides the default database location. Empty means the
	// XDG data directory.
	DBPath string `env:"CRAFTQ_DB"`

	// TickInterval is how often each profession's scheduler recomputes
	// progress and checks for completion.
	TickInterval time.Duration `env:"CRAFTQ_TICK_INTERVAL" envDefault:"100ms"`

	// PromotionDebounce delays promotion of the next queued job so rapid
	// repeated triggers start it only once.
	PromotionDebounce time.Duration `env:"CRAFTQ_PROMOTION_DEBOUNCE" envDefault:"50ms"`

	// DefaultCraftTime replaces a zero recipe duration.
	DefaultCraftTime time.Duration `env:"CRAFTQ_DEFAULT_CRAFT_TIME" envDefault:"5s"`

	// LogMode selects "dev" or "prod" logger output.
	LogMode string `env:"CRAFTQ_LOG_MODE" envDefault:"dev"`

	// LogFile receives log output while the workshop TUI owns the
	// terminal. Empty means craftq.log next to the database.
	LogFile string `env:"CRAFTQ_LOG_FILE"`

	// SnapshotKeep is how many snapshots survive pruning.
	SnapshotKeep int `env:"CRAFTQ_SNAPSHOT_KEEP" envDefault:"5"`
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		TickInterval:      100 * time.Millisecond,
		PromotionDebounce: 50 * time.Millisecond,
		DefaultCraftTime:  5 * time.Second,
		LogMode:           "dev",
		SnapshotKeep:      5,
	}
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the scheduler cannot run with.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("CRAFTQ_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.PromotionDebounce < 0 {
		return fmt.Errorf("CRAFTQ_PROMOTION_DEBOUNCE must not be negative, got %s", c.PromotionDebounce)
	}
	if c.DefaultCraftTime <= 0 {
		return fmt.Errorf("CRAFTQ_DEFAULT_CRAFT_TIME must be positive, got %s", c.DefaultCraftTime)
	}
	if c.SnapshotKeep < 1 {
		return fmt.Errorf("CRAFTQ_SNAPSHOT_KEEP must be at least 1, got %d", c.SnapshotKeep)
	}
	return nil
}
