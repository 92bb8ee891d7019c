// Package config reads the process settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the statblock commands. Command
// line flags override it.
type Config struct {
	AmbientLocale string        `env:"STATBLOCK_LOCALE"`
	Debug         bool          `env:"STATBLOCK_DEBUG"`
	Dark          bool          `env:"STATBLOCK_DARK"`
	Debounce      time.Duration `env:"STATBLOCK_DEBOUNCE" envDefault:"100ms"`
	MetricsAddr   string        `env:"STATBLOCK_METRICS_ADDR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config of the current environment.
func Load() (*Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Locale returns the ambient locale. Config is a traits.LocaleSource.
func (c *Config) Locale() string {
	return c.AmbientLocale
}

// LogLevel is Debug when debugging and Warn otherwise.
func (c *Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
