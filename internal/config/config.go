// internal/config/config.go
//
// Process configuration.
//
// Sources, later wins:
//   1. Defaults declared on the struct tags below.
//   2. A `.env` file in the working directory (development only).
//   3. The process environment.
//   4. Command-line flags, applied by the CLI after Load.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/guessr/internal/game"
)

// Config holds every setting the binary reads from the environment.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	NumericMin int `env:"GUESSR_NUMERIC_MIN" envDefault:"1"`
	NumericMax int `env:"GUESSR_NUMERIC_MAX" envDefault:"50"`

	// Empty means the embedded default table.
	WordsFile string `env:"GUESSR_WORDS_FILE"`

	// Empty disables the audit log.
	AuditDB string `env:"GUESSR_AUDIT_DB"`

	// Empty disables the live inspector during play.
	InspectAddr string `env:"GUESSR_INSPECT_ADDR"`

	Seed string `env:"GUESSR_SEED" envDefault:"guessr"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses the environment without touching .env files.
func FromEnv() (Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the settings that have no safe fallback.
func (c Config) Validate() error {
	var errs []error
	if err := c.Game().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// Game returns the per-session game configuration.
func (c Config) Game() game.Config {
	return game.Config{Min: c.NumericMin, Max: c.NumericMax}
}

// Level returns the zerolog level, falling back to warn.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}
