// Package config loads application settings from INTELLITEST_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/error402-ai/intellitest/internal/llm"
)

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

// App holds runtime configuration shared by every command.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"intellitest"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DBPath overrides the default database location when set.
	DBPath string `env:"DB"`

	// Seed makes question selection reproducible. Zero means time-seeded.
	Seed uint64 `env:"SEED"`

	Quality Quality `envPrefix:"QUALITY_"`
	LLM     llm.Config
}

// Quality configures the question quality checks.
type Quality struct {
	// AICheck enables the LLM-backed quality assessor.
	AICheck   bool          `env:"AI_CHECK" envDefault:"false"`
	AITimeout time.Duration `env:"AI_TIMEOUT" envDefault:"10s"`
}

// Load reads envFile (ignored when missing) and then parses the process
// environment into App.
func Load(envFile string) (*App, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return parse(nil)
}

// parse parses environ, or the process environment when nil.
func parse(environ map[string]string) (*App, error) {
	cfg := &App{}
	opts := env.Options{Prefix: llm.EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that the parser cannot.
func (a *App) Validate() error {
	if _, err := zerolog.ParseLevel(a.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.LogLevel, err)
	}
	if a.Quality.AITimeout <= 0 {
		return fmt.Errorf("quality AI timeout must be positive, got %s", a.Quality.AITimeout)
	}
	return nil
}
