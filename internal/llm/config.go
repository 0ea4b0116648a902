package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// EnvPrefix prefixes every variable read by ConfigFromEnv.
const EnvPrefix = "INTELLITEST_"

// Config holds LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// "mock" or "none". "none" disables AI assessment entirely.
	Provider string `env:"LLM_PROVIDER" envDefault:"anthropic"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"LLM_RETRY_"`

	// Timeout bounds a single logical request, retries included.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the configuration with every default applied and
// nothing read from the environment.
func DefaultConfig() Config {
	cfg, err := parseConfig(map[string]string{})
	if err != nil {
		// Defaults are literals above; a parse failure is a programming error.
		panic(err)
	}
	return cfg
}

// ConfigFromEnv reads INTELLITEST_* variables over the defaults.
func ConfigFromEnv() (Config, error) {
	return parseConfig(nil)
}

// parseConfig parses environ, or the process environment when nil.
func parseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig probes the vendors' standard API key variables in order
// (Anthropic, OpenAI, Gemini, OpenRouter) and returns a config for the
// first key found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// HasKey reports whether the selected provider has credentials.
func (c Config) HasKey() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Validate checks that the selected provider is known and has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock", "none":
		return nil
	case "anthropic", "openai", "gemini", "openrouter":
		if !c.HasKey() {
			return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
				EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
