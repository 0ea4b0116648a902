package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/error402-ai/intellitest/internal/store"
)

// NewProvider builds the configured backend and wraps it as
// caller -> timeout -> retry -> logging -> backend. A nil repo disables
// event logging.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	case "none", "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if repo != nil {
		p = WithLogging(p, repo)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

// NewProviderFromConfig is NewProvider with key discovery: when the
// configured provider has no key, the vendors' standard variables are
// tried. ErrNotConfigured means no key was found anywhere.
func NewProviderFromConfig(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if cfg.Provider != "none" && !cfg.HasKey() {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		discovered.Retry = cfg.Retry
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, repo)
}

// TimeoutProvider bounds every Generate call with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each call is cancelled after d.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
