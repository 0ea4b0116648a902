package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/error402-ai/intellitest/internal/store"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(map[string]any{"b": 2}),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` || resp1.Usage.InputTokens != 10 || resp1.StopReason != "end" {
		t.Fatalf("unexpected first response: %+v", resp1)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable once drained, got: %T", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"isValid": true}))
	_, err := mock.Generate(context.Background(), Request{Schema: testSchemaQuality()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, PurposeQualityCheck)
	if p := PurposeFrom(ctx); p != "quality-check" {
		t.Fatalf("expected 'quality-check', got %q", p)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-haiku" || cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected default models: %+v / %+v", cfg.Anthropic, cfg.OpenAI)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.InitialWait != time.Second || cfg.Retry.Multiplier != 2 {
		t.Errorf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := parseConfig(map[string]string{
		"INTELLITEST_LLM_PROVIDER":           "openai",
		"INTELLITEST_OPENAI_API_KEY":         "sk-test",
		"INTELLITEST_OPENAI_BASE_URL":        "http://localhost:8080/v1",
		"INTELLITEST_LLM_RETRY_MAX_ATTEMPTS": "5",
		"INTELLITEST_LLM_TIMEOUT":            "5s",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("unexpected openai config: %+v", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default model lost: %q", cfg.OpenAI.Model)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected retry/timeout: %+v %s", cfg.Retry, cfg.Timeout)
	}

	if _, err := parseConfig(map[string]string{"INTELLITEST_LLM_TIMEOUT": "soon"}); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("unexpected discovery: %+v, %v", cfg, ok)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"none disables", Config{Provider: "none"}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Provider: "mock", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	p, err = NewProvider(ctx, Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k", Model: "openai/gpt-4o-mini"}}, nil)
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if p.ModelID() != "openai/gpt-4o-mini" {
		t.Errorf("model = %q", p.ModelID())
	}

	if _, err := NewProvider(ctx, Config{Provider: "none"}, nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewProvider(ctx, Config{Provider: "openai"}, nil); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestNewProviderFromConfig_NoKeys(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, err := NewProviderFromConfig(context.Background(), DefaultConfig(), nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockJSON(map[string]any{"isValid": true, "score": 0.9}))
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), PurposeQualityCheck)
	req := UserPrompt("Review.", "What is a B-tree?", testSchemaQuality(), 128)

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error from drained mock")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "quality-check" || ok.InputTokens != 120 || ok.Model != "mock" {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if ok.ResponseBody == "" || ok.RequestBody == "" {
		t.Error("expected request and response bodies to be recorded")
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("unexpected failure event: %+v", failed)
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockJSON(map[string]any{"ok": true})), repo)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("repo failure leaked into request: %v", err)
	}
}

func TestTotalCost(t *testing.T) {
	total, unpriced := TotalCost([]store.ModelUsage{
		{Model: "gpt-4o-mini", Calls: 10, InputTokens: 1_000_000, OutputTokens: 1_000_000},
		{Model: "mock", Calls: 3},
	})
	if total < 0.7499 || total > 0.7501 {
		t.Errorf("total = %v, want 0.75", total)
	}
	if len(unpriced) != 1 || unpriced[0] != "mock" {
		t.Errorf("unpriced = %v", unpriced)
	}
	if LookupCost("nope") != nil {
		t.Error("expected nil for unknown model")
	}
}
