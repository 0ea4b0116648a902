package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("vendor-prefixed model passes through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "openai/gpt-4o-mini"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "openai/gpt-4o-mini" {
			t.Errorf("model = %q, want %q", p.ModelID(), "openai/gpt-4o-mini")
		}
	})

	t.Run("alias is not resolved", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-4o"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-4o" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "google/gemini-2.0-flash-001",
			BaseURL: "https://gateway.example/v1",
		})
		if err != nil || p == nil {
			t.Fatalf("unexpected result: %v, %v", p, err)
		}
	})
}
