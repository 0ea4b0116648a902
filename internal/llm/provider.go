package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by every LLM backend. IntelliTest only ever asks
// for structured JSON, so callers always receive Content as raw JSON.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set, the backend
	// uses its native structured-output mechanism and the returned Content
	// has already been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model identifier.
	ModelID() string
}

// Request is a single structured-generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the response. Nil means free text, returned as a
	// JSON string.
	Schema *Schema

	MaxTokens int

	// Temperature ranges 0.0-1.0. Quality checks run at 0.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "question-quality". It doubles as the
	// Anthropic tool name and the OpenAI schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}
