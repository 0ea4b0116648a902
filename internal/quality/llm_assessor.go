package quality

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/llm"
)

// AssessmentSchema is the structured response requested from the model.
var AssessmentSchema = &llm.Schema{
	Name:        "question-quality",
	Description: "Quality verdict for a single assessment question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isValid": map[string]any{
				"type":        "boolean",
				"description": "Whether the question can be used as written",
			},
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "Overall quality from 0 to 1",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One actionable sentence for the question author",
			},
		},
		"required":             []any{"isValid", "score", "feedback"},
		"additionalProperties": false,
	},
}

// LLMAssessor asks a language model for a quality verdict.
type LLMAssessor struct {
	provider  llm.Provider
	maxTokens int
}

// NewLLMAssessor creates an assessor on top of provider.
func NewLLMAssessor(provider llm.Provider) *LLMAssessor {
	return &LLMAssessor{provider: provider, maxTokens: 300}
}

func (a *LLMAssessor) Assess(ctx context.Context, q *assessment.Question, cfg assessment.Config) (*Assessment, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQualityCheck)

	req := llm.UserPrompt(assessorSystemPrompt, buildAssessPrompt(q, cfg), AssessmentSchema, a.maxTokens)
	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quality check: %w", err)
	}

	var out Assessment
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quality check response: %w", err)
	}
	return &out, nil
}
