package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// PurposeQualityCheck labels the AI-assisted question review.
const PurposeQualityCheck = "quality-check"

// WithPurpose labels the LLM calls made with ctx, so the event log can be
// grouped by what the call was for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
