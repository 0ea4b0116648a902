package quality

import (
	"context"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// Rule is one step of the multiplicative scoring pipeline. Rules must be
// stateless and safe for concurrent use.
type Rule interface {
	// Name identifies the rule in logs, e.g. "length", "bias".
	Name() string

	// Check returns nil when the question passes. Otherwise the finding's
	// factor is multiplied into the score and its issues and suggestions
	// are appended to the result.
	Check(ctx context.Context, q *assessment.Question, cfg assessment.Config) *Finding
}

// Finding is what a rule reports against a question.
type Finding struct {
	Factor      float64
	Issues      []string
	Suggestions []string
}

// issue is a finding with a single issue.
func issue(factor float64, msg string) *Finding {
	return &Finding{Factor: factor, Issues: []string{msg}}
}
