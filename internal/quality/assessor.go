package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/logging"
)

// QuestionQualityAssessor gives a second opinion on a question, usually
// from a language model. Errors are never fatal to validation.
type QuestionQualityAssessor interface {
	Assess(ctx context.Context, q *assessment.Question, cfg assessment.Config) (*Assessment, error)
}

// Assessment is an assessor's verdict.
type Assessment struct {
	IsValid  bool    `json:"isValid"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// AssessorFunc adapts a function to QuestionQualityAssessor.
type AssessorFunc func(ctx context.Context, q *assessment.Question, cfg assessment.Config) (*Assessment, error)

func (f AssessorFunc) Assess(ctx context.Context, q *assessment.Question, cfg assessment.Config) (*Assessment, error) {
	return f(ctx, q, cfg)
}

// aiScoreFloor is the assessor score below which the score itself is
// applied as a penalty.
const aiScoreFloor = 0.7

// assessorRule runs the optional AI step. Any failure is logged and the
// rule passes, so the deterministic checks still decide.
type assessorRule struct {
	assessor QuestionQualityAssessor
	timeout  time.Duration
}

func (assessorRule) Name() string { return "ai-assist" }

func (r assessorRule) Check(ctx context.Context, q *assessment.Question, cfg assessment.Config) *Finding {
	if r.assessor == nil {
		return nil
	}

	actx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	a, err := r.assessor.Assess(actx, q, cfg)
	if err == nil && a == nil {
		err = fmt.Errorf("assessor returned no verdict")
	}
	if err != nil {
		log := logging.FromContext(ctx)
		log.Warn().
			Err(err).
			Str("question", q.ID).
			Msg("AI quality check unavailable, using rule-based checks only")
		return nil
	}

	f := &Finding{Factor: 1}
	if !a.IsValid {
		f.Factor *= 0.7
		f.Issues = append(f.Issues, "AI validation failed")
	}
	score := assessment.Clamp(a.Score, 0, 1)
	if score < aiScoreFloor {
		f.Factor *= score
		f.Suggestions = append(f.Suggestions, feedbackSuggestion(score, a.Feedback))
	}
	if f.Factor == 1 && len(f.Issues) == 0 {
		return nil
	}
	return f
}

func feedbackSuggestion(score float64, feedback string) string {
	if feedback == "" {
		return fmt.Sprintf("AI quality score %.2f", score)
	}
	return fmt.Sprintf("AI quality score %.2f: %s", score, feedback)
}
