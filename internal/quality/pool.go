package quality

import (
	"context"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/logging"
)

// Outcome is the verdict on one candidate.
type Outcome struct {
	Question  assessment.Question
	Result    assessment.QualityResult
	Duplicate bool
}

// Approved reports whether the candidate made it into the pool.
func (o Outcome) Approved() bool {
	return o.Result.IsValid && !o.Duplicate
}

// PoolReport lists outcomes in candidate order.
type PoolReport struct {
	Outcomes []Outcome
}

// Approved returns the accepted questions with their quality score set.
func (r PoolReport) Approved() []assessment.Question {
	var out []assessment.Question
	for _, o := range r.Outcomes {
		if o.Approved() {
			out = append(out, o.Question)
		}
	}
	return out
}

// Rejected returns the outcomes of discarded candidates.
func (r PoolReport) Rejected() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Approved() {
			out = append(out, o)
		}
	}
	return out
}

// FilterPool validates each candidate and drops duplicates of questions
// already approved in this run or present in existing.
func (c *Controller) FilterPool(ctx context.Context, candidates []assessment.Question, cfg assessment.Config, existing ...assessment.Question) PoolReport {
	log := logging.FromContext(ctx)
	accepted := append([]assessment.Question(nil), existing...)

	report := PoolReport{Outcomes: make([]Outcome, 0, len(candidates))}
	for _, cand := range candidates {
		o := Outcome{Question: cand}
		o.Result = c.Validate(ctx, &cand, cfg)
		o.Question.QualityScore = o.Result.Score

		if o.Result.IsValid {
			o.Duplicate = c.CheckDuplicate(ctx, cand, accepted)
		}
		if o.Approved() {
			accepted = append(accepted, o.Question)
		} else {
			log.Info().
				Str("question", cand.ID).
				Float64("score", o.Result.Score).
				Bool("duplicate", o.Duplicate).
				Strs("issues", o.Result.Issues).
				Msg("candidate rejected")
		}
		report.Outcomes = append(report.Outcomes, o)
	}

	log.Info().
		Int("candidates", len(candidates)).
		Int("approved", len(accepted)-len(existing)).
		Msg("question pool filtered")
	return report
}
