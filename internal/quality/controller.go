// Package quality decides whether generated questions are fit for an
// assessment. Scoring is a multiplicative pipeline starting at 1.0; any
// reported issue vetoes the question regardless of its score.
package quality

import (
	"context"
	"strings"
	"time"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/logging"
)

// MinValidScore is the lowest final score a valid question may have.
const MinValidScore = 0.6

// Duplicate thresholds.
const (
	JaccardThreshold  = 0.8
	SemanticThreshold = 0.85
)

// DefaultAssessorTimeout bounds a single AI quality check.
const DefaultAssessorTimeout = 10 * time.Second

// Controller scores questions and detects duplicates. It holds no mutable
// state and is safe for concurrent use.
type Controller struct {
	rules      []Rule
	similarity SimilarityScorer

	bannedTerms []string
	timeout     time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithSimilarityScorer replaces the semantic-similarity step.
func WithSimilarityScorer(s SimilarityScorer) Option {
	return func(c *Controller) { c.similarity = s }
}

// WithAssessorTimeout bounds each assessor call. Zero disables the bound.
func WithAssessorTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithBannedTerms replaces DefaultBannedTerms.
func WithBannedTerms(terms []string) Option {
	return func(c *Controller) { c.bannedTerms = terms }
}

// New creates a Controller. assessor may be nil, in which case only the
// rule-based checks run.
func New(assessor QuestionQualityAssessor, opts ...Option) *Controller {
	c := &Controller{
		similarity:  JaccardScorer{},
		bannedTerms: DefaultBannedTerms,
		timeout:     DefaultAssessorTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rules = []Rule{
		LengthRule{},
		BannedTermsRule{Terms: c.bannedTerms},
		OptionsRule{},
		PromptFormRule{},
		assessorRule{assessor: assessor, timeout: c.timeout},
		BloomsRule{},
		DifficultyRule{},
		BiasRule{},
	}
	return c
}

// Validate scores q against cfg. It never fails: an unavailable assessor
// only removes the AI step.
func (c *Controller) Validate(ctx context.Context, q *assessment.Question, cfg assessment.Config) assessment.QualityResult {
	res := assessment.QualityResult{
		Score:       1,
		Issues:      []string{},
		Suggestions: []string{},
	}
	if q == nil {
		q = &assessment.Question{}
	}

	log := logging.FromContext(ctx)
	for _, r := range c.rules {
		f := r.Check(ctx, q, cfg)
		if f == nil {
			continue
		}
		log.Debug().Str("rule", r.Name()).Str("question", q.ID).Float64("factor", f.Factor).Msg("quality rule fired")

		res.Score *= f.Factor
		res.Issues = append(res.Issues, f.Issues...)
		res.Suggestions = append(res.Suggestions, f.Suggestions...)
	}

	res.Score = assessment.Clamp(res.Score, 0, 1)
	res.IsValid = res.Score >= MinValidScore && len(res.Issues) == 0
	return res
}

// CheckDuplicate reports whether q duplicates any of existing: the same
// text ignoring case, word-set Jaccard above JaccardThreshold, or semantic
// similarity above SemanticThreshold. A failing similarity scorer is
// logged and that comparison skipped.
func (c *Controller) CheckDuplicate(ctx context.Context, q assessment.Question, existing []assessment.Question) bool {
	text := strings.TrimSpace(q.Text)

	for _, e := range existing {
		other := strings.TrimSpace(e.Text)
		if strings.EqualFold(text, other) {
			return true
		}
		if Jaccard(text, other) > JaccardThreshold {
			return true
		}
		if c.similarity == nil {
			continue
		}
		sim, err := c.similarity.Similarity(ctx, text, other)
		if err != nil {
			log := logging.FromContext(ctx)
			log.Warn().Err(err).Str("question", q.ID).Msg("semantic similarity check failed")
			continue
		}
		if sim > SemanticThreshold {
			return true
		}
	}
	return false
}
