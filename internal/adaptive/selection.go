package adaptive

import (
	"cmp"
	"math"
	"slices"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// Selection windows around the target difficulty.
const (
	matchWindow    = 0.5
	fallbackWindow = 1.0
	topCandidates  = 3
)

// NextQuestion adjusts the difficulty and picks a question near the new
// target. Candidates within ±0.5 at the configured Bloom's level are
// preferred; failing that, any level within ±1 is drawn at random. A nil
// question means the pool is exhausted. The adjustment is returned either
// way.
func (c *Controller) NextQuestion(m assessment.Metrics, recent []assessment.Answer, cfg assessment.Config, pool []assessment.Question) (*assessment.Question, assessment.Adjustment) {
	adj := c.AdjustDifficulty(m, recent, cfg)
	return c.QuestionNear(adj.NewDifficulty, adj.Confidence, cfg.BloomsLevel, pool), adj
}

// QuestionNear picks a question for target without adjusting it, using the
// same windows as NextQuestion. It returns nil when nothing is within ±1.
func (c *Controller) QuestionNear(target, confidence float64, level assessment.BloomsLevel, pool []assessment.Question) *assessment.Question {
	matched := filter(pool, func(q assessment.Question) bool {
		return math.Abs(q.Difficulty-target) <= matchWindow && q.BloomsLevel == level
	})
	if len(matched) > 0 {
		return c.SelectOptimalQuestion(matched, target, confidence)
	}

	widened := filter(pool, func(q assessment.Question) bool {
		return math.Abs(q.Difficulty-target) <= fallbackWindow
	})
	if len(widened) == 0 {
		return nil
	}
	q := widened[c.intN(len(widened))]
	return &q
}

// SelectOptimalQuestion returns the candidate closest to target when
// confidence exceeds ConfidenceThreshold, otherwise a random one of the
// three closest. It returns nil for no candidates.
func (c *Controller) SelectOptimalQuestion(candidates []assessment.Question, target, confidence float64) *assessment.Question {
	if len(candidates) == 0 {
		return nil
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b assessment.Question) int {
		return cmp.Compare(math.Abs(a.Difficulty-target), math.Abs(b.Difficulty-target))
	})

	pick := 0
	if confidence <= ConfidenceThreshold {
		pick = c.intN(min(topCandidates, len(sorted)))
	}
	q := sorted[pick]
	return &q
}

func filter(pool []assessment.Question, keep func(assessment.Question) bool) []assessment.Question {
	var out []assessment.Question
	for _, q := range pool {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
