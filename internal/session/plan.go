package session

import (
	"github.com/google/uuid"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// Plan is the question pool a session draws from.
type Plan struct {
	Questions []assessment.Question

	// Dropped counts candidates excluded by type or as repeated IDs.
	Dropped int
}

// BuildPlan selects the questions of the configured type (all types for a
// mixed config) and gives every question a unique ID. Questions keep their
// input order.
func BuildPlan(cfg assessment.Config, candidates []assessment.Question) *Plan {
	plan := &Plan{}
	seen := make(map[string]bool, len(candidates))

	for _, q := range candidates {
		if cfg.QuestionType != assessment.TypeMixed && q.Type != cfg.QuestionType {
			plan.Dropped++
			continue
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if seen[q.ID] {
			plan.Dropped++
			continue
		}
		seen[q.ID] = true
		plan.Questions = append(plan.Questions, q)
	}
	return plan
}
