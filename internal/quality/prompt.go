package quality

import (
	"fmt"
	"strings"

	"github.com/error402-ai/intellitest/internal/assessment"
)

const assessorSystemPrompt = `You review questions for educational assessments.
Judge one question for clarity, answerability, factual soundness, neutral wording,
and fit with the requested Bloom's taxonomy level and difficulty.
Return isValid=false only for questions a teacher should not use as written.
score is your overall quality estimate from 0 (unusable) to 1 (excellent).
feedback is one sentence a question author can act on.`

func buildAssessPrompt(q *assessment.Question, cfg assessment.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Type: %s\n", q.Type)
	if len(q.Options) > 0 {
		b.WriteString("Options:\n")
		for i, o := range q.Options {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
		}
	}
	if q.Correct != "" {
		fmt.Fprintf(&b, "Correct answer: %s\n", q.Correct)
	}
	fmt.Fprintf(&b, "Target Bloom's level: %s\n", cfg.BloomsLevel)
	fmt.Fprintf(&b, "Target difficulty (1-5): %g\n", cfg.Difficulty)
	if cfg.FocusAreas != "" {
		fmt.Fprintf(&b, "Focus areas: %s\n", cfg.FocusAreas)
	}

	return b.String()
}
