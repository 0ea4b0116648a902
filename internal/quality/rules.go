package quality

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// Length bounds in characters.
const (
	MinLength = 10
	MaxLength = 500
)

// DefaultBannedTerms veto a question outright. Matching is by substring,
// so the list avoids terms that occur inside ordinary words.
var DefaultBannedTerms = []string{
	"stupid", "idiot", "moron", "retard",
	"racist", "sexist", "terrorist", "bigot",
}

// BiasWords are absolute terms that suggest a loaded question. They are
// matched as whole words: "all" must not fire on "recall".
var BiasWords = []string{
	"always", "never", "all", "none",
	"obviously", "clearly", "everyone", "nobody",
}

// LengthRule penalizes questions outside [MinLength, MaxLength].
type LengthRule struct{}

func (LengthRule) Name() string { return "length" }

func (LengthRule) Check(_ context.Context, q *assessment.Question, _ assessment.Config) *Finding {
	n := utf8.RuneCountInString(q.Text)
	switch {
	case n < MinLength:
		return issue(0.5, fmt.Sprintf("Question is too short (minimum %d characters)", MinLength))
	case n > MaxLength:
		return issue(0.8, fmt.Sprintf("Question is too long (maximum %d characters)", MaxLength))
	}
	return nil
}

// BannedTermsRule applies a severe, compounding penalty per matched term.
type BannedTermsRule struct {
	Terms []string
}

func (BannedTermsRule) Name() string { return "banned-terms" }

func (r BannedTermsRule) Check(_ context.Context, q *assessment.Question, _ assessment.Config) *Finding {
	text := strings.ToLower(q.Text)

	var f *Finding
	for _, term := range r.Terms {
		if !strings.Contains(text, strings.ToLower(term)) {
			continue
		}
		if f == nil {
			f = &Finding{Factor: 1}
		}
		f.Factor *= 0.3
		f.Issues = append(f.Issues, fmt.Sprintf("Contains inappropriate term: %q", term))
	}
	return f
}

// OptionsRule requires at least two options on multiple-choice questions.
type OptionsRule struct{}

func (OptionsRule) Name() string { return "options" }

func (OptionsRule) Check(_ context.Context, q *assessment.Question, _ assessment.Config) *Finding {
	if q.Type == assessment.TypeMCQ && len(q.Options) < 2 {
		return issue(0.4, "Multiple choice question is missing options")
	}
	return nil
}

// PromptFormRule expects the text to ask something: a question mark or an
// "explain" instruction.
type PromptFormRule struct{}

func (PromptFormRule) Name() string { return "prompt-form" }

func (PromptFormRule) Check(_ context.Context, q *assessment.Question, _ assessment.Config) *Finding {
	if strings.Contains(q.Text, "?") || strings.Contains(strings.ToLower(q.Text), "explain") {
		return nil
	}
	return issue(0.9, "Question should end with a question mark or ask to explain")
}

// BloomsRule checks that the text uses a verb of the target Bloom's level.
type BloomsRule struct{}

func (BloomsRule) Name() string { return "blooms-alignment" }

func (BloomsRule) Check(_ context.Context, q *assessment.Question, cfg assessment.Config) *Finding {
	keywords := cfg.BloomsLevel.Keywords()
	if len(keywords) == 0 {
		return nil
	}

	text := strings.ToLower(q.Text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return nil
		}
	}

	examples := keywords[:min(3, len(keywords))]
	return &Finding{
		Factor:      0.7,
		Issues:      []string{fmt.Sprintf("Question does not align with the %q level of Bloom's taxonomy", cfg.BloomsLevel)},
		Suggestions: []string{"Consider using keywords like: " + strings.Join(examples, ", ")},
	}
}

// DifficultyRule compares the surface-feature estimate with the configured
// difficulty. A mismatch is only a suggestion.
type DifficultyRule struct{}

func (DifficultyRule) Name() string { return "difficulty" }

func (DifficultyRule) Check(_ context.Context, q *assessment.Question, cfg assessment.Config) *Finding {
	est := EstimateDifficulty(q.Text)
	if math.Abs(float64(est)-cfg.Difficulty) <= 1 {
		return nil
	}
	return &Finding{
		Factor: 0.9,
		Suggestions: []string{fmt.Sprintf(
			"Estimated difficulty %d does not match target %g; adjust question complexity", est, cfg.Difficulty)},
	}
}

var complexConcepts = []string{"algorithm", "optimization", "analysis"}

// EstimateDifficulty guesses a 1-5 difficulty from the text alone.
func EstimateDifficulty(text string) int {
	lower := strings.ToLower(text)
	chars := utf8.RuneCountInString(text)

	longWords := 0
	for _, w := range strings.Fields(text) {
		if utf8.RuneCountInString(w) > 8 {
			longWords++
		}
	}

	est := 3
	if longWords > 3 || chars > 200 || containsAny(lower, complexConcepts) {
		est++
	}
	if longWords < 1 && chars < 50 {
		est--
	}
	if containsAny(lower, []string{"analyze", "evaluate"}) {
		est++
	}
	if containsAny(lower, []string{"list", "define"}) {
		est--
	}
	return min(5, max(1, est))
}

// BiasRule flags absolute wording.
type BiasRule struct{}

func (BiasRule) Name() string { return "bias" }

func (BiasRule) Check(_ context.Context, q *assessment.Question, _ assessment.Config) *Finding {
	hits := biasHits(q.Text)
	if len(hits) == 0 {
		return nil
	}
	return &Finding{
		Factor:      0.6,
		Issues:      []string{"Potential bias detected: " + strings.Join(hits, ", ")},
		Suggestions: []string{"Use neutral language and avoid absolute terms"},
	}
}

func biasHits(text string) []string {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		words[w] = true
	}

	var hits []string
	for _, b := range BiasWords {
		if words[b] {
			hits = append(hits, b)
		}
	}
	return hits
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
