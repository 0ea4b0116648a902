package assessment

import (
	"math"
	"strconv"
	"strings"
)

// CheckAnswer compares a learner's input against the question's correct answer.
// graded is false when the answer cannot be checked mechanically (subjective
// questions, or a question without a stored answer); correct is then false.
//
// Normalization rules:
// - Whitespace is trimmed and comparison is case-insensitive
// - For mcq: matches the option text or its 1-based index
// - For numerical: values are compared as floats ("3.50" matches "3.5")
func CheckAnswer(q *Question, given string) (correct, graded bool) {
	given = strings.TrimSpace(given)
	if strings.TrimSpace(q.Correct) == "" {
		return false, false
	}

	switch q.Type {
	case TypeMCQ:
		return checkChoice(q, given), true
	case TypeNumerical:
		return checkNumber(q.Correct, given), true
	case TypeSubjective:
		return false, false
	default:
		if given == "" {
			return false, true
		}
		return strings.EqualFold(given, strings.TrimSpace(q.Correct)), true
	}
}

func checkChoice(q *Question, given string) bool {
	if given == "" {
		return false
	}
	if idx, err := strconv.Atoi(given); err == nil && idx >= 1 && idx <= len(q.Options) {
		return strings.EqualFold(strings.TrimSpace(q.Options[idx-1]), strings.TrimSpace(q.Correct))
	}
	return strings.EqualFold(given, strings.TrimSpace(q.Correct))
}

func checkNumber(want, given string) bool {
	g, err := strconv.ParseFloat(given, 64)
	if err != nil {
		return false
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(want), 64)
	if err != nil {
		return false
	}
	tol := 1e-9 * math.Max(1, math.Abs(w))
	return math.Abs(g-w) <= tol
}
