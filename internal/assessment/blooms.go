package assessment

import (
	"fmt"
	"strings"
)

// BloomsLevel is one of the six ordered categories of Bloom's taxonomy.
type BloomsLevel string

const (
	Remember   BloomsLevel = "remember"
	Understand BloomsLevel = "understand"
	Apply      BloomsLevel = "apply"
	Analyze    BloomsLevel = "analyze"
	Evaluate   BloomsLevel = "evaluate"
	Create     BloomsLevel = "create"
)

// BloomsLevels lists every level from lowest to highest cognitive demand.
var BloomsLevels = []BloomsLevel{Remember, Understand, Apply, Analyze, Evaluate, Create}

// bloomsKeywords maps each level to the verbs expected in a question
// targeting it.
var bloomsKeywords = map[BloomsLevel][]string{
	Remember:   {"what", "define", "list", "identify", "recall", "name"},
	Understand: {"explain", "describe", "summarize", "interpret", "classify"},
	Apply:      {"apply", "solve", "use", "demonstrate", "calculate"},
	Analyze:    {"analyze", "examine", "compare", "contrast", "differentiate"},
	Evaluate:   {"evaluate", "judge", "critique", "justify", "assess"},
	Create:     {"create", "design", "develop", "formulate", "construct"},
}

// Keywords returns the keyword set for the level, or nil for an unknown level.
func (l BloomsLevel) Keywords() []string {
	return bloomsKeywords[l]
}

// Rank returns the 1-based position of the level in the taxonomy, 0 if unknown.
func (l BloomsLevel) Rank() int {
	for i, lvl := range BloomsLevels {
		if lvl == l {
			return i + 1
		}
	}
	return 0
}

// HigherOrder reports whether the level is evaluate or create.
func (l BloomsLevel) HigherOrder() bool {
	return l == Evaluate || l == Create
}

// ParseBloomsLevel parses a level name case-insensitively.
func ParseBloomsLevel(s string) (BloomsLevel, error) {
	l := BloomsLevel(strings.ToLower(strings.TrimSpace(s)))
	if l.Rank() == 0 {
		return "", fmt.Errorf("unknown Bloom's level %q", s)
	}
	return l, nil
}

// ParseQuestionType parses a question type case-insensitively.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeMCQ, TypeSubjective, TypeNumerical, TypeMixed:
		return t, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}
