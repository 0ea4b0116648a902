package session

import (
	"time"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Difficulty     float64 // difficulty the session ended on
	Levels         []LevelProgress
	Reason         StopReason
}

// BuildSummary creates a Summary from the session so far. Levels are
// listed in taxonomy order and only when attempted.
func BuildSummary(s *Session) *Summary {
	perLevel := make(map[assessment.BloomsLevel]*LevelProgress)
	correct := 0
	for _, a := range s.answers {
		lp := perLevel[a.BloomsLevel]
		if lp == nil {
			lp = &LevelProgress{Level: a.BloomsLevel}
			perLevel[a.BloomsLevel] = lp
		}
		lp.Record(a.IsCorrect)
		if a.IsCorrect {
			correct++
		}
	}

	var levels []LevelProgress
	for _, level := range assessment.BloomsLevels {
		if lp, ok := perLevel[level]; ok {
			levels = append(levels, *lp)
		}
	}

	var accuracy float64
	if len(s.answers) > 0 {
		accuracy = float64(correct) / float64(len(s.answers))
	}

	return &Summary{
		Duration:       s.Elapsed(),
		TotalQuestions: len(s.answers),
		TotalCorrect:   correct,
		Accuracy:       accuracy,
		Difficulty:     s.difficulty,
		Levels:         levels,
		Reason:         s.stop,
	}
}
