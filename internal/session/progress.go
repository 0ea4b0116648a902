package session

import "github.com/error402-ai/intellitest/internal/assessment"

// LevelProgress tracks answers for one Bloom's level within a session.
type LevelProgress struct {
	Level     assessment.BloomsLevel
	Attempted int
	Correct   int
	Accuracy  float64 // Correct / Attempted (computed)
}

// Record adds a new answer result to the progress.
func (lp *LevelProgress) Record(correct bool) {
	lp.Attempted++
	if correct {
		lp.Correct++
	}
	lp.Accuracy = float64(lp.Correct) / float64(lp.Attempted)
}
