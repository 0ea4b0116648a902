package adaptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/error402-ai/intellitest/internal/assessment"
)

func metrics(score float64, avgTime float64, correct, incorrect int, level float64) assessment.Metrics {
	return assessment.Metrics{
		CurrentScore:         score,
		AverageResponseTime:  avgTime,
		ConsecutiveCorrect:   correct,
		ConsecutiveIncorrect: incorrect,
		DifficultyLevel:      level,
		QuestionsAnswered:    5,
		TotalQuestions:       10,
	}
}

func config(level assessment.BloomsLevel) assessment.Config {
	return assessment.Config{
		QuestionType:  assessment.TypeMixed,
		Difficulty:    3,
		BloomsLevel:   level,
		QuestionCount: 10,
	}
}

func TestAdjustDifficulty_ExcellentPerformance(t *testing.T) {
	c := NewSeeded(1)
	adj := c.AdjustDifficulty(metrics(85, 20, 4, 0, 3), nil, config(assessment.Apply))

	assert.Equal(t, 3.5, adj.NewDifficulty)
	assert.Equal(t, 1.0, adj.TimeEfficiency)
	assert.Equal(t, 1.0, adj.Confidence)
	assert.Equal(t, ReasonExcellent+" | "+ReasonStandard, adj.Reason)
}

func TestAdjustDifficulty_HigherOrderOverride(t *testing.T) {
	c := NewSeeded(1)
	adj := c.AdjustDifficulty(metrics(65, 20, 4, 0, 3), nil, config(assessment.Create))

	// Stable base branch, then -0.3: 2.7 rounds to 2.5.
	assert.Equal(t, 2.5, adj.NewDifficulty)
	assert.Equal(t, ReasonStable+" | "+ReasonHigherOrder, adj.Reason)
	assert.Equal(t, 1.0, adj.Confidence)
}

func TestAdjustDifficulty_Branches(t *testing.T) {
	tests := []struct {
		name   string
		m      assessment.Metrics
		level  assessment.BloomsLevel
		want   float64
		reason string
	}{
		{"good", metrics(75, 90, 2, 0, 2), assessment.Apply, 2.5, ReasonGood},
		{"struggling by score", metrics(40, 20, 0, 1, 3), assessment.Apply, 2.5, ReasonStruggling},
		{"struggling by streak", metrics(70, 20, 0, 3, 3), assessment.Apply, 2.5, ReasonStruggling},
		{"struggling by time", metrics(75, 200, 0, 0, 1), assessment.Apply, 1, ReasonStruggling},
		{"moderate by score", metrics(55, 20, 0, 0, 3), assessment.Apply, 3, ReasonModerate},
		{"moderate by streak", metrics(65, 20, 0, 2, 4), assessment.Apply, 4, ReasonModerate},
		{"stable", metrics(65, 20, 1, 0, 3), assessment.Apply, 3, ReasonStable},
		{"clamped at max", metrics(95, 10, 6, 0, 5), assessment.Remember, 5, ReasonExcellent},
		{"evaluate above 70 has no override", metrics(75, 20, 0, 0, 3), assessment.Evaluate, 3, ReasonStable},
	}

	c := NewSeeded(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := c.AdjustDifficulty(tt.m, nil, config(tt.level))
			assert.Equal(t, tt.want, adj.NewDifficulty)
			assert.Contains(t, adj.Reason, tt.reason)
		})
	}
}

func TestAdjustDifficulty_Confidence(t *testing.T) {
	c := NewSeeded(1)

	// Every base confidence is at least 0.5, so adding the Bloom's
	// contribution saturates at 1.
	adj := c.AdjustDifficulty(metrics(65, 20, 1, 0, 3), nil, config(assessment.Apply))
	assert.Equal(t, 1.0, adj.Confidence)
}

func TestAdjustDifficulty_AlwaysClampedHalfSteps(t *testing.T) {
	c := NewSeeded(7)
	for _, score := range []float64{0, 25, 49.9, 50, 59.9, 60, 69.9, 70, 79.9, 80, 100} {
		for _, level := range []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5} {
			for _, avg := range []float64{0, 1, 10, 45, 90, 300} {
				for streak := 0; streak <= 4; streak++ {
					for _, bl := range assessment.BloomsLevels {
						adj := c.AdjustDifficulty(metrics(score, avg, streak, 4-streak, level), nil, config(bl))
						assert.GreaterOrEqual(t, adj.NewDifficulty, 1.0)
						assert.LessOrEqual(t, adj.NewDifficulty, 5.0)
						assert.Zero(t, math.Mod(adj.NewDifficulty*2, 1), "difficulty %v", adj.NewDifficulty)
						assert.LessOrEqual(t, adj.Confidence, 1.0)
					}
				}
			}
		}
	}
}

func TestPerformanceTrend(t *testing.T) {
	ans := func(correct ...bool) []assessment.Answer {
		var out []assessment.Answer
		for _, c := range correct {
			out = append(out, assessment.Answer{IsCorrect: c, TimeSpent: 30, Difficulty: 3})
		}
		return out
	}

	assert.Equal(t, 0.0, PerformanceTrend(nil))
	assert.Equal(t, 0.0, PerformanceTrend(ans(true, true)))
	assert.Equal(t, 1.0, PerformanceTrend(ans(true, true, true)))
	assert.InDelta(t, 2.0/3.0, PerformanceTrend(ans(true, false, true, true)), 1e-9)

	adj := NewSeeded(1).AdjustDifficulty(metrics(65, 20, 1, 0, 3), ans(false, false, true), config(assessment.Apply))
	assert.InDelta(t, 1.0/3.0, adj.Trend, 1e-9)
}

func TestTimeEfficiency(t *testing.T) {
	assert.Equal(t, 1.0, TimeEfficiency(3, 20))
	assert.Equal(t, 0.5, TimeEfficiency(2, 120))
	// Response times under a second count as one second.
	assert.Equal(t, 1.0, TimeEfficiency(1, 0))
	assert.InDelta(t, 0.15, TimeEfficiency(1, 200), 1e-9)
}
