// Package adaptive retargets question difficulty from rolling performance
// and recommends a starting difficulty from assessment history.
package adaptive

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// ConfidenceThreshold is the confidence above which question selection is
// deterministic.
const ConfidenceThreshold = 0.7

const (
	// trendWindow is how many recent answers the performance trend covers.
	trendWindow = 3

	// secondsPerLevel is the expected response time per difficulty level.
	secondsPerLevel = 30.0

	// higherOrderPenalty is subtracted for evaluate/create targets while
	// the score is below higherOrderMinScore.
	higherOrderPenalty  = 0.3
	higherOrderMinScore = 70.0
)

// Reasons reported with an adjustment.
const (
	ReasonExcellent   = "Excellent performance — increasing challenge"
	ReasonGood        = "Good performance — moderate challenge increase"
	ReasonStruggling  = "Struggling — reducing difficulty for better engagement"
	ReasonModerate    = "Moderate performance — slight difficulty reduction"
	ReasonStable      = "Stable performance — maintaining current difficulty"
	ReasonHigherOrder = "High-order thinking requires strong foundation"
	ReasonStandard    = "Standard difficulty adjustment"
)

// Controller is stateless apart from its random source, which is only used
// to break ties in question selection.
type Controller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Controller drawing from rng. A nil rng is replaced with a
// time-seeded PCG source.
func New(rng *rand.Rand) *Controller {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Controller{rng: rng}
}

// NewSeeded creates a Controller with a deterministic PCG source.
func NewSeeded(seed uint64) *Controller {
	return New(rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15)))
}

func (c *Controller) intN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}

// AdjustDifficulty decides the next difficulty from the current metrics and
// the rolling window of recent answers (oldest first).
func (c *Controller) AdjustDifficulty(m assessment.Metrics, recent []assessment.Answer, cfg assessment.Config) assessment.Adjustment {
	trend := PerformanceTrend(recent)
	eff := TimeEfficiency(m.DifficultyLevel, m.AverageResponseTime)

	var (
		delta      float64
		reason     string
		confidence float64
	)
	switch {
	case m.CurrentScore >= 80 && m.ConsecutiveCorrect >= 3 && eff > 0.8:
		delta, reason, confidence = assessment.DifficultyStep, ReasonExcellent, 0.9
	case m.CurrentScore >= 70 && m.ConsecutiveCorrect >= 2 && eff > 0.6:
		delta, reason, confidence = assessment.DifficultyStep/2, ReasonGood, 0.7
	case m.CurrentScore < 50 || m.ConsecutiveIncorrect >= 3 || eff < 0.3:
		delta, reason, confidence = -assessment.DifficultyStep, ReasonStruggling, 0.8
	case m.CurrentScore < 60 || m.ConsecutiveIncorrect >= 2 || eff < 0.5:
		delta, reason, confidence = -assessment.DifficultyStep/2, ReasonModerate, 0.6
	default:
		delta, reason, confidence = 0, ReasonStable, 0.5
	}

	if cfg.BloomsLevel.HigherOrder() && m.CurrentScore < higherOrderMinScore {
		delta -= higherOrderPenalty
		reason += " | " + ReasonHigherOrder
		confidence += 0.8
	} else {
		reason += " | " + ReasonStandard
		confidence += 0.5
	}

	return assessment.Adjustment{
		NewDifficulty:  assessment.RoundToHalf(assessment.ClampDifficulty(m.DifficultyLevel + delta)),
		Reason:         reason,
		Confidence:     math.Min(1, confidence),
		Trend:          trend,
		TimeEfficiency: eff,
	}
}

// PerformanceTrend is the fraction correct among the last three answers,
// or 0 when fewer than three are available.
func PerformanceTrend(recent []assessment.Answer) float64 {
	if len(recent) < trendWindow {
		return 0
	}
	correct := 0
	for _, a := range recent[len(recent)-trendWindow:] {
		if a.IsCorrect {
			correct++
		}
	}
	return float64(correct) / trendWindow
}

// TimeEfficiency compares the expected time for the difficulty with the
// actual average response time, capped at 1.
func TimeEfficiency(difficulty, avgSeconds float64) float64 {
	expected := difficulty * secondsPerLevel
	return math.Min(1, expected/math.Max(avgSeconds, 1))
}
