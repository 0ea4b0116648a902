package adaptive

import "github.com/error402-ai/intellitest/internal/assessment"

// analysisWindow is how many of the most recent results are analyzed.
const analysisWindow = 5

// Difficulty buckets used by the analysis.
const (
	BucketLow    = "low"    // difficulty <= 2
	BucketMedium = "medium" // between
	BucketHigh   = "high"   // difficulty >= 5
)

// Analysis messages.
const (
	RecBaseline         = "Start with basic assessments to establish baseline"
	StrengthOverall     = "Strong overall performance"
	RecMoreChallenge    = "Consider increasing difficulty level for more challenge"
	StrengthComplex     = "Excellent performance on complex questions"
	WeaknessDifficulty  = "Struggling with current difficulty level"
	RecFoundations      = "Focus on foundational concepts before advancing"
	WeaknessAnalytical  = "Difficulty with analytical thinking"
	RecDecomposition    = "Practice breaking down complex problems into smaller parts"
	WeaknessEvaluation  = "Challenges with evaluation tasks"
	RecCriticalThinking = "Work on critical thinking and judgment skills"
)

const baselineDifficulty = 3.0

// Analysis summarizes recent assessment history.
type Analysis struct {
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Recommendations   []string `json:"recommendations"`
	OptimalDifficulty float64  `json:"optimalDifficulty"`

	// AverageScore is the mean score of the analyzed results.
	AverageScore float64 `json:"averageScore"`

	// Per-bucket and per-level percentage correct. Every bucket and level
	// is present; one with no answered questions reads as 0.
	DifficultyPerformance map[string]float64                 `json:"difficultyPerformance"`
	BloomsPerformance     map[assessment.BloomsLevel]float64 `json:"bloomsPerformance"`
}

// AnalyzeLearningPatterns derives strengths, weaknesses and a recommended
// starting difficulty from results ordered oldest first. Only the last
// five results are considered.
func (c *Controller) AnalyzeLearningPatterns(results []assessment.TestResult) Analysis {
	a := Analysis{
		Strengths:             []string{},
		Weaknesses:            []string{},
		Recommendations:       []string{},
		OptimalDifficulty:     baselineDifficulty,
		DifficultyPerformance: map[string]float64{},
		BloomsPerformance:     map[assessment.BloomsLevel]float64{},
	}
	if len(results) == 0 {
		a.Recommendations = append(a.Recommendations, RecBaseline)
		return a
	}

	recent := results[max(0, len(results)-analysisWindow):]

	var total float64
	for _, r := range recent {
		total += r.Score
	}
	a.AverageScore = total / float64(len(recent))

	a.DifficultyPerformance = averageBy(recent, Buckets, func(q assessment.AnsweredQuestion) string {
		return difficultyBucket(q.Difficulty)
	})
	a.BloomsPerformance = averageBy(recent, assessment.BloomsLevels, func(q assessment.AnsweredQuestion) assessment.BloomsLevel {
		return q.BloomsLevel
	})

	high := a.DifficultyPerformance[BucketHigh]
	low := a.DifficultyPerformance[BucketLow]

	if a.AverageScore >= 80 {
		a.Strengths = append(a.Strengths, StrengthOverall)
		a.Recommendations = append(a.Recommendations, RecMoreChallenge)
	}
	if high > 70 {
		a.Strengths = append(a.Strengths, StrengthComplex)
	}

	if a.AverageScore < 60 {
		a.Weaknesses = append(a.Weaknesses, WeaknessDifficulty)
		a.Recommendations = append(a.Recommendations, RecFoundations)
	}
	if a.BloomsPerformance[assessment.Analyze] < 60 {
		a.Weaknesses = append(a.Weaknesses, WeaknessAnalytical)
		a.Recommendations = append(a.Recommendations, RecDecomposition)
	}
	if a.BloomsPerformance[assessment.Evaluate] < 60 {
		a.Weaknesses = append(a.Weaknesses, WeaknessEvaluation)
		a.Recommendations = append(a.Recommendations, RecCriticalThinking)
	}

	optimal := OptimalDifficultyForScore(a.AverageScore)
	if high > 80 {
		optimal = min(assessment.MaxDifficulty, optimal+assessment.DifficultyStep)
	}
	if low < 60 {
		optimal = max(assessment.MinDifficulty, optimal-assessment.DifficultyStep)
	}
	a.OptimalDifficulty = assessment.RoundToHalf(optimal)

	return a
}

// OptimalDifficultyForScore maps an average score onto a starting
// difficulty.
func OptimalDifficultyForScore(avg float64) float64 {
	switch {
	case avg >= 85:
		return 4.5
	case avg >= 75:
		return 4
	case avg >= 65:
		return 3.5
	case avg >= 55:
		return 3
	}
	return 2.5
}

func difficultyBucket(d float64) string {
	switch {
	case d <= 2:
		return BucketLow
	case d >= 5:
		return BucketHigh
	}
	return BucketMedium
}

// Buckets lists the difficulty buckets from easiest to hardest.
var Buckets = []string{BucketLow, BucketMedium, BucketHigh}

// averageBy groups every answered question by key and returns the
// percentage answered correctly per group. Each of keys is present in the
// result, at 0 when no question falls into it.
func averageBy[K comparable](results []assessment.TestResult, keys []K, key func(assessment.AnsweredQuestion) K) map[K]float64 {
	correct := make(map[K]int)
	count := make(map[K]int)
	for _, r := range results {
		for _, q := range r.Questions {
			k := key(q)
			count[k]++
			if q.IsCorrect {
				correct[k]++
			}
		}
	}

	out := make(map[K]float64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	for k, n := range count {
		out[k] = 100 * float64(correct[k]) / float64(n)
	}
	return out
}
