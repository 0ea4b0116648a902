package assessment

import "math"

const (
	MinDifficulty  = 1.0
	MaxDifficulty  = 5.0
	DifficultyStep = 0.5
)

// RoundToHalf quantizes x to the nearest multiple of 0.5, rounding halves up
// on the doubled value (3.25 -> 3.5, 3.24 -> 3.0).
func RoundToHalf(x float64) float64 {
	return math.Floor(x*2+0.5) / 2
}

// ClampDifficulty clamps x into [MinDifficulty, MaxDifficulty].
func ClampDifficulty(x float64) float64 {
	return Clamp(x, MinDifficulty, MaxDifficulty)
}

// Clamp clamps v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
