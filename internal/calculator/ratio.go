package calculator

import "math"

// SafeRatio divides numerator by denominator, returning 0 when the
// denominator is exactly zero.
func SafeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// GrowthRate returns (newest - oldest) / |oldest|. ok is false when oldest is zero.
func GrowthRate(newest, oldest float64) (rate float64, ok bool) {
	if oldest == 0 {
		return 0, false
	}
	return (newest - oldest) / math.Abs(oldest), true
}

// Negate flips the sign of v without producing a negative zero.
func Negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}
