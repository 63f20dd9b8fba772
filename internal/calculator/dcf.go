package calculator

import (
	"errors"
	"math"
)

// DiscountedGrowthSum projects base forward at growth for years periods and
// sums each projected value discounted back at discount:
//
//	sum_{y=1..years} base * (1+growth)^y / (1+discount)^y
func DiscountedGrowthSum(base, growth, discount float64, years int) (float64, error) {
	if years <= 0 {
		return 0, errors.New("projection years must be positive")
	}
	if discount <= -1 {
		return 0, errors.New("discount rate must be greater than -1")
	}
	sum := 0.0
	for year := 1; year <= years; year++ {
		future := base * math.Pow(1+growth, float64(year))
		sum += future / math.Pow(1+discount, float64(year))
	}
	return sum, nil
}

// TerminalValue capitalises the final projected value at multiple and
// discounts it back over years periods:
//
//	base * (1+growth)^years * multiple / (1+discount)^years
func TerminalValue(base, growth, discount, multiple float64, years int) (float64, error) {
	if years <= 0 {
		return 0, errors.New("projection years must be positive")
	}
	if discount <= -1 {
		return 0, errors.New("discount rate must be greater than -1")
	}
	n := float64(years)
	return base * math.Pow(1+growth, n) * multiple / math.Pow(1+discount, n), nil
}
