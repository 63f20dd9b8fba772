package strategy

import "ValueSentinel/internal/model"

// MarginOfSafety returns (intrinsic - marketCap) / marketCap, or nil when
// either side is missing or zero.
func MarginOfSafety(intrinsic, marketCap *float64) *float64 {
	if intrinsic == nil || marketCap == nil || *intrinsic == 0 || *marketCap == 0 {
		return nil
	}
	mos := (*intrinsic - *marketCap) / *marketCap
	return &mos
}

// DecideSignal maps a total score and margin of safety to a signal.
// A margin of exactly zero never qualifies as bullish.
func DecideSignal(total, maxScore float64, mos *float64, r Rules) model.Signal {
	switch {
	case total >= r.BullishScoreShare*maxScore && mos != nil && *mos != 0 && *mos >= r.BullishMarginOfSafety:
		return model.SignalBullish
	case total <= r.BearishScoreShare*maxScore || (mos != nil && *mos < r.BearishMarginOfSafety):
		return model.SignalBearish
	default:
		return model.SignalNeutral
	}
}
