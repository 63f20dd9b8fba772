package strategy

import (
	"ValueSentinel/internal/model"
	"ValueSentinel/internal/valuation"
)

// Rules holds every threshold the engine scores against.
type Rules struct {
	ROEThreshold             float64 `yaml:"roe_threshold"`
	DebtToEquityCeiling      float64 `yaml:"debt_to_equity_ceiling"`
	OperatingMarginThreshold float64 `yaml:"operating_margin_threshold"`
	CurrentRatioFloor        float64 `yaml:"current_ratio_floor"`

	// ConsistencyMinPeriods is the number of line items needed to judge an
	// earnings trend, MoatMinPeriods the number of metric periods for the moat.
	ConsistencyMinPeriods int     `yaml:"consistency_min_periods"`
	MoatMinPeriods        int     `yaml:"moat_min_periods"`
	GrowthQualifier       float64 `yaml:"growth_qualifier"`

	// BaseMaxScore stands in for fundamentals plus consistency in the
	// maximum score. It is 10, not 7+3 computed from the sub-results.
	BaseMaxScore float64 `yaml:"base_max_score"`

	BullishScoreShare     float64 `yaml:"bullish_score_share"`
	BullishMarginOfSafety float64 `yaml:"bullish_margin_of_safety"`
	BearishScoreShare     float64 `yaml:"bearish_score_share"`
	BearishMarginOfSafety float64 `yaml:"bearish_margin_of_safety"`

	Valuation model.Assumptions `yaml:"valuation"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		ROEThreshold:             0.15,
		DebtToEquityCeiling:      0.5,
		OperatingMarginThreshold: 0.15,
		CurrentRatioFloor:        1.5,
		ConsistencyMinPeriods:    4,
		MoatMinPeriods:           3,
		GrowthQualifier:          0.1,
		BaseMaxScore:             10,
		BullishScoreShare:        0.7,
		BullishMarginOfSafety:    0.3,
		BearishScoreShare:        0.3,
		BearishMarginOfSafety:    -0.3,
		Valuation:                valuation.DefaultAssumptions(),
	}
}

// Point weights and caps of the sub-scores.
const (
	roeWeight             = 2
	debtWeight            = 2
	marginWeight          = 2
	liquidityWeight       = 1
	fundamentalsMaxScore  = 7
	consistencyMaxScore   = 3
	moatMaxScore          = 3
	managementMaxScore    = 2
	consistencyGrowthPass = 3
)
