package model

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// Signal is the categorical investment decision.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// ScoreAnalysis is the common shape of every sub-analysis.
type ScoreAnalysis struct {
	Score    float64  `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore float64  `json:"maxScore" validate:"gte=0"`
	Details  []string `json:"details"`
}

// FundamentalAnalysis additionally carries the metrics it was scored on.
type FundamentalAnalysis struct {
	ScoreAnalysis
	Metrics *FinancialMetrics `json:"metrics,omitempty"`
}

// Assumptions are the fixed DCF inputs, surfaced for auditability.
type Assumptions struct {
	GrowthRate       float64 `json:"growthRate" yaml:"growth_rate" validate:"gte=0"`
	DiscountRate     float64 `json:"discountRate" yaml:"discount_rate" validate:"gt=0"`
	TerminalMultiple float64 `json:"terminalMultiple" yaml:"terminal_multiple" validate:"gte=0"`
	ProjectionYears  int     `json:"projectionYears" yaml:"projection_years" validate:"gt=0"`
}

// IntrinsicValueAnalysis is the valuation engine output.
type IntrinsicValueAnalysis struct {
	IntrinsicValue *float64     `json:"intrinsicValue"`
	OwnerEarnings  *float64     `json:"ownerEarnings,omitempty"`
	Assumptions    *Assumptions `json:"assumptions,omitempty"`
	Details        []string     `json:"details"`
}

// AnalysisResult is the complete, immutable outcome of one analysis.
type AnalysisResult struct {
	Signal                 Signal                 `json:"signal" validate:"oneof=bullish bearish neutral"`
	Score                  float64                `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore               float64                `json:"maxScore"`
	FundamentalAnalysis    FundamentalAnalysis    `json:"fundamentalAnalysis"`
	ConsistencyAnalysis    ScoreAnalysis          `json:"consistencyAnalysis"`
	MoatAnalysis           ScoreAnalysis          `json:"moatAnalysis"`
	ManagementAnalysis     ScoreAnalysis          `json:"managementAnalysis"`
	IntrinsicValueAnalysis IntrinsicValueAnalysis `json:"intrinsicValueAnalysis"`
	MarketCap              *float64               `json:"marketCap"`
	MarginOfSafety         *float64               `json:"marginOfSafety"`
}

var validate = validator.New()

// Validate checks the score bounds of the result and all its sub-analyses.
func (r AnalysisResult) Validate() error {
	return validate.Struct(r)
}

// Report is the analysis output keyed by ticker.
type Report map[string]AnalysisResult

// Ticker returns the ticker of the report. Reports produced by the engine
// hold exactly one entry; for hand-built reports the first key in sorted
// order is returned.
func (r Report) Ticker() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// Result returns the entry for Ticker().
func (r Report) Result() (AnalysisResult, bool) {
	res, ok := r[r.Ticker()]
	return res, ok
}
