// Package strategy scores normalised financial data against value-investing
// rules and turns the result into a bullish, bearish or neutral signal.
package strategy

import (
	"fmt"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/valuation"
)

// DefaultConcurrency bounds AnalyzeBatch when no limit is configured.
const DefaultConcurrency = 4

// Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	rules       Rules
	valuer      *valuation.Valuer
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency sets the number of tickers AnalyzeBatch scores at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine builds an engine for the given rules.
func NewEngine(r Rules, opts ...Option) (*Engine, error) {
	v, err := valuation.NewValuer(r.Valuation)
	if err != nil {
		return nil, fmt.Errorf("valuation assumptions: %w", err)
	}
	e := &Engine{rules: r, valuer: v, concurrency: DefaultConcurrency}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Rules returns a copy of the engine's rules, with the valuation
// assumptions the engine's valuer is bound to.
func (e *Engine) Rules() Rules {
	r := e.rules
	r.Valuation = e.valuer.Assumptions()
	return r
}

// Analyze scores one company. metrics and items are most-recent-first;
// marketCap may be nil.
func (e *Engine) Analyze(ticker string, metrics []model.FinancialMetrics, items []model.FinancialLineItem, marketCap *float64) model.Report {
	fundamentals := e.scoreFundamentals(metrics)
	consistency := e.scoreConsistency(items)
	moat := e.scoreMoat(metrics)
	management := e.scoreManagement(items)
	intrinsic := e.valuer.IntrinsicValue(items)

	total := fundamentals.Score + consistency.Score + moat.Score + management.Score
	maxScore := e.rules.BaseMaxScore + moat.MaxScore + management.MaxScore

	var mc *float64
	if marketCap != nil {
		v := *marketCap
		mc = &v
	}
	mos := MarginOfSafety(intrinsic.IntrinsicValue, mc)

	return model.Report{
		ticker: {
			Signal:                 DecideSignal(total, maxScore, mos, e.rules),
			Score:                  total,
			MaxScore:               maxScore,
			FundamentalAnalysis:    fundamentals,
			ConsistencyAnalysis:    consistency,
			MoatAnalysis:           moat,
			ManagementAnalysis:     management,
			IntrinsicValueAnalysis: intrinsic,
			MarketCap:              mc,
			MarginOfSafety:         mos,
		},
	}
}

// AnalyzeData is Analyze over a normalised bundle.
func (e *Engine) AnalyzeData(d model.FinancialData) model.Report {
	return e.Analyze(d.Ticker, d.Metrics, d.LineItems, d.MarketCap)
}
