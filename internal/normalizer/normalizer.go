// Package normalizer turns raw period records into the canonical metrics
// and line items consumed by the analysis engine.
package normalizer

import (
	"ValueSentinel/internal/calculator"
	"ValueSentinel/internal/model"
	"ValueSentinel/internal/resolver"
)

// MaxPeriods is the number of most-recent periods kept.
const MaxPeriods = 5

// Normalize keeps up to MaxPeriods periods (most-recent-first, as supplied)
// and derives metrics and line items for each, preserving order.
func Normalize(raw []model.RawPeriodRecord, marketCap *float64) model.FinancialData {
	periods := raw
	if len(periods) > MaxPeriods {
		periods = periods[:MaxPeriods]
	}

	ticker := model.UnknownTicker
	if len(periods) > 0 && periods[0].Symbol != "" {
		ticker = periods[0].Symbol
	}

	metrics := make([]model.FinancialMetrics, 0, len(periods))
	items := make([]model.FinancialLineItem, 0, len(periods))
	for _, p := range periods {
		fields := resolver.Resolve(p.Data)
		metrics = append(metrics, Metrics(fields))
		items = append(items, LineItem(fields))
	}

	var mc *float64
	if marketCap != nil {
		v := *marketCap
		mc = &v
	}

	return model.FinancialData{
		Ticker:    ticker,
		Metrics:   metrics,
		LineItems: items,
		MarketCap: mc,
	}
}

// Metrics computes the four ratios of one period.
func Metrics(f resolver.Fields) model.FinancialMetrics {
	equity := f.Get(resolver.Equity)
	return model.FinancialMetrics{
		ReturnOnEquity:  calculator.SafeRatio(f.Get(resolver.ReturnIncome), equity),
		DebtToEquity:    calculator.SafeRatio(f.Get(resolver.LongTermDebt), equity),
		OperatingMargin: calculator.SafeRatio(f.Get(resolver.OperatingIncome), f.Get(resolver.Revenue)),
		CurrentRatio:    calculator.SafeRatio(f.Get(resolver.CurrentAssets), f.Get(resolver.CurrentLiabilities)),
	}
}

// LineItem assembles the canonical line items of one period. Dividend and
// repurchase outflows are negated.
func LineItem(f resolver.Fields) model.FinancialLineItem {
	return model.FinancialLineItem{
		NetIncome:                          f.Get(resolver.NetIncome),
		DepreciationAndAmortization:        f.Get(resolver.Depreciation),
		CapitalExpenditure:                 f.Get(resolver.CapitalExpenditure),
		OutstandingShares:                  f.Get(resolver.SharesOutstanding),
		TotalAssets:                        f.Get(resolver.TotalAssets),
		TotalLiabilities:                   f.Get(resolver.TotalLiabilities),
		DividendsAndOtherCashDistributions: calculator.Negate(f.Get(resolver.Dividends)),
		IssuanceOrPurchaseOfEquityShares:   calculator.Negate(f.Get(resolver.Repurchases)),
	}
}
