package strategy

import (
	"fmt"
	"math"

	"ValueSentinel/internal/calculator"
	"ValueSentinel/internal/model"
)

// present reports whether a metric carries a usable value. Zero reads as
// missing because the normaliser folds absent inputs to 0.
func present(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func pct(r float64) string {
	return fmt.Sprintf("%g%%", math.Round(r*10000)/100)
}

// scoreFundamentals grades the latest metrics period.
// Max: 7
func (e *Engine) scoreFundamentals(metrics []model.FinancialMetrics) model.FundamentalAnalysis {
	if len(metrics) == 0 {
		return model.FundamentalAnalysis{ScoreAnalysis: model.ScoreAnalysis{
			MaxScore: fundamentalsMaxScore,
			Details:  []string{"Insufficient fundamental data to perform a Buffett-style analysis"},
		}}
	}

	r := e.rules
	latest := metrics[0]
	var score float64
	details := make([]string, 0, 4)

	switch roe := latest.ReturnOnEquity; {
	case present(roe) && roe > r.ROEThreshold:
		score += roeWeight
		details = append(details, fmt.Sprintf("Excellent Return on Equity of %.1f%% exceeds Buffett's minimum threshold of %s, indicating efficient use of shareholder capital", roe*100, pct(r.ROEThreshold)))
	case present(roe):
		details = append(details, fmt.Sprintf("Suboptimal Return on Equity of %.1f%% falls below Buffett's preferred %s threshold, suggesting inefficient use of capital", roe*100, pct(r.ROEThreshold)))
	default:
		details = append(details, "Return on Equity data not available for fundamental analysis")
	}

	switch de := latest.DebtToEquity; {
	case present(de) && de < r.DebtToEquityCeiling:
		score += debtWeight
		details = append(details, fmt.Sprintf("Low debt-to-equity ratio of %.2f demonstrates conservative financial management and reduced financial risk, aligning with Buffett's preference for companies with minimal leverage", de))
	case present(de):
		details = append(details, fmt.Sprintf("Concerning debt-to-equity ratio of %.2f indicates higher financial leverage than Buffett typically prefers, increasing vulnerability during economic downturns", de))
	default:
		details = append(details, "Debt-to-equity ratio data not available for risk assessment")
	}

	switch om := latest.OperatingMargin; {
	case present(om) && om > r.OperatingMarginThreshold:
		score += marginWeight
		details = append(details, fmt.Sprintf("Superior operating margin of %.1f%% demonstrates pricing power and operational efficiency, key indicators of a competitive advantage that Buffett seeks", om*100))
	case present(om):
		details = append(details, fmt.Sprintf("Mediocre operating margin of %.1f%% suggests limited pricing power and potential competitive weaknesses, falling short of Buffett's criteria for excellent businesses", om*100))
	default:
		details = append(details, "Operating margin data not available to assess business efficiency")
	}

	switch cr := latest.CurrentRatio; {
	case present(cr) && cr > r.CurrentRatioFloor:
		score += liquidityWeight
		details = append(details, fmt.Sprintf("Strong liquidity position with a current ratio of %.2f provides adequate financial flexibility to weather short-term challenges, an important consideration in Buffett's conservative approach", cr))
	case present(cr):
		details = append(details, fmt.Sprintf("Concerning liquidity position with a current ratio of %.2f may indicate potential short-term financial constraints, creating additional risk not favored in Buffett's investment philosophy", cr))
	default:
		details = append(details, "Current ratio data not available to evaluate short-term liquidity")
	}

	m := latest
	return model.FundamentalAnalysis{
		ScoreAnalysis: model.ScoreAnalysis{Score: score, MaxScore: fundamentalsMaxScore, Details: details},
		Metrics:       &m,
	}
}

// scoreConsistency checks that net income strictly decreases along the
// stored most-recent-first order, i.e. grows over time.
// Max: 3
func (e *Engine) scoreConsistency(items []model.FinancialLineItem) model.ScoreAnalysis {
	r := e.rules
	if len(items) < r.ConsistencyMinPeriods {
		return model.ScoreAnalysis{
			MaxScore: consistencyMaxScore,
			Details:  []string{"Insufficient historical data to evaluate earnings consistency and predictability"},
		}
	}

	growing := true
	for i := 0; i+1 < len(items); i++ {
		if !(items[i].NetIncome > items[i+1].NetIncome) {
			growing = false
			break
		}
	}

	var score float64
	details := make([]string, 0, 2)
	if growing {
		score = consistencyGrowthPass
		details = append(details, "Consistent earnings growth across all analyzed periods demonstrates business predictability and management execution, qualities highly valued in Buffett's investment framework")
	} else {
		details = append(details, "Inconsistent or volatile earnings pattern indicates lower business predictability, making future performance more difficult to forecast and potentially less attractive to Buffett-style investors")
	}

	newest, oldest := items[0].NetIncome, items[len(items)-1].NetIncome
	if growth, ok := calculator.GrowthRate(newest, oldest); ok {
		qualifier := ", though at a rate that may not be compelling enough for a Buffett-style investment"
		if growth > r.GrowthQualifier {
			qualifier = ", a critical factor in Buffett's investment approach"
		}
		details = append(details, fmt.Sprintf("Long-term earnings growth of %.1f%% over %d reporting periods demonstrates the company's ability to compound shareholder value over time%s", growth*100, len(items), qualifier))
	}

	return model.ScoreAnalysis{Score: score, MaxScore: consistencyMaxScore, Details: details}
}

// scoreMoat looks for returns and margins that stay above threshold in
// every period.
// Max: 3
func (e *Engine) scoreMoat(metrics []model.FinancialMetrics) model.ScoreAnalysis {
	r := e.rules
	if len(metrics) < r.MoatMinPeriods {
		return model.ScoreAnalysis{
			MaxScore: moatMaxScore,
			Details:  []string{"Insufficient historical data to evaluate the company's economic moat"},
		}
	}

	stableROE, stableMargin := true, true
	for _, m := range metrics {
		if !(m.ReturnOnEquity > r.ROEThreshold) {
			stableROE = false
		}
		if !(m.OperatingMargin > r.OperatingMarginThreshold) {
			stableMargin = false
		}
	}

	var score float64
	details := make([]string, 0, 3)
	if stableROE {
		score++
		details = append(details, fmt.Sprintf("Consistently high Return on Equity above %s across multiple periods strongly suggests a sustainable competitive advantage, allowing the company to earn superior returns despite competitive pressures", pct(r.ROEThreshold)))
	} else {
		details = append(details, "Fluctuating or below-average Return on Equity metrics suggest potential competitive vulnerabilities and an uncertain economic moat")
	}
	if stableMargin {
		score++
		details = append(details, fmt.Sprintf("Sustained operating margins above %s indicate pricing power and cost advantages that competitors have been unable to erode over time, a key characteristic of businesses with durable economic moats", pct(r.OperatingMarginThreshold)))
	} else {
		details = append(details, "Inconsistent or modest operating margins suggest limited pricing power and potential vulnerability to competitive pressures or cost fluctuations")
	}
	if score == 2 {
		score++
		details = append(details, "The combination of consistently high returns on equity and strong operating margins provides compelling evidence of a wide and durable economic moat, one of Buffett's most essential investment criteria")
	}

	return model.ScoreAnalysis{Score: score, MaxScore: moatMaxScore, Details: details}
}

// scoreManagement rewards buybacks and dividends in the latest period.
// Both fields are cash outflows and therefore negative when they happened.
// Max: 2
func (e *Engine) scoreManagement(items []model.FinancialLineItem) model.ScoreAnalysis {
	if len(items) == 0 {
		return model.ScoreAnalysis{
			MaxScore: managementMaxScore,
			Details:  []string{"Insufficient data to evaluate management's capital allocation decisions"},
		}
	}

	latest := items[0]
	var score float64
	details := make([]string, 0, 3)

	shares := latest.IssuanceOrPurchaseOfEquityShares
	if shares < 0 {
		score++
		details = append(details, "Management's decision to repurchase shares demonstrates shareholder-friendly capital allocation and may indicate management's belief that the stock is undervalued, a perspective aligned with Buffett's approach to capital deployment")
	}
	if shares > 0 {
		details = append(details, "Recent issuance of new shares dilutes existing shareholders and raises questions about management's commitment to per-share value creation, potentially suggesting poor capital allocation decisions")
	} else {
		details = append(details, "No significant stock dilution detected, indicating management is not pursuing growth at the expense of existing shareholders")
	}

	if latest.DividendsAndOtherCashDistributions < 0 {
		score++
		details = append(details, "Consistent dividend payments demonstrate management's commitment to sharing profits with shareholders and signal confidence in the business's stable cash generation capabilities")
	} else {
		details = append(details, "Absence of meaningful dividends may indicate either growth-focused reinvestment or inadequate free cash flow generation, requiring further investigation into capital allocation priorities")
	}

	return model.ScoreAnalysis{Score: score, MaxScore: managementMaxScore, Details: details}
}
