package model

// FinancialMetrics holds the four ratios derived for one period.
type FinancialMetrics struct {
	ReturnOnEquity  float64 `json:"returnOnEquity"`
	DebtToEquity    float64 `json:"debtToEquity"`
	OperatingMargin float64 `json:"operatingMargin"`
	CurrentRatio    float64 `json:"currentRatio"`
}

// FinancialLineItem holds the canonical line items for one period.
//
// DividendsAndOtherCashDistributions and IssuanceOrPurchaseOfEquityShares are
// stored negated: a dividend payment of 100 is -100, a buyback is negative.
type FinancialLineItem struct {
	NetIncome                          float64 `json:"netIncome"`
	DepreciationAndAmortization        float64 `json:"depreciationAndAmortization"`
	CapitalExpenditure                 float64 `json:"capitalExpenditure"`
	OutstandingShares                  float64 `json:"outstandingShares"`
	TotalAssets                        float64 `json:"totalAssets"`
	TotalLiabilities                   float64 `json:"totalLiabilities"`
	DividendsAndOtherCashDistributions float64 `json:"dividendsAndOtherCashDistributions"`
	IssuanceOrPurchaseOfEquityShares   float64 `json:"issuanceOrPurchaseOfEquityShares"`
}

// UnknownTicker is used when no period carries a symbol.
const UnknownTicker = "UNKNOWN"

// FinancialData is the normalised input to the analysis engine.
// Metrics and LineItems are ordered most-recent-first.
type FinancialData struct {
	Ticker    string              `json:"ticker"`
	Metrics   []FinancialMetrics  `json:"metrics"`
	LineItems []FinancialLineItem `json:"lineItems"`
	MarketCap *float64            `json:"marketCap"`
}
