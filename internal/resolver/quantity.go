package resolver

// Quantity identifies one canonical financial quantity.
type Quantity int

const (
	// ReturnIncome is the net income used as the return-on-equity numerator.
	ReturnIncome Quantity = iota
	// NetIncome is the net income reported as a line item.
	NetIncome
	Equity
	LongTermDebt
	OperatingIncome
	Revenue
	CurrentAssets
	CurrentLiabilities
	Depreciation
	CapitalExpenditure
	SharesOutstanding
	TotalAssets
	TotalLiabilities
	// Dividends is the positive cash outflow for distributions.
	Dividends
	// Repurchases is the cash outflow for share buybacks.
	Repurchases

	quantityCount
)

var quantityNames = [quantityCount]string{
	ReturnIncome:       "return_income",
	NetIncome:          "net_income",
	Equity:             "equity",
	LongTermDebt:       "long_term_debt",
	OperatingIncome:    "operating_income",
	Revenue:            "revenue",
	CurrentAssets:      "current_assets",
	CurrentLiabilities: "current_liabilities",
	Depreciation:       "depreciation",
	CapitalExpenditure: "capital_expenditure",
	SharesOutstanding:  "shares_outstanding",
	TotalAssets:        "total_assets",
	TotalLiabilities:   "total_liabilities",
	Dividends:          "dividends",
	Repurchases:        "repurchases",
}

func (q Quantity) String() string {
	if q < 0 || q >= quantityCount {
		return "unknown"
	}
	return quantityNames[q]
}

// Quantities returns every canonical quantity in declaration order.
func Quantities() []Quantity {
	qs := make([]Quantity, quantityCount)
	for i := range qs {
		qs[i] = Quantity(i)
	}
	return qs
}
