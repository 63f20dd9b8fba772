package resolver

import (
	"strings"

	"ValueSentinel/internal/model"
)

// Accessor derives one candidate value from a raw record. A zero result
// means the candidate is unavailable and the next one is tried.
type Accessor struct {
	Name    string
	Resolve func(model.RawValues) float64
}

func field(key string) Accessor {
	return Accessor{Name: key, Resolve: func(v model.RawValues) float64 { return v[key] }}
}

// positive yields key only when it is strictly positive.
func positive(key string) Accessor {
	return Accessor{Name: key + " (>0)", Resolve: func(v model.RawValues) float64 {
		if f := v[key]; f > 0 {
			return f
		}
		return 0
	}}
}

// sum adds keys, counting missing ones as zero.
func sum(keys ...string) Accessor {
	return Accessor{Name: strings.Join(keys, " + "), Resolve: func(v model.RawValues) float64 {
		total := 0.0
		for _, k := range keys {
			total += v[k]
		}
		return total
	}}
}

// sumIfPresent adds extra to base only when base is present in the record.
func sumIfPresent(base, extra string) Accessor {
	return Accessor{Name: base + " + " + extra, Resolve: func(v model.RawValues) float64 {
		b, ok := v.Get(base)
		if !ok {
			return 0
		}
		return b + v[extra]
	}}
}

// sumIfAll adds a and b only when both are non-zero.
func sumIfAll(a, b string) Accessor {
	return Accessor{Name: a + " + " + b, Resolve: func(v model.RawValues) float64 {
		if v[a] == 0 || v[b] == 0 {
			return 0
		}
		return v[a] + v[b]
	}}
}

// differenceIfAll subtracts b from a only when both are non-zero.
func differenceIfAll(a, b string) Accessor {
	return Accessor{Name: a + " - " + b, Resolve: func(v model.RawValues) float64 {
		if v[a] == 0 || v[b] == 0 {
			return 0
		}
		return v[a] - v[b]
	}}
}

// netOf subtracts the deductions from base when base is non-zero.
func netOf(base string, deductions ...string) Accessor {
	return Accessor{Name: base + " - " + strings.Join(deductions, " - "), Resolve: func(v model.RawValues) float64 {
		b := v[base]
		if b == 0 {
			return 0
		}
		for _, d := range deductions {
			b -= v[d]
		}
		return b
	}}
}

var candidates = [quantityCount][]Accessor{
	ReturnIncome: {
		field("netincomeloss"),
		field("netIncomeFromContinuingOperations"),
	},
	NetIncome: {
		field("netincomeloss"),
		field("netIncome"),
		field("netincomelossavailabletocommonstockholdersbasic"),
	},
	Equity: {
		positive("stockholdersequity"),
		sum(
			"commonstocksincludingadditionalpaidincapital",
			"retainedearningsaccumulateddeficit",
			"accumulatedothercomprehensiveincomelossnetoftax",
		),
		field("totalEquity"),
	},
	LongTermDebt: {
		field("longtermdebtnoncurrent"),
		field("longTermDebt"),
		field("longtermdebt"),
	},
	OperatingIncome: {
		field("operatingincomeloss"),
		field("operatingIncome"),
		netOf("revenuesnetofinterestexpense", "noninterestexpense", "provisionforloanleaseandotherlosses"),
	},
	Revenue: {
		field("revenuefromcontractwithcustomerexcludingassessedtax"),
		field("revenue"),
		field("totalRevenue"),
		field("revenues"),
		field("revenuesnetofinterestexpense"),
	},
	CurrentAssets: {
		field("assetscurrent"),
		field("currentAssets"),
	},
	CurrentLiabilities: {
		field("liabilitiescurrent"),
		field("currentLiabilities"),
	},
	Depreciation: {
		field("depreciationamortizationandother"),
		field("depreciationdepletionandamortization"),
		field("depreciationAndAmortization"),
		field("depreciationandamortization"),
		field("depreciation"),
		sumIfPresent("depreciationandimpairmentondispositionofpropertyandequipment", "amortizationandimpairmentofintangibleassets"),
		field("depreciationamortizationandaccretionnet"),
	},
	CapitalExpenditure: {
		field("paymentstoacquirepropertyplantandequipment"),
		field("paymentstoacquireproductiveassets"),
		field("capitalExpenditures"),
	},
	SharesOutstanding: {
		field("weightedaveragenumberofdilutedsharesoutstanding"),
		field("weightedAverageShsOutDil"),
	},
	TotalAssets: {
		field("assets"),
		field("totalAssets"),
	},
	TotalLiabilities: {
		field("liabilities"),
		field("totalLiabilities"),
		sumIfAll("liabilitiescurrent", "liabilitiesnoncurrent"),
		differenceIfAll("liabilitiesandstockholdersequity", "stockholdersequity"),
	},
	Dividends: {
		field("dividends"),
		field("dividendscommonstockcash"),
		field("cashDividendsPaid"),
		field("dividendscash"),
		field("paymentsofdividends"),
		field("dividendscommonstock"),
	},
	Repurchases: {
		field("stockrepurchasedduringperiodvalue"),
		field("stockrepurchasedandretiredduringperiodvalue"),
		field("purchaseOfStock"),
		field("paymentsforrepurchaseofcommonstock"),
	},
}

// Candidates returns the ordered accessor chain for q.
func Candidates(q Quantity) []Accessor {
	if q < 0 || q >= quantityCount {
		return nil
	}
	out := make([]Accessor, len(candidates[q]))
	copy(out, candidates[q])
	return out
}
