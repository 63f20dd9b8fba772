package normalizer

import (
	"testing"

	"ValueSentinel/internal/model"
)

func samplePeriod(symbol string, netIncome float64) model.RawPeriodRecord {
	values := model.RawValues{
		"netincomeloss":                      netIncome,
		"stockholdersequity":                 1000,
		"longtermdebtnoncurrent":             300,
		"operatingincomeloss":                250,
		"revenues":                           1000,
		"assetscurrent":                      600,
		"liabilitiescurrent":                 300,
		"depreciationandamortization":        50,
		"assets":                             2500,
		"liabilities":                        1500,
		"paymentsofdividends":                40,
		"paymentsforrepurchaseofcommonstock": 60,
	}
	values["paymentstoacquirepropertyplantandequipment"] = 80
	values["weightedaveragenumberofdilutedsharesoutstanding"] = 100
	return model.RawPeriodRecord{Symbol: symbol, Data: values}
}

func TestNormalize_MetricsAndLineItems(t *testing.T) {
	data := Normalize([]model.RawPeriodRecord{samplePeriod("KO", 200)}, nil)

	if data.Ticker != "KO" {
		t.Errorf("expected ticker KO, got %q", data.Ticker)
	}
	if len(data.Metrics) != 1 || len(data.LineItems) != 1 {
		t.Fatalf("expected one period, got %d metrics / %d items", len(data.Metrics), len(data.LineItems))
	}

	m := data.Metrics[0]
	if m.ReturnOnEquity != 0.2 {
		t.Errorf("expected ROE 0.2, got %v", m.ReturnOnEquity)
	}
	if m.DebtToEquity != 0.3 {
		t.Errorf("expected D/E 0.3, got %v", m.DebtToEquity)
	}
	if m.OperatingMargin != 0.25 {
		t.Errorf("expected operating margin 0.25, got %v", m.OperatingMargin)
	}
	if m.CurrentRatio != 2 {
		t.Errorf("expected current ratio 2, got %v", m.CurrentRatio)
	}

	li := data.LineItems[0]
	if li.NetIncome != 200 || li.DepreciationAndAmortization != 50 || li.CapitalExpenditure != 80 {
		t.Errorf("unexpected line item: %+v", li)
	}
	if li.DividendsAndOtherCashDistributions != -40 {
		t.Errorf("expected dividends stored as -40, got %v", li.DividendsAndOtherCashDistributions)
	}
	if li.IssuanceOrPurchaseOfEquityShares != -60 {
		t.Errorf("expected buyback stored as -60, got %v", li.IssuanceOrPurchaseOfEquityShares)
	}
}

func TestNormalize_KeepsFiveMostRecentInOrder(t *testing.T) {
	var raw []model.RawPeriodRecord
	for i := 7; i >= 1; i-- {
		raw = append(raw, samplePeriod("AAPL", float64(i*100)))
	}
	data := Normalize(raw, nil)
	if len(data.LineItems) != MaxPeriods {
		t.Fatalf("expected %d periods, got %d", MaxPeriods, len(data.LineItems))
	}
	for i, li := range data.LineItems {
		want := float64((7 - i) * 100)
		if li.NetIncome != want {
			t.Errorf("period %d: expected net income %v, got %v", i, want, li.NetIncome)
		}
	}
}

func TestNormalize_UnknownTickerAndEmptyInput(t *testing.T) {
	data := Normalize(nil, nil)
	if data.Ticker != model.UnknownTicker {
		t.Errorf("expected %q, got %q", model.UnknownTicker, data.Ticker)
	}
	if data.Metrics == nil || data.LineItems == nil {
		t.Error("expected empty, non-nil slices")
	}
	if data.MarketCap != nil {
		t.Error("expected nil market cap")
	}
}

func TestNormalize_ZeroDenominators(t *testing.T) {
	data := Normalize([]model.RawPeriodRecord{{Data: model.RawValues{"netincomeloss": 10}}}, nil)
	m := data.Metrics[0]
	if m.ReturnOnEquity != 0 || m.DebtToEquity != 0 || m.OperatingMargin != 0 || m.CurrentRatio != 0 {
		t.Errorf("expected all-zero metrics, got %+v", m)
	}
}

func TestNormalize_MarketCapIsCopied(t *testing.T) {
	mc := 1e9
	data := Normalize([]model.RawPeriodRecord{samplePeriod("KO", 1)}, &mc)
	mc = 5
	if data.MarketCap == nil || *data.MarketCap != 1e9 {
		t.Errorf("expected market cap 1e9, got %v", data.MarketCap)
	}
}
