package collector

import (
	"context"
	"errors"
	"sort"

	"ValueSentinel/internal/model"
)

// ErrNotFound is returned when a source has no financials for a symbol.
var ErrNotFound = errors.New("financials not found")

// Snapshot is the raw material for one analysis.
type Snapshot struct {
	Symbol    string                  `json:"symbol"`
	MarketCap *float64                `json:"marketCap"`
	Periods   []model.RawPeriodRecord `json:"periods"`
}

//go:generate mockgen -source=source.go -destination=mock_source.go -package=collector

// Source defines the interface for fetching raw financial statements.
type Source interface {
	FetchFinancials(ctx context.Context, symbol string) (*Snapshot, error)
	Name() string
}

// orderPeriods sorts periods most-recent-first when every period carries a
// date, or failing that a fiscal year. Otherwise the supplied order stands.
func orderPeriods(periods []model.RawPeriodRecord) {
	allDated, allYeared := true, true
	for _, p := range periods {
		if p.Date == "" {
			allDated = false
		}
		if p.FiscalYear == 0 {
			allYeared = false
		}
	}
	switch {
	case allDated:
		sort.SliceStable(periods, func(i, j int) bool { return periods[i].Date > periods[j].Date })
	case allYeared:
		sort.SliceStable(periods, func(i, j int) bool { return periods[i].FiscalYear > periods[j].FiscalYear })
	}
}

// fillSymbol stamps symbol on periods that lack one.
func fillSymbol(periods []model.RawPeriodRecord, symbol string) {
	if symbol == "" {
		return
	}
	for i := range periods {
		if periods[i].Symbol == "" {
			periods[i].Symbol = symbol
		}
	}
}
