package collector

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/normalizer"
)

// minTrendPeriods is the history the consistency score needs.
const minTrendPeriods = 4

// Collector orchestrates fetching and normalisation.
type Collector struct {
	Source Source
}

// NewCollector creates a new Collector.
func NewCollector(source Source) *Collector {
	return &Collector{Source: source}
}

// Collect fetches raw statements for symbol and normalises them. A market
// cap override, when non-nil, replaces the one reported by the source.
func (c *Collector) Collect(ctx context.Context, symbol string, marketCap *float64) (model.FinancialData, error) {
	snap, err := c.Source.FetchFinancials(ctx, symbol)
	if err != nil {
		return model.FinancialData{}, fmt.Errorf("fetch %s from %s: %w", symbol, c.Source.Name(), err)
	}
	return FromSnapshot(snap, marketCap), nil
}

// FromSnapshot normalises a snapshot, logging gaps that will weaken the
// analysis.
func FromSnapshot(snap *Snapshot, marketCap *float64) model.FinancialData {
	if marketCap == nil {
		marketCap = snap.MarketCap
	}
	data := normalizer.Normalize(snap.Periods, marketCap)

	if len(snap.Periods) < minTrendPeriods {
		log.Warn().Str("ticker", data.Ticker).Int("periods", len(snap.Periods)).
			Msg("fewer periods than needed for an earnings trend")
	}
	if data.MarketCap == nil {
		log.Warn().Str("ticker", data.Ticker).Msg("no market cap, margin of safety will be unavailable")
	}
	log.Debug().Str("ticker", data.Ticker).Int("periods", len(data.LineItems)).Msg("financials normalised")
	return data
}
