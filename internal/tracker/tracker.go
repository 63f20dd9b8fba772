// Package tracker remembers the last signal per ticker so that only
// changes get announced.
package tracker

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phuslu/log"

	"ValueSentinel/internal/model"
)

// Change describes how an observation moved a ticker's signal.
type Change struct {
	Ticker string
	From   model.Signal
	To     model.Signal
	// First is true when the ticker had no previous signal.
	First  bool
	Streak int
}

// Flipped reports whether the signal differs from the previous run.
func (c Change) Flipped() bool {
	return !c.First && c.From != c.To
}

// Tracker handles signal state with concurrency safety.
type Tracker struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewTracker creates a Tracker, loading state from disk.
func NewTracker(filePath string) (*Tracker, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Tracker{state: state, filePath: filePath}, nil
}

// Observe records the signal of report and returns how it changed.
func (t *Tracker) Observe(report model.Report) (Change, error) {
	res, ok := report.Result()
	if !ok {
		return Change{}, fmt.Errorf("observe: empty report")
	}
	ticker := strings.ToUpper(report.Ticker())

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.state.Tickers[ticker]
	ts := &TickerState{Ticker: ticker}
	if seen {
		cp := copyState(prev)
		ts = &cp
	}
	change := Change{Ticker: ticker, From: ts.LastSignal, To: res.Signal, First: !seen}

	if seen && ts.LastSignal == res.Signal {
		ts.Streak++
	} else {
		ts.Streak = 1
	}
	ts.LastSignal = res.Signal
	ts.LastScore = res.Score
	ts.MaxScore = res.MaxScore
	ts.MarginOfSafety = res.MarginOfSafety
	ts.RecentScores = append(ts.RecentScores, res.Score)
	if len(ts.RecentScores) > maxRecentScores {
		ts.RecentScores = ts.RecentScores[len(ts.RecentScores)-maxRecentScores:]
	}
	ts.UpdatedAt = time.Now()
	change.Streak = ts.Streak

	// A failed save restores the previous entry.
	t.state.Tickers[ticker] = ts
	if err := SaveState(t.filePath, t.state); err != nil {
		if seen {
			t.state.Tickers[ticker] = prev
		} else {
			delete(t.state.Tickers, ticker)
		}
		log.Error().Err(err).Str("path", t.filePath).Msg("failed to save signal state")
		return change, fmt.Errorf("save state: %w", err)
	}
	if change.Flipped() {
		log.Info().Str("ticker", ticker).Str("from", string(change.From)).Str("to", string(change.To)).Msg("signal changed")
	}
	return change, nil
}

// Get returns a copy of the state of ticker.
func (t *Tracker) Get(ticker string) (TickerState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts, ok := t.state.Tickers[strings.ToUpper(ticker)]
	if !ok {
		return TickerState{}, false
	}
	return copyState(ts), true
}

// States returns copies of all tracked tickers sorted by ticker.
func (t *Tracker) States() []TickerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TickerState, 0, len(t.state.Tickers))
	for _, ts := range t.state.Tickers {
		out = append(out, copyState(ts))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

func copyState(ts *TickerState) TickerState {
	cp := *ts
	cp.RecentScores = append([]float64(nil), ts.RecentScores...)
	if ts.MarginOfSafety != nil {
		v := *ts.MarginOfSafety
		cp.MarginOfSafety = &v
	}
	return cp
}
