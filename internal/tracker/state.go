package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ValueSentinel/internal/model"
)

// maxRecentScores caps the score history kept per ticker.
const maxRecentScores = 12

// TickerState is the last known signal of one ticker.
type TickerState struct {
	Ticker         string       `json:"ticker"`
	LastSignal     model.Signal `json:"lastSignal"`
	LastScore      float64      `json:"lastScore"`
	MaxScore       float64      `json:"maxScore"`
	MarginOfSafety *float64     `json:"marginOfSafety"`
	// Streak counts consecutive runs that produced LastSignal.
	Streak       int       `json:"streak"`
	RecentScores []float64 `json:"recentScores"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// State is the persisted form of all tracked tickers.
type State struct {
	Tickers   map[string]*TickerState `json:"tickers"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// LoadState reads the state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Tickers: map[string]*TickerState{}}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if state.Tickers == nil {
		state.Tickers = map[string]*TickerState{}
	}
	return &state, nil
}

// SaveState writes the state to a JSON file, replacing it atomically.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
