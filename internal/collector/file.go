package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"ValueSentinel/internal/jsonutil"
)

// FileSource reads statements from <Dir>/<SYMBOL>.json or .hjson. A file
// holds either a snapshot object or a bare array of periods.
type FileSource struct {
	Dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) FetchFinancials(ctx context.Context, symbol string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, ext := range []string{".json", ".hjson"} {
		path := filepath.Join(s.Dir, symbol+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		snap, err := ParseSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if snap.Symbol == "" {
			snap.Symbol = symbol
		}
		fillSymbol(snap.Periods, snap.Symbol)
		return snap, nil
	}
	return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
}

// ParseSnapshot decodes a snapshot object or a bare period array, repairing
// malformed JSON where possible. Periods come back most-recent-first.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	trimmed := strings.TrimSpace(string(data))
	snap := &Snapshot{}
	var (
		strategy jsonutil.Strategy
		err      error
	)
	if strings.HasPrefix(trimmed, "[") {
		strategy, err = jsonutil.Decode([]byte(trimmed), &snap.Periods)
	} else {
		strategy, err = jsonutil.Decode([]byte(trimmed), snap)
	}
	if err != nil {
		return nil, err
	}
	if strategy != jsonutil.StrategyJSON {
		log.Warn().Str("strategy", string(strategy)).Msg("financials file is not strict JSON, decoded leniently")
	}
	if len(snap.Periods) == 0 {
		return nil, fmt.Errorf("no periods: %w", ErrNotFound)
	}
	orderPeriods(snap.Periods)
	return snap, nil
}

// ReadSnapshotFile parses a single file outside any source directory.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if snap.Symbol == "" {
		for _, p := range snap.Periods {
			if p.Symbol != "" {
				snap.Symbol = p.Symbol
				break
			}
		}
	}
	fillSymbol(snap.Periods, snap.Symbol)
	return snap, nil
}
