package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// StaticSource serves fixed snapshots for development and testing.
type StaticSource struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewStaticSource returns a source serving the given snapshots, keyed by
// their upper-cased symbol.
func NewStaticSource(snaps ...*Snapshot) *StaticSource {
	s := &StaticSource{snapshots: make(map[string]*Snapshot)}
	for _, snap := range snaps {
		s.Put(snap)
	}
	return s
}

// Put adds or replaces a snapshot.
func (s *StaticSource) Put(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[strings.ToUpper(snap.Symbol)] = snap
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchFinancials(_ context.Context, symbol string) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[strings.ToUpper(symbol)]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}
	cp := *snap
	cp.Periods = append(cp.Periods[:0:0], snap.Periods...)
	fillSymbol(cp.Periods, cp.Symbol)
	return &cp, nil
}
