package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"ValueSentinel/internal/model"
)

func report(ticker string, sig model.Signal, score float64) model.Report {
	return model.Report{ticker: {Signal: sig, Score: score, MaxScore: 15}}
}

func TestObserve_Flip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "signals.json")
	tr, err := NewTracker(path)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}

	c, err := tr.Observe(report("ACME", model.SignalNeutral, 8))
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if !c.First || c.Flipped() || c.Streak != 1 {
		t.Errorf("expected first observation, got %+v", c)
	}

	c, _ = tr.Observe(report("ACME", model.SignalNeutral, 9))
	if c.Flipped() || c.Streak != 2 {
		t.Errorf("expected unchanged streak 2, got %+v", c)
	}

	c, _ = tr.Observe(report("ACME", model.SignalBullish, 12))
	if !c.Flipped() || c.From != model.SignalNeutral || c.To != model.SignalBullish || c.Streak != 1 {
		t.Errorf("expected flip to bullish, got %+v", c)
	}

	ts, ok := tr.Get("acme")
	if !ok {
		t.Fatal("expected ACME tracked")
	}
	if len(ts.RecentScores) != 3 || ts.LastScore != 12 {
		t.Errorf("unexpected state %+v", ts)
	}
}

func TestTracker_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	tr, err := NewTracker(path)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	tr.Observe(report("KO", model.SignalBearish, 3))
	tr.Observe(report("ACME", model.SignalBullish, 13))

	reloaded, err := NewTracker(path)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	states := reloaded.States()
	if len(states) != 2 || states[0].Ticker != "ACME" || states[1].LastSignal != model.SignalBearish {
		t.Errorf("unexpected reloaded states %+v", states)
	}
	c, _ := reloaded.Observe(report("KO", model.SignalBearish, 2))
	if c.First || c.Streak != 2 {
		t.Errorf("expected continued streak after reload, got %+v", c)
	}
}

func TestObserve_RecentScoresCapped(t *testing.T) {
	tr, _ := NewTracker(filepath.Join(t.TempDir(), "s.json"))
	for i := 0; i < maxRecentScores+5; i++ {
		tr.Observe(report("ACME", model.SignalNeutral, float64(i)))
	}
	ts, _ := tr.Get("ACME")
	if len(ts.RecentScores) != maxRecentScores {
		t.Errorf("expected %d scores, got %d", maxRecentScores, len(ts.RecentScores))
	}
	if ts.RecentScores[0] != 5 {
		t.Errorf("expected oldest kept score 5, got %v", ts.RecentScores[0])
	}
}

func TestObserve_EmptyReport(t *testing.T) {
	tr, _ := NewTracker(filepath.Join(t.TempDir(), "s.json"))
	if _, err := tr.Observe(model.Report{}); err == nil {
		t.Error("expected error for empty report")
	}
}

func TestObserve_FailedSaveKeepsPreviousSignal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	tr, _ := NewTracker(path)
	if _, err := tr.Observe(report("ACME", model.SignalBullish, 12)); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	// A directory in place of the temp file makes the write fail.
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := tr.Observe(report("ACME", model.SignalBearish, 3)); err == nil {
		t.Fatal("expected save error")
	}
	if ts, _ := tr.Get("ACME"); ts.LastSignal != model.SignalBullish || ts.Streak != 1 || len(ts.RecentScores) != 1 {
		t.Errorf("expected unchanged bullish state, got %+v", ts)
	}

	if err := os.Remove(path + ".tmp"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	c, err := tr.Observe(report("ACME", model.SignalBearish, 3))
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if !c.Flipped() || c.From != model.SignalBullish || c.To != model.SignalBearish {
		t.Errorf("expected bullish to bearish flip after recovery, got %+v", c)
	}
}

func TestObserve_FailedFirstSaveIsForgotten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	tr, _ := NewTracker(path)
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := tr.Observe(report("KO", model.SignalNeutral, 7)); err == nil {
		t.Fatal("expected save error")
	}
	if _, ok := tr.Get("KO"); ok {
		t.Error("expected KO not tracked after failed save")
	}
}
