package jsonutil

import (
	"errors"
	"testing"
)

type sample struct {
	Signal     string  `json:"signal"`
	Confidence float64 `json:"confidence"`
}

func TestDecode_Strict(t *testing.T) {
	var s sample
	strategy, err := Decode([]byte(`{"signal":"bullish","confidence":80}`), &s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if strategy != StrategyJSON {
		t.Errorf("expected json strategy, got %s", strategy)
	}
	if s.Signal != "bullish" || s.Confidence != 80 {
		t.Errorf("unexpected result %+v", s)
	}
}

func TestDecode_Repaired(t *testing.T) {
	var s sample
	strategy, err := Decode([]byte(`{'signal': 'neutral', "confidence": 55,}`), &s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if strategy == StrategyJSON {
		t.Error("expected a lenient strategy")
	}
	if s.Signal != "neutral" || s.Confidence != 55 {
		t.Errorf("unexpected result %+v", s)
	}
}

func TestDecode_Hjson(t *testing.T) {
	var s sample
	strategy, err := Decode([]byte("# comment\n{\n  signal: bearish\n  confidence: 10\n}\n"), &s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if strategy != StrategyHjson {
		t.Errorf("expected hjson strategy, got %s", strategy)
	}
	if s.Signal != "bearish" || s.Confidence != 10 {
		t.Errorf("unexpected result %+v", s)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	var s sample
	_, err := Decode([]byte(`{"signal": ["not", "a", "string"]}`), &s)
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
}

func TestDecode_TruncatedIsRepaired(t *testing.T) {
	var s sample
	strategy, err := Decode([]byte(`{"signal": "bullish", "confidence": 70`), &s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if strategy != StrategyRepaired {
		t.Errorf("expected repaired strategy, got %s", strategy)
	}
	if s.Signal != "bullish" || s.Confidence != 70 {
		t.Errorf("unexpected result %+v", s)
	}
}
