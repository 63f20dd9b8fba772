package calculator

import (
	"math"
	"testing"
)

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		num, den, want float64
	}{
		{10, 2, 5},
		{10, 0, 0},
		{0, 0, 0},
		{-3, 4, -0.75},
	}
	for _, tt := range tests {
		if got := SafeRatio(tt.num, tt.den); got != tt.want {
			t.Errorf("SafeRatio(%v, %v): expected %v, got %v", tt.num, tt.den, tt.want, got)
		}
	}
}

func TestGrowthRate(t *testing.T) {
	if r, ok := GrowthRate(400, 100); !ok || r != 3 {
		t.Errorf("expected 3, got %v (ok=%v)", r, ok)
	}
	if r, ok := GrowthRate(50, -100); !ok || r != 1.5 {
		t.Errorf("expected 1.5 against negative base, got %v (ok=%v)", r, ok)
	}
	if _, ok := GrowthRate(10, 0); ok {
		t.Error("expected ok=false for zero base")
	}
}

func TestNegate(t *testing.T) {
	if got := Negate(100); got != -100 {
		t.Errorf("expected -100, got %v", got)
	}
	if got := Negate(0); math.Signbit(got) {
		t.Error("expected positive zero")
	}
}

func TestDiscountedGrowthSum_ClosedForm(t *testing.T) {
	base, g, d, n := 90.0, 0.05, 0.09, 10
	got, err := DiscountedGrowthSum(base, g, d, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := (1 + g) / (1 + d)
	want := base * q * (1 - math.Pow(q, float64(n))) / (1 - q)
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("expected %.10f, got %.10f", want, got)
	}
}

func TestDiscountedGrowthSum_InvalidYears(t *testing.T) {
	if _, err := DiscountedGrowthSum(1, 0.05, 0.09, 0); err == nil {
		t.Error("expected error for zero years")
	}
	if _, err := TerminalValue(1, 0.05, 0.09, 12, -1); err == nil {
		t.Error("expected error for negative years")
	}
}

func TestTerminalValue(t *testing.T) {
	got, err := TerminalValue(90, 0.05, 0.09, 12, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 90 * math.Pow(1.05, 10) * 12 / math.Pow(1.09, 10)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %.10f, got %.10f", want, got)
	}
}
