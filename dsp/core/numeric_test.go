package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -30, lo: -24, hi: 12, expected: -24},
		{name: "above", value: 13, lo: -24, hi: 12, expected: 12},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1, 1e-6) {
		t.Fatal("expected relative comparison to pass for large values")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0) || !IsFinite(-1e300) {
		t.Fatal("finite values reported as non-finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("non-finite values reported as finite")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestPowerToDB(t *testing.T) {
	if got := PowerToDB(100); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("PowerToDB(100) = %v, want 20", got)
	}
	if !math.IsInf(PowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(PowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}

func TestSplitGain(t *testing.T) {
	a := SplitGain(6)
	if !NearlyEqual(a*a, DBToLinear(6), 1e-12) {
		t.Fatalf("SplitGain(6)^2 = %v, want %v", a*a, DBToLinear(6))
	}
	if SplitGain(0) != 1 {
		t.Fatalf("SplitGain(0) = %v, want 1", SplitGain(0))
	}
}
