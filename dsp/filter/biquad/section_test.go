package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-biquad/internal/testutil"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns unity gain coefficients (B0=1, all else 0).
func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// refCoeffs is a stable lowpass-like set used by most tests.
func refCoeffs() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("initial history not zero: %v", st)
	}
	if s.A0() != 1 {
		t.Fatalf("A0 = %v, want 1", s.A0())
	}
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(passthrough())
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); y != x {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DirectFormI(t *testing.T) {
	// y[n] = 0.25x[n] + 0.5x[n-1] + 0.25x[n-2] + 0.2y[n-1] - 0.04y[n-2]
	//
	// x = [1, 0, 0, 0]:
	// n=0: 0.25
	// n=1: 0.5 + 0.2*0.25 = 0.55
	// n=2: 0.25 + 0.2*0.55 - 0.04*0.25 = 0.35
	// n=3: 0.2*0.35 - 0.04*0.55 = 0.048
	s := NewSection(refCoeffs())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}

	// History after the last step: x1=x2=0, y1=0.048, y2=0.35.
	st := s.State()
	if st[0] != 0 || st[1] != 0 || !almostEqual(st[2], 0.048, eps) || !almostEqual(st[3], 0.35, eps) {
		t.Fatalf("unexpected history: %v", st)
	}
}

func TestProcessSample_HistoryShift(t *testing.T) {
	s := NewSection(Coefficients{})
	s.ProcessSample(3)
	s.ProcessSample(7)
	if st := s.State(); st[0] != 7 || st[1] != 3 {
		t.Fatalf("input history = {%v, %v}, want {7, 3}", st[0], st[1])
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	input := testutil.DeterministicNoise(7, 1, 257)

	s1 := NewSection(refCoeffs())
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(refCoeffs())
	block := make([]float64, len(input))
	copy(block, input)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Fatalf("sample %d: ProcessBlock=%.17g, ProcessSample=%.17g", i, block[i], ref[i])
		}
	}

	h1, h2 := s1.State(), s2.State()
	for i := range h1 {
		if !almostEqual(h1[i], h2[i], eps) {
			t.Fatalf("history diverged: %v vs %v", h1, h2)
		}
	}
}

func TestProcessBlock_Empty(t *testing.T) {
	s := NewSection(refCoeffs())
	s.ProcessSample(1)
	before := s.State()
	s.ProcessBlock(nil)
	if s.State() != before {
		t.Fatal("empty block changed history")
	}
}

func TestProcessBlockTo_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	orig := append([]float64(nil), input...)

	s1 := NewSection(refCoeffs())
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(refCoeffs())
	dst := make([]float64, len(input))
	s2.ProcessBlockTo(dst, input)

	for i := range dst {
		if dst[i] != ref[i] {
			t.Errorf("sample %d: ProcessBlockTo=%.15f, ProcessSample=%.15f", i, dst[i], ref[i])
		}
	}

	for i := range input {
		if input[i] != orig[i] {
			t.Errorf("src modified at index %d", i)
		}
	}
}

func TestProcess_CarriesStateAcrossCalls(t *testing.T) {
	input := testutil.DeterministicSine(440, 48000, 0.8, 64)

	whole := NewSection(refCoeffs()).Process(input)

	s := NewSection(refCoeffs())
	first := s.Process(input[:20])
	second := s.Process(input[20:])
	split := append(first, second...)

	for i := range whole {
		if !almostEqual(whole[i], split[i], eps) {
			t.Fatalf("sample %d: whole=%v split=%v", i, whole[i], split[i])
		}
	}
}

func TestProcess_DoesNotModifyInput(t *testing.T) {
	input := []float64{1, 2, 3}
	out := NewSection(Coefficients{B0: 2}).Process(input)
	if input[0] != 1 || input[1] != 2 || input[2] != 3 {
		t.Fatalf("input modified: %v", input)
	}
	if out[2] != 6 {
		t.Fatalf("out[2] = %v, want 6", out[2])
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	out := NewSection(refCoeffs()).Process(nil)
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestProcessSample_ZeroCoefficients(t *testing.T) {
	s := NewSection(Coefficients{})
	for i := range 10 {
		if y := s.ProcessSample(1.0); y != 0 {
			t.Errorf("sample %d: got %v, want 0", i, y)
		}
	}
}

func TestProcessSample_PureDelay(t *testing.T) {
	s := NewSection(Coefficients{B2: 1})
	input := []float64{1, 2, 3, 4, 5}
	want := []float64{0, 0, 1, 2, 3}
	for i, x := range input {
		if y := s.ProcessSample(x); y != want[i] {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcessSample_NaNPropagates(t *testing.T) {
	s := NewSection(refCoeffs())
	if y := s.ProcessSample(math.NaN()); !math.IsNaN(y) {
		t.Fatalf("got %v, want NaN", y)
	}
	if y := s.ProcessSample(0); !math.IsNaN(y) {
		t.Fatalf("NaN did not stay in history: %v", y)
	}
}

func TestSetCoefficients_KeepsHistory(t *testing.T) {
	s := NewSection(refCoeffs())
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	before := s.State()

	next := Coefficients{B0: 0.3, B1: 0.4, B2: 0.3, A1: -0.3, A2: 0.05}
	s.SetCoefficients(next)

	if s.State() != before {
		t.Fatalf("history changed: before=%v after=%v", before, s.State())
	}
	if s.Coefficients != next {
		t.Fatalf("coefficients not replaced: %v", s.Coefficients)
	}
}

func TestReset(t *testing.T) {
	s := NewSection(refCoeffs())
	s.ProcessSample(1)
	s.ProcessSample(0.5)

	if s.State() == [4]float64{} {
		t.Fatal("history should be non-zero after processing")
	}

	s.Reset()
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("history not zero after reset: %v", st)
	}
	if s.Coefficients != refCoeffs() {
		t.Fatal("reset changed coefficients")
	}
}

func TestReset_ReplayIsBitIdentical(t *testing.T) {
	input := testutil.DeterministicNoise(99, 1, 500)
	s := NewSection(refCoeffs())

	first := s.Process(input)
	s.Reset()
	second := s.Process(input)

	testutil.RequireBitIdentical(t, second, first)
}

func TestSections_Independent(t *testing.T) {
	// Interleaving two sections with the same coefficients must not change
	// either output compared to running each alone.
	a := testutil.DeterministicNoise(1, 1, 128)
	b := testutil.DeterministicSine(1000, 48000, 1, 128)

	wantA := NewSection(refCoeffs()).Process(a)
	wantB := NewSection(refCoeffs()).Process(b)

	sa := NewSection(refCoeffs())
	sb := NewSection(refCoeffs())
	for i := range a {
		if got := sa.ProcessSample(a[i]); !almostEqual(got, wantA[i], eps) {
			t.Fatalf("section A sample %d: got %v, want %v", i, got, wantA[i])
		}
		if got := sb.ProcessSample(b[i]); !almostEqual(got, wantB[i], eps) {
			t.Fatalf("section B sample %d: got %v, want %v", i, got, wantB[i])
		}
	}
}

func TestState_SaveRestore(t *testing.T) {
	s := NewSection(refCoeffs())

	s.ProcessSample(1)
	s.ProcessSample(0.5)
	saved := s.State()

	y3 := s.ProcessSample(-0.3)
	y4 := s.ProcessSample(0.7)

	s.SetState(saved)
	y3b := s.ProcessSample(-0.3)
	y4b := s.ProcessSample(0.7)

	if y3 != y3b {
		t.Errorf("sample 3: got %v after restore, want %v", y3b, y3)
	}
	if y4 != y4b {
		t.Errorf("sample 4: got %v after restore, want %v", y4b, y4)
	}
}

func TestProcessSample_StabilityLongRun(t *testing.T) {
	s := NewSection(refCoeffs())
	s.ProcessSample(1)

	for range 10000 {
		s.ProcessSample(0)
	}

	for i, v := range s.State() {
		if math.Abs(v) > 1e-100 {
			t.Errorf("history[%d] did not decay: %v", i, v)
		}
	}
}
