package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/dsp/filter/design"
	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
)

const sampleRate = 48000.0

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func lowpass5k(t *testing.T) biquad.Coefficients {
	t.Helper()

	c, err := design.Lowpass(5000, design.DefaultQ, sampleRate)
	if err != nil {
		t.Fatal(err)
	}

	return c
}

func TestLogFrequencies(t *testing.T) {
	f, err := LogFrequencies(20, 20000, 4)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{20, 200, 2000, 20000}
	for i := range want {
		if !almostEqual(f[i], want[i], 1e-9*want[i]) {
			t.Errorf("f[%d] = %v, want %v", i, f[i], want[i])
		}
	}
}

func TestLinearFrequencies(t *testing.T) {
	f, err := LinearFrequencies(0, 24000, 5)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 6000, 12000, 18000, 24000}
	for i := range want {
		if f[i] != want[i] {
			t.Errorf("f[%d] = %v, want %v", i, f[i], want[i])
		}
	}
}

func TestFrequencies_Errors(t *testing.T) {
	if _, err := LogFrequencies(20, 20000, 1); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("n=1: %v", err)
	}
	if _, err := LogFrequencies(0, 20000, 10); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("lo=0: %v", err)
	}
	if _, err := LinearFrequencies(100, 100, 10); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("lo=hi: %v", err)
	}
}

func TestAnalyze_MatchesCoefficients(t *testing.T) {
	c := lowpass5k(t)
	freqs, _ := LogFrequencies(20, 20000, 50)

	for _, p := range Analyze(&c, sampleRate, freqs) {
		if want := c.MagnitudeDB(p.Freq, sampleRate); !almostEqual(p.MagnitudeDB, want, 1e-9) {
			t.Errorf("%v Hz: %v dB, want %v", p.Freq, p.MagnitudeDB, want)
		}
		if want := c.Phase(p.Freq, sampleRate); !almostEqual(p.PhaseRad, want, 1e-12) {
			t.Errorf("%v Hz: phase %v, want %v", p.Freq, p.PhaseRad, want)
		}
	}
}

func TestPoint_PhaseDeg(t *testing.T) {
	if d := (Point{PhaseRad: -math.Pi / 2}).PhaseDeg(); !almostEqual(d, -90, 1e-12) {
		t.Fatalf("PhaseDeg = %v", d)
	}
}

func TestFindCrossing_LowpassCorner(t *testing.T) {
	c := lowpass5k(t)

	f, err := FindCrossing(&c, sampleRate, -3.0103, 100, 20000)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(f, 5000, 1) {
		t.Fatalf("-3 dB point = %v Hz, want 5000", f)
	}
}

func TestFindCrossing_Errors(t *testing.T) {
	c := lowpass5k(t)

	if _, err := FindCrossing(&c, sampleRate, -3, 10, 100); !errors.Is(err, ErrNoCrossing) {
		t.Errorf("passband only: %v", err)
	}
	if _, err := FindCrossing(&c, sampleRate, -3, 100, 30000); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("above nyquist: %v", err)
	}
	if _, err := FindCrossing(&c, 0, -3, 100, 1000); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("zero rate: %v", err)
	}
}

func TestMeasure_LowpassMatchesAnalytic(t *testing.T) {
	c := lowpass5k(t)
	s := biquad.NewSection(c)

	sp, err := MeasureImpulse(s, sampleRate, 4096, 4096)
	if err != nil {
		t.Fatal(err)
	}

	if sp.Bins() != 2049 || sp.FFTSize() != 4096 {
		t.Fatalf("bins=%d size=%d", sp.Bins(), sp.FFTSize())
	}

	// Compare in the passband and transition band where the level is far
	// above the truncation floor.
	for i := 1; sp.Freq(i) < 12000; i += 7 {
		f := sp.Freq(i)
		if want := c.MagnitudeDB(f, sampleRate); !almostEqual(sp.MagnitudeDB(i), want, 1e-6) {
			t.Fatalf("bin %d (%v Hz): %v dB, want %v", i, f, sp.MagnitudeDB(i), want)
		}
		if want := c.Phase(f, sampleRate); !almostEqual(sp.Phase(i), want, 1e-6) {
			t.Fatalf("bin %d (%v Hz): phase %v, want %v", i, f, sp.Phase(i), want)
		}
	}

	// The -3 dB point sits at the design frequency.
	p := sp.At(5000)
	if !almostEqual(p.Freq, 5000, sampleRate/4096) {
		t.Fatalf("nearest bin %v Hz", p.Freq)
	}
	if !almostEqual(p.MagnitudeDB, -3.01, 0.05) {
		t.Fatalf("level near 5 kHz = %v dB, want -3.01", p.MagnitudeDB)
	}
}

func TestMeasure_EqualizerMatchesAnalytic(t *testing.T) {
	e, err := eq.New(sampleRate, eq.TenBand(), eq.WithGains(-10, 0, -5, 5, 0, -5, 0, 5, 10, 12))
	if err != nil {
		t.Fatal(err)
	}

	// Narrow low bands ring for a long time; use a long impulse.
	sp, err := MeasureImpulse(e, sampleRate, 1<<16, 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []float64{100, 1000, 5000, 15011} {
		p := sp.At(f)
		if want := e.MagnitudeDB(p.Freq); !almostEqual(p.MagnitudeDB, want, 1e-3) {
			t.Errorf("%v Hz: measured %v dB, analytic %v", p.Freq, p.MagnitudeDB, want)
		}
	}
}

func TestMeasure_Errors(t *testing.T) {
	if _, err := Measure(nil, sampleRate, 0); !errors.Is(err, ErrEmptyImpulse) {
		t.Errorf("empty: %v", err)
	}
	if _, err := Measure([]float64{1, 0, 0}, sampleRate, 2); !errors.Is(err, ErrFFTSize) {
		t.Errorf("short fft: %v", err)
	}
	if _, err := Measure([]float64{1}, sampleRate, 100); !errors.Is(err, ErrFFTSize) {
		t.Errorf("non power of two: %v", err)
	}
	if _, err := Measure([]float64{1}, -1, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("bad rate: %v", err)
	}
}

func TestMeasure_ImpulseIsFlat(t *testing.T) {
	ir := make([]float64, 13)
	ir[0] = 1

	sp, err := Measure(ir, sampleRate, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sp.FFTSize() != 16 || sp.Bins() != 9 {
		t.Fatalf("size=%d bins=%d, want 16 and 9", sp.FFTSize(), sp.Bins())
	}
	for _, p := range sp.Points() {
		if !almostEqual(p.MagnitudeDB, 0, 1e-12) || !almostEqual(p.PhaseRad, 0, 1e-12) {
			t.Fatalf("bin %v Hz: %v dB, %v rad", p.Freq, p.MagnitudeDB, p.PhaseRad)
		}
	}
}
