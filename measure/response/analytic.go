package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-biquad/dsp/core"
)

var (
	// ErrInvalidRange is returned for a frequency range that is not
	// 0 < lo < hi, or not below Nyquist.
	ErrInvalidRange = errors.New("response: invalid frequency range")
	// ErrTooFewPoints is returned when fewer than two points are requested.
	ErrTooFewPoints = errors.New("response: need at least two points")
	// ErrNoCrossing is returned when the magnitude does not cross the
	// target level inside the search range.
	ErrNoCrossing = errors.New("response: magnitude does not cross target in range")
	// ErrEmptyImpulse is returned by Measure for an empty impulse response.
	ErrEmptyImpulse = errors.New("response: impulse response is empty")
	// ErrFFTSize is returned for an FFT size that is not a power of two at
	// least as long as the impulse response.
	ErrFFTSize = errors.New("response: FFT size must be a power of two >= impulse length")
	// ErrInvalidSampleRate is returned for a sample rate that is not
	// positive and finite.
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive and finite")
)

// Responder is anything with a complex frequency response, such as
// *biquad.Coefficients, *biquad.Chain or *eq.Equalizer.
type Responder interface {
	Response(freqHz, sampleRate float64) complex128
}

// Point is one sample of a frequency response.
type Point struct {
	Freq        float64 // Hz
	MagnitudeDB float64
	PhaseRad    float64 // wrapped to [-pi, pi]
}

// PhaseDeg returns the phase in degrees.
func (p Point) PhaseDeg() float64 {
	return p.PhaseRad * 180 / math.Pi
}

// LogFrequencies returns n logarithmically spaced frequencies from lo to
// hi inclusive.
func LogFrequencies(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPoints, n)
	}

	if !(lo > 0) || !(hi > lo) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}

	out[n-1] = hi

	return out, nil
}

// LinearFrequencies returns n evenly spaced frequencies from lo to hi
// inclusive. lo may be zero.
func LinearFrequencies(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPoints, n)
	}

	if lo < 0 || !(hi > lo) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}

	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}

	out[n-1] = hi

	return out, nil
}

// Analyze evaluates r at every frequency in freqs.
func Analyze(r Responder, sampleRate float64, freqs []float64) []Point {
	out := make([]Point, len(freqs))
	for i, f := range freqs {
		h := r.Response(f, sampleRate)
		out[i] = Point{
			Freq:        f,
			MagnitudeDB: core.LinearToDB(cmplx.Abs(h)),
			PhaseRad:    cmplx.Phase(h),
		}
	}

	return out
}

// FindCrossing returns the frequency in [lo, hi] where the magnitude of r
// crosses targetDB, searched by bisection on a log-frequency axis. The
// magnitude at lo and hi must lie on opposite sides of the target.
func FindCrossing(r Responder, sampleRate, targetDB, lo, hi float64) (float64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	if !(lo > 0) || !(hi > lo) || hi > sampleRate/2 {
		return 0, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}

	level := func(f float64) float64 {
		return core.LinearToDB(cmplx.Abs(r.Response(f, sampleRate))) - targetDB
	}

	dLo, dHi := level(lo), level(hi)
	if dLo == 0 {
		return lo, nil
	}

	if dHi == 0 {
		return hi, nil
	}

	if math.Signbit(dLo) == math.Signbit(dHi) || math.IsNaN(dLo) || math.IsNaN(dHi) {
		return 0, fmt.Errorf("%w: %g dB at [%g, %g] Hz", ErrNoCrossing, targetDB, lo, hi)
	}

	for range 200 {
		mid := math.Sqrt(lo * hi)
		if hi/lo-1 < 1e-12 {
			return mid, nil
		}

		d := level(mid)
		if d == 0 {
			return mid, nil
		}

		if math.Signbit(d) == math.Signbit(dLo) {
			lo, dLo = mid, d
		} else {
			hi = mid
		}
	}

	return math.Sqrt(lo * hi), nil
}
