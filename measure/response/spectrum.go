package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-biquad/dsp/core"
)

// ImpulseResponder is anything that can render its own impulse response,
// such as *biquad.Section, *biquad.Chain or *eq.Equalizer.
type ImpulseResponder interface {
	ImpulseResponse(n int) []float64
}

// Spectrum is the one-sided spectrum of a zero-padded impulse response.
type Spectrum struct {
	sampleRate float64
	fftSize    int
	re, im     []float64
	mag        []float64
}

// Measure transforms ir with an FFT of fftSize points. An fftSize of 0
// selects the next power of two >= len(ir).
func Measure(ir []float64, sampleRate float64, fftSize int) (*Spectrum, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyImpulse
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	if fftSize == 0 {
		fftSize = nextPowerOf2(len(ir))
	}

	if fftSize < len(ir) || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d for %d samples", ErrFFTSize, fftSize, len(ir))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range ir {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	s := &Spectrum{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}

	for i := range bins {
		s.re[i] = real(freq[i])
		s.im[i] = imag(freq[i])
	}

	vecmath.Magnitude(s.mag, s.re, s.im)

	return s, nil
}

// MeasureImpulse renders irLen samples of src's impulse response and
// measures it with Measure.
func MeasureImpulse(src ImpulseResponder, sampleRate float64, irLen, fftSize int) (*Spectrum, error) {
	return Measure(src.ImpulseResponse(irLen), sampleRate, fftSize)
}

// Bins returns the number of bins from DC to Nyquist inclusive.
func (s *Spectrum) Bins() int { return len(s.mag) }

// FFTSize returns the transform length.
func (s *Spectrum) FFTSize() int { return s.fftSize }

// Freq returns the centre frequency of bin i in Hz.
func (s *Spectrum) Freq(i int) float64 {
	return float64(i) * s.sampleRate / float64(s.fftSize)
}

// Magnitude returns the linear magnitude of bin i.
func (s *Spectrum) Magnitude(i int) float64 { return s.mag[i] }

// MagnitudeDB returns the magnitude of bin i in dB.
func (s *Spectrum) MagnitudeDB(i int) float64 { return core.LinearToDB(s.mag[i]) }

// Phase returns the phase of bin i in radians.
func (s *Spectrum) Phase(i int) float64 { return math.Atan2(s.im[i], s.re[i]) }

// At returns the point of the bin nearest to freqHz.
func (s *Spectrum) At(freqHz float64) Point {
	i := int(math.Round(freqHz * float64(s.fftSize) / s.sampleRate))
	i = max(0, min(i, len(s.mag)-1))

	return s.Point(i)
}

// Point returns bin i as a Point.
func (s *Spectrum) Point(i int) Point {
	return Point{Freq: s.Freq(i), MagnitudeDB: s.MagnitudeDB(i), PhaseRad: s.Phase(i)}
}

// Points returns every bin as a Point.
func (s *Spectrum) Points() []Point {
	out := make([]Point, len(s.mag))
	for i := range out {
		out[i] = s.Point(i)
	}

	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
