package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biquad/dsp/core"
	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
)

// DefaultQ is the Butterworth Q, 1/sqrt(2), the customary default when a
// caller has no preference.
const DefaultQ = 1 / math.Sqrt2

// Params describes one filter to derive.
type Params struct {
	Kind       Kind
	SampleRate float64 // Hz, > 0
	Freq       float64 // Hz, in (0, SampleRate/2)
	Q          float64 // > 0; bandwidth in octaves for KindNotchBandwidth
	GainDB     float64 // peak and shelf kinds
	// Slope is the shelf slope S. Zero selects the Q form; a positive
	// value selects the S form and Q is ignored.
	Slope float64
}

// Derive validates p and returns the normalized coefficient set.
func Derive(p Params) (biquad.Coefficients, error) {
	raw, err := DeriveRaw(p)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	c, err := raw.Normalize()
	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("design: %s: %w", p.Kind, err)
	}

	return c, nil
}

// DeriveRaw validates p and returns the coefficient set before division
// by a0.
func DeriveRaw(p Params) (biquad.RawCoefficients, error) {
	if _, ok := kindNames[p.Kind]; !ok {
		return biquad.RawCoefficients{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(p.Kind))
	}

	w0, err := normalizedW0(p.Freq, p.SampleRate)
	if err != nil {
		return biquad.RawCoefficients{}, err
	}

	if err := p.checkShape(); err != nil {
		return biquad.RawCoefficients{}, err
	}

	switch p.Kind {
	case KindLowpass:
		return lowpassRaw(w0, p.Q), nil
	case KindHighpass:
		return highpassRaw(w0, p.Q), nil
	case KindBandpass:
		return bandpassRaw(w0, p.Q), nil
	case KindAllpass:
		return allpassRaw(w0, p.Q), nil
	case KindNotch:
		return notchRaw(w0, math.Sin(w0)/(2*p.Q)), nil
	case KindNotchBandwidth:
		return notchRaw(w0, bandwidthAlpha(w0, p.Q)), nil
	case KindPeak:
		return peakRaw(w0, p.GainDB, p.Q), nil
	case KindPeakConstantQ:
		return peakConstantQRaw(p.Freq, p.SampleRate, p.GainDB, p.Q), nil
	case KindLowShelf, KindHighShelf:
		alpha, err := shelfAlpha(w0, p.GainDB, p.Q, p.Slope)
		if err != nil {
			return biquad.RawCoefficients{}, err
		}

		if p.Kind == KindLowShelf {
			return lowShelfRaw(w0, p.GainDB, alpha), nil
		}

		return highShelfRaw(w0, p.GainDB, alpha), nil
	}

	return biquad.RawCoefficients{}, fmt.Errorf("%w: %s", ErrUnknownKind, p.Kind)
}

// checkShape validates Q, gain and slope for the kind.
func (p Params) checkShape() error {
	usesQ := !(p.Kind.IsShelf() && p.Slope > 0)
	if usesQ && (!(p.Q > 0) || math.IsInf(p.Q, 0)) {
		return fmt.Errorf("%w: %g", ErrInvalidQ, p.Q)
	}

	if p.Kind.UsesGain() && !core.IsFinite(p.GainDB) {
		return fmt.Errorf("%w: %g dB", ErrInvalidGain, p.GainDB)
	}

	if p.Kind.IsShelf() && (p.Slope < 0 || math.IsNaN(p.Slope) || math.IsInf(p.Slope, 0)) {
		return fmt.Errorf("%w: S=%g", ErrInvalidSlope, p.Slope)
	}

	return nil
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: %g Hz", ErrInvalidSampleRate, sampleRate)
	}

	nyquist := sampleRate / 2
	if !(freq > 0) || freq >= nyquist || math.IsInf(freq, 0) {
		return 0, fmt.Errorf("%w: %g Hz at %g Hz sample rate", ErrInvalidFrequency, freq, sampleRate)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}
