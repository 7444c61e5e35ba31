package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/dsp/core"
)

// Lowpass designs a second-order lowpass at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindLowpass, SampleRate: sampleRate, Freq: freq, Q: q})
}

// Highpass designs a second-order highpass at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindHighpass, SampleRate: sampleRate, Freq: freq, Q: q})
}

// Bandpass designs a constant-skirt-gain bandpass (peak gain = Q).
func Bandpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindBandpass, SampleRate: sampleRate, Freq: freq, Q: q})
}

// Allpass designs an allpass centered at freq (Hz). The phase passes
// through -pi at freq.
func Allpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindAllpass, SampleRate: sampleRate, Freq: freq, Q: q})
}

// Notch designs a notch centered at freq (Hz).
func Notch(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindNotch, SampleRate: sampleRate, Freq: freq, Q: q})
}

// NotchBandwidth designs a notch whose width is given in octaves between
// the -3 dB edges.
func NotchBandwidth(freq, octaves, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindNotchBandwidth, SampleRate: sampleRate, Freq: freq, Q: octaves})
}

// Peak designs a peaking EQ with gainDB at freq.
func Peak(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindPeak, SampleRate: sampleRate, Freq: freq, Q: q, GainDB: gainDB})
}

// PeakConstantQ designs a bilinear peaking EQ whose bandwidth stays the same
// for boost and cut.
func PeakConstantQ(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindPeakConstantQ, SampleRate: sampleRate, Freq: freq, Q: q, GainDB: gainDB})
}

// LowShelf designs a low shelf with gainDB below freq, shaped by q.
func LowShelf(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindLowShelf, SampleRate: sampleRate, Freq: freq, Q: q, GainDB: gainDB})
}

// HighShelf designs a high shelf with gainDB above freq, shaped by q.
func HighShelf(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	return Derive(Params{Kind: KindHighShelf, SampleRate: sampleRate, Freq: freq, Q: q, GainDB: gainDB})
}

// LowShelfSlope designs a low shelf shaped by the shelf slope S. S = 1 is
// the steepest slope without overshoot.
func LowShelfSlope(freq, gainDB, slope, sampleRate float64) (biquad.Coefficients, error) {
	if !(slope > 0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: S=%g", ErrInvalidSlope, slope)
	}

	return Derive(Params{Kind: KindLowShelf, SampleRate: sampleRate, Freq: freq, GainDB: gainDB, Slope: slope})
}

// HighShelfSlope designs a high shelf shaped by the shelf slope S.
func HighShelfSlope(freq, gainDB, slope, sampleRate float64) (biquad.Coefficients, error) {
	if !(slope > 0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: S=%g", ErrInvalidSlope, slope)
	}

	return Derive(Params{Kind: KindHighShelf, SampleRate: sampleRate, Freq: freq, GainDB: gainDB, Slope: slope})
}

func lowpassRaw(w0, q float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return biquad.RawCoefficients{
		B0: (1 - cw) / 2,
		B1: 1 - cw,
		B2: (1 - cw) / 2,
		A0: 1 + alpha,
		A1: -2 * cw,
		A2: 1 - alpha,
	}
}

func highpassRaw(w0, q float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return biquad.RawCoefficients{
		B0: (1 + cw) / 2,
		B1: -(1 + cw),
		B2: (1 + cw) / 2,
		A0: 1 + alpha,
		A1: -2 * cw,
		A2: 1 - alpha,
	}
}

func bandpassRaw(w0, q float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	return biquad.RawCoefficients{
		B0: sw / 2,
		B1: 0,
		B2: -sw / 2,
		A0: 1 + alpha,
		A1: -2 * cw,
		A2: 1 - alpha,
	}
}

func allpassRaw(w0, q float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return biquad.RawCoefficients{
		B0: 1 - alpha,
		B1: -2 * cw,
		B2: 1 + alpha,
		A0: 1 + alpha,
		A1: -2 * cw,
		A2: 1 - alpha,
	}
}

func notchRaw(w0, alpha float64) biquad.RawCoefficients {
	cw := math.Cos(w0)

	return biquad.RawCoefficients{
		B0: 1,
		B1: -2 * cw,
		B2: 1,
		A0: 1 + alpha,
		A1: -2 * cw,
		A2: 1 - alpha,
	}
}

// bandwidthAlpha converts a bandwidth in octaves to alpha using the
// bilinear-warped form sin(w0)*sinh(ln2/2 * BW * w0/sin(w0)).
func bandwidthAlpha(w0, octaves float64) float64 {
	sw := math.Sin(w0)
	return sw * math.Sinh(math.Ln2/2*octaves*w0/sw)
}

func peakRaw(w0, gainDB, q float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := core.SplitGain(gainDB)

	return biquad.RawCoefficients{
		B0: 1 + alpha*a,
		B1: -2 * cw,
		B2: 1 - alpha*a,
		A0: 1 + alpha/a,
		A1: -2 * cw,
		A2: 1 - alpha/a,
	}
}

// peakConstantQRaw is the Zolzer constant-Q peak. V0 >= 1 for both boost
// and cut; cut swaps the numerator and denominator damping terms.
func peakConstantQRaw(freq, sampleRate, gainDB, q float64) biquad.RawCoefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	k2 := k * k
	v0 := core.DBToLinear(math.Abs(gainDB))

	wide := v0 / q * k
	narrow := k / q

	if gainDB > 0 {
		return biquad.RawCoefficients{
			B0: 1 + wide + k2,
			B1: 2 * (k2 - 1),
			B2: 1 - wide + k2,
			A0: 1 + narrow + k2,
			A1: 2 * (k2 - 1),
			A2: 1 - narrow + k2,
		}
	}

	return biquad.RawCoefficients{
		B0: 1 + narrow + k2,
		B1: 2 * (k2 - 1),
		B2: 1 - narrow + k2,
		A0: 1 + wide + k2,
		A1: 2 * (k2 - 1),
		A2: 1 - wide + k2,
	}
}

// shelfAlpha returns alpha for a shelf, from Q when slope is zero and from
// the shelf slope S otherwise.
func shelfAlpha(w0, gainDB, q, slope float64) (float64, error) {
	sw := math.Sin(w0)
	if slope == 0 {
		return sw / (2 * q), nil
	}

	a := core.SplitGain(gainDB)
	radicand := (a+1/a)*(1/slope-1) + 2
	if radicand < 0 {
		return 0, fmt.Errorf("%w: S=%g too steep for %g dB", ErrInvalidSlope, slope, gainDB)
	}

	return sw / 2 * math.Sqrt(radicand), nil
}

func lowShelfRaw(w0, gainDB, alpha float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	a := core.SplitGain(gainDB)
	beta := 2 * math.Sqrt(a) * alpha

	return biquad.RawCoefficients{
		B0: a * ((a + 1) - (a-1)*cw + beta),
		B1: 2 * a * ((a - 1) - (a+1)*cw),
		B2: a * ((a + 1) - (a-1)*cw - beta),
		A0: (a + 1) + (a-1)*cw + beta,
		A1: -2 * ((a - 1) + (a+1)*cw),
		A2: (a + 1) + (a-1)*cw - beta,
	}
}

func highShelfRaw(w0, gainDB, alpha float64) biquad.RawCoefficients {
	cw := math.Cos(w0)
	a := core.SplitGain(gainDB)
	beta := 2 * math.Sqrt(a) * alpha

	return biquad.RawCoefficients{
		B0: a * ((a + 1) + (a-1)*cw + beta),
		B1: -2 * a * ((a - 1) + (a+1)*cw),
		B2: a * ((a + 1) + (a-1)*cw - beta),
		A0: (a + 1) - (a-1)*cw + beta,
		A1: 2 * ((a - 1) - (a+1)*cw),
		A2: (a + 1) - (a-1)*cw - beta,
	}
}
