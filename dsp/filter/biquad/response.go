package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz.
//
// Both polynomials are expanded around z = 1, where e^-jw - 1 is formed
// from sin^2(w/2) instead of cos(w) - 1. The coefficient sums b0+b1+b2
// and 1+a1+a2 carry the low-frequency behaviour, so narrow bands far
// below Nyquist keep their accuracy.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	d1, d2 := unitOffsets(2 * math.Pi * freqHz / sampleRate)

	num := complex(c.B0+c.B1+c.B2, 0) + complex(c.B1, 0)*d1 + complex(c.B2, 0)*d2
	den := complex(1+c.A1+c.A2, 0) + complex(c.A1, 0)*d1 + complex(c.A2, 0)*d2

	return num / den
}

// unitOffsets returns e^-jw - 1 and e^-2jw - 1.
func unitOffsets(w float64) (complex128, complex128) {
	half := math.Sin(w / 2)
	full := math.Sin(w)

	return complex(-2*half*half, -full), complex(-2*full*full, -math.Sin(2*w))
}

// MagnitudeSquared returns |H(f)|^2.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	h := c.Response(freqHz, sampleRate)
	return real(h)*real(h) + imag(h)*imag(h)
}

// MagnitudeDB returns the gain at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in radians, in [-pi, pi].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Response is the input gain times the product of the section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for _, s := range c.sections {
		h *= s.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade gain at freqHz in dB. It sums the
// section gains in dB, so it agrees with the per-section values to
// rounding.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 20 * math.Log10(math.Abs(c.gain))
	for _, s := range c.sections {
		db += s.MagnitudeDB(freqHz, sampleRate)
	}

	return db
}

// Phase returns the cascade phase in radians, wrapped to [-pi, pi].
func (c *Chain) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse feeds a unit impulse through the section from zero
// history and returns the first n output samples. The running history is
// restored afterwards.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	defer s.SetState(saved)

	s.Reset()

	return impulse(s.ProcessSample, n)
}

// ImpulseResponse is the cascade counterpart of Section.ImpulseResponse.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer c.SetState(saved)

	c.Reset()

	return impulse(c.ProcessSample, n)
}

func impulse(process func(float64) float64, n int) []float64 {
	ir := make([]float64, n)

	ir[0] = process(1)
	for i := 1; i < n; i++ {
		ir[i] = process(0)
	}

	return ir
}
