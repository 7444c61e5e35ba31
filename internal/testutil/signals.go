// Package testutil provides deterministic test signals and assertions for
// the filter packages.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// MultiTone sums equal-amplitude sines at freqs, scaled so the peak never
// exceeds amplitude.
func MultiTone(freqs []float64, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if len(freqs) == 0 {
		return out
	}

	scale := amplitude / float64(len(freqs))
	for _, f := range freqs {
		for i, v := range DeterministicSine(f, sampleRate, scale, length) {
			out[i] += v
		}
	}

	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at pos. An out-of-range pos yields
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Ones returns a DC signal of length n at 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
