package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
	"github.com/cwbudde/algo-biquad/internal/cli"
	"github.com/cwbudde/algo-biquad/measure/response"
)

// plotWidth is the number of columns of every gain curve.
const plotWidth = 64

// nyquistMargin keeps sweeps strictly below Nyquist.
const nyquistMargin = 0.999

// sweep returns n log-spaced frequencies from lo to hi, with hi limited to
// just below Nyquist.
func sweep(lo, hi, sampleRate float64, n int) ([]float64, error) {
	hi = math.Min(hi, nyquistMargin*sampleRate/2)
	return response.LogFrequencies(lo, hi, n)
}

func responseTable(points []response.Point) string {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			cli.FormatHz(p.Freq),
			fmt.Sprintf("%.2f", p.MagnitudeDB),
			fmt.Sprintf("%.1f", p.PhaseDeg()),
		}
	}

	return cli.Table([]string{"Hz", "Gain dB", "Phase °"}, rows)
}

func bandTable(e *eq.Equalizer) string {
	rows := make([][]string, e.NumBands())
	for i, b := range e.Bands() {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			cli.FormatHz(b.Frequency),
			fmt.Sprintf("%+.1f", b.GainDB),
			fmt.Sprintf("%+.2f", e.MagnitudeDB(b.Frequency)),
		}
	}

	return cli.Table([]string{"Band", "Hz", "Gain dB", "Response dB"}, rows)
}

// equalizerCurve evaluates e over the audible range at its own rate.
func equalizerCurve(e *eq.Equalizer) ([]response.Point, error) {
	freqs, err := sweep(20, 20000, e.SampleRate(), plotWidth)
	if err != nil {
		return nil, err
	}

	return response.Analyze(e, e.SampleRate(), freqs), nil
}

// luaGains prints gains as a Lua list for pasting into a preset.
func luaGains(e *eq.Equalizer) string {
	s := "gains = {"
	for i, b := range e.Bands() {
		if i > 0 {
			s += ","
		}

		s += fmt.Sprintf(" %g", b.GainDB)
	}

	return s + " },"
}
