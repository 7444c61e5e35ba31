package main

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/dsp/filter/design"
	"github.com/cwbudde/algo-biquad/internal/cli"
	"github.com/cwbudde/algo-biquad/measure/response"
)

// FilterFlags describe one filter on the command line.
type FilterFlags struct {
	Kind  design.Kind `short:"k" default:"lowpass" help:"Filter kind: ${kinds}."`
	Rate  float64     `short:"r" default:"48000" help:"Sample rate in Hz."`
	Freq  float64     `short:"f" default:"1000" help:"Cutoff or centre frequency in Hz."`
	Q     float64     `short:"q" default:"0.7071067811865476" help:"Quality factor; bandwidth in octaves for notch-bw."`
	Slope float64     `short:"s" help:"Shelf slope S. 0 selects the Q form."`
	Gain  float64     `short:"g" help:"Gain in dB for peak and shelf kinds."`
}

// Params converts the flags.
func (f FilterFlags) Params() design.Params {
	return design.Params{
		Kind:       f.Kind,
		SampleRate: f.Rate,
		Freq:       f.Freq,
		Q:          f.Q,
		GainDB:     f.Gain,
		Slope:      f.Slope,
	}
}

func (f FilterFlags) describe() string {
	s := fmt.Sprintf("%s %s Hz @ %g Hz", f.Kind, cli.FormatHz(f.Freq), f.Rate)

	switch {
	case f.Kind.IsShelf() && f.Slope > 0:
		s += fmt.Sprintf(", S %g", f.Slope)
	case f.Kind == design.KindNotchBandwidth:
		s += fmt.Sprintf(", BW %g oct", f.Q)
	default:
		s += fmt.Sprintf(", Q %.4g", f.Q)
	}

	if f.Kind.UsesGain() {
		s += fmt.Sprintf(", %+g dB", f.Gain)
	}

	return s
}

// CoeffsCmd prints a coefficient set.
type CoeffsCmd struct {
	FilterFlags `embed:""`
}

// Run executes the coeffs command.
func (c *CoeffsCmd) Run(e *env) error {
	raw, err := design.DeriveRaw(c.Params())
	if err != nil {
		return err
	}

	norm, err := raw.Normalize()
	if err != nil {
		return err
	}

	e.log.Infof("coeffs: %s", c.describe())

	fmt.Fprintln(e.out, cli.TitleStyle.Render(c.describe()))
	fmt.Fprintln(e.out, cli.Table(
		[]string{"Set", "b0", "b1", "b2", "a0", "a1", "a2"},
		[][]string{
			coeffRow("raw", raw.B0, raw.B1, raw.B2, raw.A0, raw.A1, raw.A2),
			coeffRow("normalized", norm.B0, norm.B1, norm.B2, norm.A0(), norm.A1, norm.A2),
		},
	))

	pz := norm.PoleZeroPair()
	rows := make([][]string, 0, 4)

	for i, p := range pz.Poles {
		rows = append(rows, rootRow(fmt.Sprintf("pole %d", i+1), p))
	}

	for i, z := range pz.Zeros {
		rows = append(rows, rootRow(fmt.Sprintf("zero %d", i+1), z))
	}

	fmt.Fprintln(e.out, cli.Table([]string{"Root", "Real", "Imag", "|r|", "Angle (cycles/sample)"}, rows))
	fmt.Fprintln(e.out, cli.KeyValue("pole radius", fmt.Sprintf("%.6f", pz.PoleRadius())))
	fmt.Fprintln(e.out, cli.KeyValue("stable", cli.Verdict(norm.IsStable(), "yes", "no")))

	return nil
}

func coeffRow(name string, v ...float64) []string {
	row := []string{name}
	for _, x := range v {
		row = append(row, fmt.Sprintf("%.10f", x))
	}

	return row
}

func rootRow(name string, r complex128) []string {
	return []string{
		name,
		fmt.Sprintf("%.6f", real(r)),
		fmt.Sprintf("%.6f", imag(r)),
		fmt.Sprintf("%.6f", cmplx.Abs(r)),
		fmt.Sprintf("%.4f", math.Abs(cmplx.Phase(r))/(2*math.Pi)),
	}
}

// ResponseCmd prints gain and phase over a log sweep.
type ResponseCmd struct {
	FilterFlags `embed:""`

	Points   int     `short:"n" default:"31" help:"Number of log-spaced frequencies in the table."`
	From     float64 `default:"20" help:"Lowest frequency in Hz."`
	To       float64 `default:"20000" help:"Highest frequency in Hz, limited to just below Nyquist."`
	Measured bool    `short:"m" help:"Measure the impulse response with an FFT instead of evaluating H(z)."`
	FFTSize  int     `name:"fft-size" default:"0" help:"FFT size for --measured; 0 picks the next power of two."`
	IRLength int     `name:"ir-length" default:"8192" help:"Impulse response length for --measured."`
	Height   int     `default:"12" help:"Height of the gain curve in rows."`
}

// Run executes the response command.
func (c *ResponseCmd) Run(e *env) error {
	coeffs, err := design.Derive(c.Params())
	if err != nil {
		return err
	}

	freqs, err := sweep(c.From, c.To, c.Rate, c.Points)
	if err != nil {
		return err
	}

	plotFreqs, err := sweep(c.From, c.To, c.Rate, plotWidth)
	if err != nil {
		return err
	}

	var points, curve []response.Point

	if c.Measured {
		measured, err := response.MeasureImpulse(biquad.NewSection(coeffs), c.Rate, c.IRLength, c.FFTSize)
		if err != nil {
			return err
		}

		e.log.Infof("response: %s measured with %d-point FFT", c.describe(), measured.FFTSize())

		points, curve = at(measured, freqs), at(measured, plotFreqs)
	} else {
		e.log.Infof("response: %s", c.describe())

		points = response.Analyze(&coeffs, c.Rate, freqs)
		curve = response.Analyze(&coeffs, c.Rate, plotFreqs)
	}

	title := c.describe()
	if c.Measured {
		title += " (measured)"
	}

	fmt.Fprintln(e.out, cli.TitleStyle.Render(title))
	fmt.Fprintln(e.out, responseTable(points))
	fmt.Fprint(e.out, cli.Plot(curve, c.Height))

	lo, hi := freqs[0], freqs[len(freqs)-1]

	f3, err := response.FindCrossing(&coeffs, c.Rate, -3, lo, hi)
	switch {
	case err == nil:
		fmt.Fprintln(e.out, cli.KeyValue("-3 dB", cli.FormatHz(f3)+" Hz"))
	case errors.Is(err, response.ErrNoCrossing):
	default:
		return err
	}

	return nil
}

func at(s *response.Spectrum, freqs []float64) []response.Point {
	points := make([]response.Point, len(freqs))
	for i, f := range freqs {
		points[i] = s.At(f)
	}

	return points
}
