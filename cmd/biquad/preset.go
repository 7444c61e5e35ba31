package main

import (
	"fmt"

	"github.com/cwbudde/algo-biquad/internal/cli"
	"github.com/cwbudde/algo-biquad/internal/preset"
	"github.com/cwbudde/algo-biquad/measure/response"
)

// PresetCmd validates a preset and prints what it describes.
type PresetCmd struct {
	File   string `arg:"" type:"existingfile" help:"Lua preset file."`
	Points int    `short:"n" default:"16" help:"Number of log-spaced frequencies in the table."`
	Height int    `default:"12" help:"Height of the gain curves in rows."`
}

// Run executes the preset command.
func (c *PresetCmd) Run(e *env) error {
	f, err := preset.Load(c.File)
	if err != nil {
		return err
	}

	e.log.Infof("preset %s: format %s, %d filters", c.File, f.Format, len(f.Filters))

	fmt.Fprintln(e.out, cli.TitleStyle.Render(c.File))
	fmt.Fprintln(e.out, cli.KeyValue("format", f.Format))
	fmt.Fprintln(e.out, cli.KeyValue("sample rate", fmt.Sprintf("%g Hz", f.SampleRate)))
	fmt.Fprintln(e.out, cli.KeyValue("filters", len(f.Filters)))

	if len(f.Filters) > 0 {
		if err := c.renderChain(e, f); err != nil {
			return err
		}
	}

	if f.EQ != nil {
		equalizer, err := f.Equalizer()
		if err != nil {
			return err
		}

		curve, err := equalizerCurve(equalizer)
		if err != nil {
			return err
		}

		fmt.Fprintln(e.out, cli.SectionStyle.Render(fmt.Sprintf("Equalizer (%s peaks)", equalizer.Design())))
		fmt.Fprintln(e.out, bandTable(equalizer))
		fmt.Fprint(e.out, cli.Plot(curve, c.Height))
	}

	return nil
}

func (c *PresetCmd) renderChain(e *env, f *preset.File) error {
	params, err := f.Params()
	if err != nil {
		return err
	}

	chain, err := f.Chain()
	if err != nil {
		return err
	}

	rows := make([][]string, len(params))
	for i, p := range params {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			p.Kind.String(),
			cli.FormatHz(p.Freq),
			fmt.Sprintf("%.4g", p.Q),
			fmt.Sprintf("%g", p.Slope),
			fmt.Sprintf("%+g", p.GainDB),
			cli.Verdict(chain.Section(i).IsStable(), "yes", "no"),
		}
	}

	fmt.Fprintln(e.out, cli.SectionStyle.Render("Filters"))
	fmt.Fprintln(e.out, cli.Table([]string{"#", "Kind", "Hz", "Q", "Slope", "Gain dB", "Stable"}, rows))

	freqs, err := sweep(20, 20000, f.SampleRate, c.Points)
	if err != nil {
		return err
	}

	plotFreqs, err := sweep(20, 20000, f.SampleRate, plotWidth)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.out, cli.SectionStyle.Render("Chain response"))
	fmt.Fprintln(e.out, responseTable(response.Analyze(chain, f.SampleRate, freqs)))
	fmt.Fprint(e.out, cli.Plot(response.Analyze(chain, f.SampleRate, plotFreqs), c.Height))

	return nil
}
