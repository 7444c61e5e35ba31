package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
	"github.com/cwbudde/algo-biquad/internal/cli"
	"github.com/cwbudde/algo-biquad/internal/preset"
	"github.com/cwbudde/algo-biquad/internal/ui"
)

// EQCmd shows or edits a graphic equalizer.
type EQCmd struct {
	Preset      string          `short:"p" type:"existingfile" help:"Lua preset file with an equalizer table."`
	Rate        float64         `short:"r" default:"48000" help:"Sample rate in Hz when no preset is given."`
	Gain        map[int]float64 `short:"g" placeholder:"BAND=DB" help:"Band gain in dB, bands counted from 1. Repeatable."`
	Design      string          `short:"d" help:"Peaking design, rbj or constq. Overrides the preset."`
	Interactive bool            `short:"i" help:"Edit band gains in the terminal."`
	Watch       bool            `short:"w" help:"Reload when the preset file changes. Requires --preset."`
	Height      int             `default:"12" help:"Height of the gain curve in rows."`
}

var errWatchNeedsPreset = errors.New("--watch requires --preset")

// Run executes the eq command.
func (c *EQCmd) Run(e *env) error {
	if c.Watch && c.Preset == "" {
		return errWatchNeedsPreset
	}

	equalizer, err := c.build()
	if err != nil {
		return err
	}

	e.log.Infof("eq: %d bands, %s, %g Hz", equalizer.NumBands(), equalizer.Design(), equalizer.SampleRate())

	var watcher *preset.Watcher
	if c.Watch {
		watcher, err = preset.Watch(c.Preset, e.log)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	if c.Interactive {
		return c.edit(e, equalizer, watcher)
	}

	if err := c.render(e, equalizer); err != nil {
		return err
	}

	if watcher == nil {
		return nil
	}

	return c.follow(e, watcher)
}

// build creates the equalizer from the preset or the ten-band layout and
// applies --design and --gain on top.
func (c *EQCmd) build() (*eq.Equalizer, error) {
	var (
		equalizer *eq.Equalizer
		err       error
	)

	if c.Preset != "" {
		f, err := preset.Load(c.Preset)
		if err != nil {
			return nil, err
		}

		equalizer, err = f.Equalizer()
		if err != nil {
			return nil, err
		}
	} else {
		equalizer, err = eq.New(c.Rate, eq.TenBand())
		if err != nil {
			return nil, err
		}
	}

	if c.Design != "" {
		d, err := eq.ParseDesign(c.Design)
		if err != nil {
			return nil, err
		}

		gains := make([]float64, equalizer.NumBands())
		for i := range gains {
			gains[i] = equalizer.BandGain(i)
		}

		equalizer, err = eq.New(equalizer.SampleRate(), equalizer.Layout(), eq.WithDesign(d), eq.WithGains(gains...))
		if err != nil {
			return nil, err
		}
	}

	for _, band := range slices.Sorted(maps.Keys(c.Gain)) {
		if err := equalizer.SetBandGain(band-1, c.Gain[band]); err != nil {
			return nil, fmt.Errorf("--gain %d: %w", band, err)
		}
	}

	return equalizer, nil
}

func (c *EQCmd) render(e *env, equalizer *eq.Equalizer) error {
	curve, err := equalizerCurve(equalizer)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%d-band equalizer, %s peaks @ %g Hz", equalizer.NumBands(), equalizer.Design(), equalizer.SampleRate())
	if c.Preset != "" {
		title += " (" + c.Preset + ")"
	}

	fmt.Fprintln(e.out, cli.TitleStyle.Render(title))
	fmt.Fprintln(e.out, bandTable(equalizer))
	fmt.Fprint(e.out, cli.Plot(curve, c.Height))

	return nil
}

// follow re-renders after every change until the file is removed or the
// process is interrupted.
func (c *EQCmd) follow(e *env, watcher *preset.Watcher) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-watcher.Removed():
			return fmt.Errorf("%s was removed", c.Preset)

		case <-watcher.Changes():
			equalizer, err := c.build()
			if err != nil {
				e.log.Errorf("reload %s: %v", c.Preset, err)
				cli.PrintError(e.out, err.Error())

				continue
			}

			e.log.Infof("reloaded %s", c.Preset)

			if err := c.render(e, equalizer); err != nil {
				return err
			}
		}
	}
}

// edit runs the interactive editor and prints the accepted gains.
func (c *EQCmd) edit(e *env, equalizer *eq.Equalizer, watcher *preset.Watcher) error {
	title := "biquad equalizer"
	if c.Preset != "" {
		title += " - " + c.Preset
	}

	model := ui.NewModel(equalizer, title)

	if watcher != nil {
		events := make(chan tea.Msg, 1)
		done := make(chan struct{})
		defer close(done)

		go c.forward(e, watcher, events, done)

		model = model.WithEvents(events)
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("UI error: %w", err)
	}

	m, ok := final.(ui.Model)
	if !ok || !m.Accepted {
		return nil
	}

	e.log.Infof("eq: accepted %s", luaGains(m.EQ))

	if err := c.render(e, m.EQ); err != nil {
		return err
	}

	fmt.Fprintln(e.out, cli.KeyValue("preset", luaGains(m.EQ)))

	return nil
}

// forward turns watcher signals into editor messages.
func (c *EQCmd) forward(e *env, watcher *preset.Watcher, events chan<- tea.Msg, done <-chan struct{}) {
	for {
		var msg tea.Msg

		select {
		case <-done:
			return

		case <-watcher.Removed():
			msg = ui.RemovedMsg{Source: c.Preset}

		case <-watcher.Changes():
			equalizer, err := c.build()
			if err != nil {
				e.log.Errorf("reload %s: %v", c.Preset, err)
			}

			msg = ui.ReloadMsg{Equalizer: equalizer, Source: c.Preset, Error: err}
		}

		select {
		case events <- msg:
		case <-done:
			return
		}
	}
}
