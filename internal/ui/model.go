// Package ui provides the Bubbletea editor for equalizer band gains.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
)

// Gain steps selectable with '+' and '-'.
var gainSteps = []float64{0.1, 0.5, 1, 3}

const defaultStep = 2 // index into gainSteps

// Model is the Bubbletea model for the equalizer editor
type Model struct {
	EQ     *eq.Equalizer
	Cursor int
	Title  string

	step int

	// Status line shown under the bands
	Status string
	Err    error

	// Channel for preset reloads, nil without --watch
	Events <-chan tea.Msg

	// Set when the user leaves with enter rather than q
	Accepted bool

	Width  int
	Height int
}

// NewModel creates an editor for e
func NewModel(e *eq.Equalizer, title string) Model {
	return Model{
		EQ:    e,
		Title: title,
		step:  defaultStep,
	}
}

// WithEvents returns a copy that listens on ch for ReloadMsg and RemovedMsg
func (m Model) WithEvents(ch <-chan tea.Msg) Model {
	m.Events = ch
	return m
}

// Step returns the current gain step in dB
func (m Model) Step() float64 { return gainSteps[m.step] }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.Events == nil {
		return nil
	}

	return waitForEvent(m.Events)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case ReloadMsg:
		if msg.Error != nil {
			m.Err = msg.Error
			m.Status = ""
		} else {
			m.EQ = msg.Equalizer
			m.Err = nil
			m.Status = fmt.Sprintf("reloaded %s", msg.Source)
			m.Cursor = min(m.Cursor, m.EQ.NumBands()-1)
		}

		return m, waitForEvent(m.Events)

	case RemovedMsg:
		m.Status = fmt.Sprintf("%s removed, no longer watching", msg.Source)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.Accepted = true
		return m, tea.Quit

	case "left", "h", "shift+tab":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "right", "l", "tab":
		if m.Cursor < m.EQ.NumBands()-1 {
			m.Cursor++
		}

	case "up", "k":
		m.nudge(m.Step())

	case "down", "j":
		m.nudge(-m.Step())

	case "+", "=":
		if m.step < len(gainSteps)-1 {
			m.step++
		}

	case "-", "_":
		if m.step > 0 {
			m.step--
		}

	case "0":
		m.setGain(0)

	case "r":
		m.Err = m.EQ.SetGains(make([]float64, m.EQ.NumBands()))
		if m.Err == nil {
			m.Status = "all bands flat"
		}
	}

	return m, nil
}

// nudge moves the selected band by delta, stopping at the layout range.
func (m *Model) nudge(delta float64) {
	m.setGain(m.EQ.ClampGain(m.EQ.BandGain(m.Cursor) + delta))
}

func (m *Model) setGain(g float64) {
	if err := m.EQ.SetBandGain(m.Cursor, g); err != nil {
		m.Err = err
		return
	}

	m.Err = nil
	m.Status = ""
}

// View renders the UI
func (m Model) View() string {
	return renderEditor(m)
}

func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		return <-ch
	}
}
