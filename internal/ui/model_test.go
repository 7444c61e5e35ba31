package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
)

func newEditor(t *testing.T) Model {
	t.Helper()

	e, err := eq.New(48000, eq.TenBand())
	if err != nil {
		t.Fatal(err)
	}

	return NewModel(e, "Equalizer")
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		next, _ := m.Update(msg)
		m = next.(Model)
	}

	return m
}

func TestModel_MoveCursor(t *testing.T) {
	m := newEditor(t)

	m = press(m, "left")
	if m.Cursor != 0 {
		t.Fatalf("cursor moved below 0: %d", m.Cursor)
	}

	m = press(m, "right", "right", "l")
	if m.Cursor != 3 {
		t.Fatalf("cursor = %d, want 3", m.Cursor)
	}

	for range 20 {
		m = press(m, "right")
	}

	if m.Cursor != 9 {
		t.Fatalf("cursor = %d, want 9", m.Cursor)
	}
}

func TestModel_ChangeGain(t *testing.T) {
	m := newEditor(t)
	m = press(m, "right", "up", "up", "k")

	if g := m.EQ.BandGain(1); g != 3 {
		t.Fatalf("band 2 gain = %v, want 3", g)
	}

	m = press(m, "down", "j")
	if g := m.EQ.BandGain(1); g != 1 {
		t.Fatalf("band 2 gain = %v, want 1", g)
	}

	if g := m.EQ.BandGain(0); g != 0 {
		t.Fatalf("band 1 changed: %v", g)
	}
}

func TestModel_GainStopsAtRange(t *testing.T) {
	m := newEditor(t)
	m = press(m, "+") // 3 dB steps

	for range 10 {
		m = press(m, "up")
	}

	if g := m.EQ.BandGain(0); g != 12 {
		t.Fatalf("gain = %v, want the 12 dB limit", g)
	}

	for range 20 {
		m = press(m, "down")
	}

	if g := m.EQ.BandGain(0); g != -24 {
		t.Fatalf("gain = %v, want the -24 dB limit", g)
	}

	if m.Err != nil {
		t.Fatalf("unexpected error: %v", m.Err)
	}
}

func TestModel_Step(t *testing.T) {
	m := newEditor(t)
	if m.Step() != 1 {
		t.Fatalf("default step = %v, want 1", m.Step())
	}

	m = press(m, "-", "-", "-")
	if m.Step() != 0.1 {
		t.Fatalf("step = %v, want 0.1", m.Step())
	}

	m = press(m, "+", "+", "+", "+", "+")
	if m.Step() != 3 {
		t.Fatalf("step = %v, want 3", m.Step())
	}
}

func TestModel_Flatten(t *testing.T) {
	m := newEditor(t)
	m = press(m, "up", "right", "down", "down")

	m = press(m, "0")
	if g := m.EQ.BandGain(1); g != 0 {
		t.Fatalf("band 2 gain = %v after 0, want 0", g)
	}

	if g := m.EQ.BandGain(0); g != 1 {
		t.Fatalf("band 1 gain = %v, want 1", g)
	}

	m = press(m, "r")
	for i := range m.EQ.NumBands() {
		if g := m.EQ.BandGain(i); g != 0 {
			t.Fatalf("band %d gain = %v after r, want 0", i+1, g)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newEditor(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not quit")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not return tea.Quit")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !next.(Model).Accepted {
		t.Fatal("enter did not accept")
	}
}

func TestModel_Reload(t *testing.T) {
	m := newEditor(t)
	m = press(m, "right", "right", "right", "right", "right", "right", "right", "right", "right")

	layout := eq.TenBand()
	layout.Frequencies = layout.Frequencies[:3]

	small, err := eq.New(48000, layout, eq.WithGains(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}

	ch := make(chan tea.Msg, 1)
	m = m.WithEvents(ch)

	next, cmd := m.Update(ReloadMsg{Equalizer: small, Source: "eq.lua"})
	m = next.(Model)

	if m.EQ != small {
		t.Fatal("equalizer not replaced")
	}

	if m.Cursor != 2 {
		t.Fatalf("cursor = %d, want clamped to 2", m.Cursor)
	}

	if cmd == nil {
		t.Fatal("reload did not wait for the next event")
	}

	ch <- RemovedMsg{Source: "eq.lua"}
	if _, ok := cmd().(RemovedMsg); !ok {
		t.Fatal("wait command did not deliver the next event")
	}

	next, _ = m.Update(ReloadMsg{Error: errors.New("bad preset")})
	m = next.(Model)

	if m.EQ != small || m.Err == nil {
		t.Fatal("failed reload should keep the equalizer and show the error")
	}
}

func TestModel_View(t *testing.T) {
	m := newEditor(t)
	m = press(m, "right", "up", "up")

	out := m.View()
	for _, want := range []string{"Equalizer", "10 bands", "rbj", "59", "+2.0 dB", "15k", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGainBar(t *testing.T) {
	if got := gainBar(0, -12, 12, 5); got != "··│··" {
		t.Errorf("flat bar = %q", got)
	}

	if got := gainBar(12, -12, 12, 5); got != "··│██" {
		t.Errorf("full boost bar = %q", got)
	}

	if got := gainBar(-6, -12, 12, 5); got != "·█│··" {
		t.Errorf("half cut bar = %q", got)
	}
}
