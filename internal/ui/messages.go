package ui

import "github.com/cwbudde/algo-biquad/dsp/filter/eq"

// ReloadMsg carries an equalizer rebuilt from a changed preset file
type ReloadMsg struct {
	Equalizer *eq.Equalizer
	Source    string
	Error     error
}

// RemovedMsg indicates the watched preset file was removed
type RemovedMsg struct {
	Source string
}
