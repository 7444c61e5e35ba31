// Package eq provides a parametric band equalizer built from cascaded
// peaking biquads.
//
// A [Layout] lists the band centre frequencies, the shared Q and the
// allowed gain range. [TenBand] is the common ten-band graphic layout
// (29 Hz to 15 kHz, Q = 2*sqrt(2), -24 to +12 dB); [OctaveLayout] builds
// IEC 61260 octave and fractional-octave layouts.
//
// Each band is one peaking section in a [biquad.Chain]. Changing a band
// gain swaps that section's coefficients and keeps its history, so the
// stream continues without restarting from silence.
//
// Basic usage:
//
//	e, err := eq.New(48000, eq.TenBand())
//	if err != nil { ... }
//	_ = e.SetBandGain(0, -10)
//	e.ProcessBlock(buf)
package eq
