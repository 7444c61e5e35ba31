// Package design derives biquad coefficient sets from filter parameters.
//
// The closed-form cookbook designers ([Lowpass], [Highpass], [Bandpass],
// [Allpass], [Notch], [Peak], [LowShelf], [HighShelf]) cover the common
// second-order audio filters. [PeakConstantQ] and [NotchBandwidth] are the
// bilinear constant-Q peak and the bandwidth-in-octaves notch.
//
// [Derive] dispatches on a [Params] value and is what configuration files
// and command-line tools use. Every designer validates its input and returns
// a typed error instead of coefficients for anything outside the valid
// range; match errors with [errors.Is].
//
// Results are normalized [biquad.Coefficients] ready for
// dsp/filter/biquad. [DeriveRaw] returns the set before division by a0.
package design
