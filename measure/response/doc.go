// Package response computes gain and phase data for biquad filters,
// chains and equalizers.
//
// Two paths are provided:
//
//   - [Analyze] evaluates the transfer function H(e^jw) of any [Responder]
//     at a list of frequencies, for example from [LogFrequencies].
//   - [Measure] takes an impulse response, zero-pads it and transforms it
//     with an FFT. This is how a response is observed from the outside,
//     and it agrees with the analytic path up to truncation of the
//     impulse response.
//
// [FindCrossing] locates the frequency where the magnitude crosses a
// level, such as the -3 dB corner of a lowpass.
package response
