// Package biquad provides second-order IIR (biquad) filter primitives.
//
// [Coefficients] holds one normalized coefficient set (a0 == 1) and evaluates
// its transfer function. A [Section] runs the Direct Form I recursion
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
//
// over a stream of samples and owns its input and output history. A [Chain]
// cascades sections in insertion order.
//
// Coefficient derivation (cookbook low-pass, peak, shelves and friends) lives
// in dsp/filter/design; the band equalizer lives in dsp/filter/eq.
package biquad
