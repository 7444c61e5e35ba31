package design

import "errors"

var (
	// ErrInvalidSampleRate is returned for a sample rate that is not
	// positive and finite.
	ErrInvalidSampleRate = errors.New("design: sample rate must be positive and finite")
	// ErrInvalidFrequency is returned for a frequency outside (0, Nyquist).
	ErrInvalidFrequency = errors.New("design: frequency must be in (0, sampleRate/2)")
	// ErrInvalidQ is returned for a Q (or bandwidth) that is not positive
	// and finite.
	ErrInvalidQ = errors.New("design: Q must be positive and finite")
	// ErrInvalidSlope is returned for a negative shelf slope or one that
	// is too steep for the requested gain.
	ErrInvalidSlope = errors.New("design: invalid shelf slope")
	// ErrInvalidGain is returned for a NaN or infinite gain.
	ErrInvalidGain = errors.New("design: gain must be finite")
	// ErrUnknownKind is returned by Derive and ParseKind for an
	// unrecognised filter kind.
	ErrUnknownKind = errors.New("design: unknown filter kind")
)
