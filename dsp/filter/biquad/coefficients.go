package biquad

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroA0 is returned by RawCoefficients.Normalize when a0 is zero or not
// finite.
var ErrZeroA0 = errors.New("biquad: a0 must be finite and non-zero")

// Coefficients holds the transfer function coefficients for a single
// second-order section, normalized so that a0 == 1:
//
//	       b0 + b1*z^-1 + b2*z^-2
//	H(z) = ----------------------
//	        1 + a1*z^-1 + a2*z^-2
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// A0 returns the leading denominator coefficient, which is always 1.
func (c *Coefficients) A0() float64 { return 1 }

// RawCoefficients is a coefficient set before division by a0.
type RawCoefficients struct {
	B0, B1, B2 float64
	A0, A1, A2 float64
}

// Normalize divides every coefficient by a0.
func (r RawCoefficients) Normalize() (Coefficients, error) {
	if r.A0 == 0 || math.IsNaN(r.A0) || math.IsInf(r.A0, 0) {
		return Coefficients{}, fmt.Errorf("%w: a0=%g", ErrZeroA0, r.A0)
	}

	inv := 1 / r.A0

	return Coefficients{
		B0: r.B0 * inv,
		B1: r.B1 * inv,
		B2: r.B2 * inv,
		A1: r.A1 * inv,
		A2: r.A2 * inv,
	}, nil
}

// IsStable reports whether both poles lie strictly inside the unit circle.
//
// For 1 + a1*z^-1 + a2*z^-2 this is the stability triangle
// |a2| < 1 and |a1| < 1 + a2.
func (c *Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}
