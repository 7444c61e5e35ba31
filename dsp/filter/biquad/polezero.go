package biquad

import "math"

// PoleZeroPair holds the z-plane roots of one section. Complex roots come
// as a conjugate pair with the positive imaginary part first. A section
// with b0 == 0 has a single finite zero and reports 0 for the other.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the roots of z^2 + a1*z + a2.
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of b0*z^2 + b1*z + b2.
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns the poles and zeros of the section.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{Poles: c.Poles(), Zeros: c.Zeros()}
}

// PoleRadius returns the largest pole magnitude. A section is stable when
// it is below 1.
func (p PoleZeroPair) PoleRadius() float64 {
	return math.Max(absRoot(p.Poles[0]), absRoot(p.Poles[1]))
}

// PoleZeroPairs returns the roots of every coefficient set.
func PoleZeroPairs(coeffs []Coefficients) []PoleZeroPair {
	out := make([]PoleZeroPair, len(coeffs))
	for i := range coeffs {
		out[i] = coeffs[i].PoleZeroPair()
	}

	return out
}

// PoleZeroPairs returns the roots of every section in signal order.
func (c *Chain) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.PoleZeroPair()
	}

	return out
}

// quadraticRoots solves a*z^2 + b*z + c = 0. Real roots use the
// q = -(b + sign(b)*sqrt(d))/2 form so the smaller root does not lose
// digits when b*b dominates 4ac, which is the case for poles close to z = 1.
func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	d := b*b - 4*a*c
	if d < 0 {
		re := -b / (2 * a)
		im := math.Abs(math.Sqrt(-d) / (2 * a))

		return [2]complex128{complex(re, im), complex(re, -im)}
	}

	q := -(b + math.Copysign(math.Sqrt(d), b)) / 2
	if q == 0 {
		return [2]complex128{}
	}

	return [2]complex128{complex(q/a, 0), complex(c/q, 0)}
}

func absRoot(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}
