//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-biquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Section is a single biquad filter: one coefficient set plus the Direct
// Form I history x[n-1], x[n-2], y[n-1], y[n-2]. A Section serves one
// signal stream; it is not safe for concurrent use.
type Section struct {
	Coefficients

	x1, x2 float64
	y1, y2 float64
}

var (
	processBlockImpl     archregistry.BlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section with the given coefficients and zero history.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients replaces the coefficients and keeps the history, so a
// running stream continues without a restart.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.B1*s.x1 + s.B2*s.x2 - s.A1*s.y1 - s.A2*s.y2
	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, y

	return y
}

// Process filters samples into a newly allocated slice. History carries
// over from previous calls.
func (s *Section) Process(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	s.ProcessBlock(out)

	return out
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	h := processBlockImpl(coeffs, s.history(), buf)
	s.x1, s.x2, s.y1, s.y2 = h.X1, h.X2, h.Y1, h.Y2
}

func initProcessBlockKernel() {
	k := archregistry.Global.Select(cpu.DetectFeatures())
	if k == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if k.Block == nil {
		panic("biquad: selected kernel " + k.Name + " has no Block function")
	}

	processBlockImpl = k.Block
}

func (s *Section) history() archregistry.History {
	return archregistry.History{X1: s.x1, X2: s.x2, Y1: s.y1, Y2: s.y2}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		y := s.B0*x + s.B1*s.x1 + s.B2*s.x2 - s.A1*s.y1 - s.A2*s.y2
		s.x2, s.x1 = s.x1, x
		s.y2, s.y1 = s.y1, y
		dst[i] = y
	}
}

// Reset clears the history. Coefficients are kept.
func (s *Section) Reset() {
	s.x1, s.x2 = 0, 0
	s.y1, s.y2 = 0, 0
}

// State returns the current history as {x1, x2, y1, y2}.
func (s *Section) State() [4]float64 {
	return [4]float64{s.x1, s.x2, s.y1, s.y2}
}

// SetState restores a previously saved history.
func (s *Section) SetState(state [4]float64) {
	s.x1, s.x2 = state[0], state[1]
	s.y1, s.y2 = state[2], state[3]
}
