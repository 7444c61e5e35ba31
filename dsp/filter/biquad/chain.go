package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Insertion order is signal order; every section keeps its own history and
// the chain owns its sections.
type Chain struct {
	sections []*Section
	gain     float64
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from zero or more coefficient sets.
// Each Coefficients value becomes one Section with zero history.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]*Section, 0, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections = append(c.sections, NewSection(coeffs[i]))
	}

	return c
}

// AddStage appends s to the end of the cascade. The chain takes ownership:
// the caller must not process samples through s directly afterwards.
func (c *Chain) AddStage(s *Section) {
	c.sections = append(c.sections, s)
}

// ProcessSample cascades input through all sections in order.
// If gain != 1, the input is scaled before the first section.
// An empty chain passes the (scaled) input through.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for _, s := range c.sections {
		x = s.ProcessSample(x)
	}

	return x
}

// Process filters samples into a newly allocated slice.
func (c *Chain) Process(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	c.ProcessBlock(out)

	return out
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for _, s := range c.sections {
		s.ProcessBlock(buf)
	}
}

// Reset clears all section histories.
func (c *Chain) Reset() {
	for _, s := range c.sections {
		s.Reset()
	}
}

// Order returns the total filter order (2 per section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the input gain applied before cascading.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain updates the input gain applied before cascading.
func (c *Chain) SetGain(g float64) { c.gain = g }

// UpdateCoefficients replaces the coefficients and gain.
// If the number of sections is unchanged each section keeps its history,
// so a running stream continues without restarting from silence.
// If the count changes the sections are replaced with zero history.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	c.gain = gain

	if len(coeffs) == len(c.sections) {
		for i, s := range c.sections {
			s.SetCoefficients(coeffs[i])
		}

		return
	}

	c.sections = make([]*Section, len(coeffs))
	for i := range coeffs {
		c.sections[i] = NewSection(coeffs[i])
	}
}

// Section returns the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return c.sections[i]
}

// Coefficients returns a copy of every section's coefficients in order.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.Coefficients
	}

	return out
}

// State returns a snapshot of all section histories.
func (c *Chain) State() [][4]float64 {
	states := make([][4]float64, len(c.sections))
	for i, s := range c.sections {
		states[i] = s.State()
	}

	return states
}

// SetState restores previously saved section histories.
// The slice length must match NumSections.
func (c *Chain) SetState(states [][4]float64) {
	for i, s := range c.sections {
		s.SetState(states[i])
	}
}

// IsStable reports whether every section is stable.
func (c *Chain) IsStable() bool {
	for _, s := range c.sections {
		if !s.IsStable() {
			return false
		}
	}

	return true
}
