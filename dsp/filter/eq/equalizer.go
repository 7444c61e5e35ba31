package eq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-biquad/dsp/core"
	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/dsp/filter/design"
)

var (
	// ErrInvalidLayout is returned for an empty layout, a bad Q or gain
	// range, or a band frequency outside (0, Nyquist).
	ErrInvalidLayout = errors.New("eq: invalid layout")
	// ErrBandIndex is returned for a band index outside [0, NumBands).
	ErrBandIndex = errors.New("eq: band index out of range")
	// ErrGainOutOfRange is returned for a gain outside the layout range
	// or one that is not finite.
	ErrGainOutOfRange = errors.New("eq: gain out of range")
	// ErrGainCount is returned when the number of gains does not match
	// the number of bands.
	ErrGainCount = errors.New("eq: gain count does not match band count")
)

// Band is one equalizer band.
type Band struct {
	Frequency float64 // centre frequency in Hz
	GainDB    float64
}

// Equalizer is a cascade of peaking sections, one per band, in layout
// order. It serves one signal stream and is not safe for concurrent use.
type Equalizer struct {
	sampleRate float64
	layout     Layout
	design     Design
	gains      []float64
	chain      *biquad.Chain
}

// New builds an equalizer for sampleRate with every band at 0 dB unless
// WithGains says otherwise.
func New(sampleRate float64, layout Layout, opts ...Option) (*Equalizer, error) {
	cfg := config{design: DesignRBJ}
	for _, o := range opts {
		o(&cfg)
	}

	layout = layout.clone()
	if cfg.hasRange {
		layout.MinGainDB, layout.MaxGainDB = cfg.minGain, cfg.maxGain
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("eq: %w: %g Hz", design.ErrInvalidSampleRate, sampleRate)
	}

	if err := layout.Validate(sampleRate); err != nil {
		return nil, err
	}

	gains := cfg.gains
	if gains == nil {
		gains = make([]float64, layout.NumBands())
	}

	if len(gains) != layout.NumBands() {
		return nil, fmt.Errorf("%w: %d gains for %d bands", ErrGainCount, len(gains), layout.NumBands())
	}

	e := &Equalizer{
		sampleRate: sampleRate,
		layout:     layout,
		design:     cfg.design,
		gains:      make([]float64, len(gains)),
		chain:      biquad.NewChain(nil),
	}

	for i, g := range gains {
		if err := e.checkGain(g); err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}

		c, err := e.peak(i, g)
		if err != nil {
			return nil, err
		}

		e.gains[i] = g
		e.chain.AddStage(biquad.NewSection(c))
	}

	return e, nil
}

// NewFromBands builds an equalizer with one peaking section per band, all
// sharing q. Gains are not limited unless WithGainRange is given.
func NewFromBands(sampleRate, q float64, bands []Band, opts ...Option) (*Equalizer, error) {
	lo, hi := unlimited()
	layout := Layout{
		Frequencies: make([]float64, len(bands)),
		Q:           q,
		MinGainDB:   lo,
		MaxGainDB:   hi,
	}

	gains := make([]float64, len(bands))
	for i, b := range bands {
		layout.Frequencies[i] = b.Frequency
		gains[i] = b.GainDB
	}

	// WithGains in opts overrides the band gains.
	return New(sampleRate, layout, append([]Option{WithGains(gains...)}, opts...)...)
}

// SetBandGain sets band i to gainDB. The section keeps its history.
func (e *Equalizer) SetBandGain(i int, gainDB float64) error {
	if i < 0 || i >= len(e.gains) {
		return fmt.Errorf("%w: %d of %d", ErrBandIndex, i, len(e.gains))
	}

	if err := e.checkGain(gainDB); err != nil {
		return err
	}

	c, err := e.peak(i, gainDB)
	if err != nil {
		return err
	}

	e.gains[i] = gainDB
	e.chain.Section(i).SetCoefficients(c)

	return nil
}

// SetGains sets every band gain at once. Nothing changes if any gain is
// rejected.
func (e *Equalizer) SetGains(gainsDB []float64) error {
	if len(gainsDB) != len(e.gains) {
		return fmt.Errorf("%w: %d gains for %d bands", ErrGainCount, len(gainsDB), len(e.gains))
	}

	coeffs := make([]biquad.Coefficients, len(gainsDB))
	for i, g := range gainsDB {
		if err := e.checkGain(g); err != nil {
			return fmt.Errorf("band %d: %w", i, err)
		}

		c, err := e.peak(i, g)
		if err != nil {
			return err
		}

		coeffs[i] = c
	}

	for i, c := range coeffs {
		e.gains[i] = gainsDB[i]
		e.chain.Section(i).SetCoefficients(c)
	}

	return nil
}

// ClampGain limits gainDB to the layout gain range.
func (e *Equalizer) ClampGain(gainDB float64) float64 {
	return core.Clamp(gainDB, e.layout.MinGainDB, e.layout.MaxGainDB)
}

// BandGain returns the gain of band i in dB.
func (e *Equalizer) BandGain(i int) float64 { return e.gains[i] }

// BandFrequency returns the centre frequency of band i in Hz.
func (e *Equalizer) BandFrequency(i int) float64 { return e.layout.Frequencies[i] }

// Bands returns a snapshot of all bands.
func (e *Equalizer) Bands() []Band {
	out := make([]Band, len(e.gains))
	for i := range out {
		out[i] = Band{Frequency: e.layout.Frequencies[i], GainDB: e.gains[i]}
	}

	return out
}

// NumBands returns the number of bands.
func (e *Equalizer) NumBands() int { return len(e.gains) }

// Layout returns a copy of the layout.
func (e *Equalizer) Layout() Layout { return e.layout.clone() }

// SampleRate returns the sample rate the equalizer was built for.
func (e *Equalizer) SampleRate() float64 { return e.sampleRate }

// Design returns the peaking filter design in use.
func (e *Equalizer) Design() Design { return e.design }

// Chain exposes the underlying cascade.
func (e *Equalizer) Chain() *biquad.Chain { return e.chain }

// ProcessSample filters one sample through every band.
func (e *Equalizer) ProcessSample(x float64) float64 { return e.chain.ProcessSample(x) }

// Process filters samples into a newly allocated slice.
func (e *Equalizer) Process(samples []float64) []float64 { return e.chain.Process(samples) }

// ProcessBlock filters buf in place.
func (e *Equalizer) ProcessBlock(buf []float64) { e.chain.ProcessBlock(buf) }

// Reset clears every band's history.
func (e *Equalizer) Reset() { e.chain.Reset() }

// Response returns the combined complex response at freqHz. The bands
// were designed for SampleRate(); pass that value unless you mean to see
// the same coefficients run at another rate.
func (e *Equalizer) Response(freqHz, sampleRate float64) complex128 {
	return e.chain.Response(freqHz, sampleRate)
}

// MagnitudeDB returns the combined magnitude response in dB at freqHz for
// the equalizer's own sample rate.
func (e *Equalizer) MagnitudeDB(freqHz float64) float64 {
	return e.chain.MagnitudeDB(freqHz, e.sampleRate)
}

// ImpulseResponse returns n samples of the combined impulse response.
// History is preserved.
func (e *Equalizer) ImpulseResponse(n int) []float64 { return e.chain.ImpulseResponse(n) }

func (e *Equalizer) checkGain(g float64) error {
	if !core.IsFinite(g) || g < e.layout.MinGainDB || g > e.layout.MaxGainDB {
		return fmt.Errorf("%w: %g dB not in [%g, %g]", ErrGainOutOfRange, g, e.layout.MinGainDB, e.layout.MaxGainDB)
	}

	return nil
}

func (e *Equalizer) peak(i int, gainDB float64) (biquad.Coefficients, error) {
	f := e.layout.Frequencies[i]

	var (
		c   biquad.Coefficients
		err error
	)

	switch e.design {
	case DesignConstantQ:
		c, err = design.PeakConstantQ(f, gainDB, e.layout.Q, e.sampleRate)
	default:
		c, err = design.Peak(f, gainDB, e.layout.Q, e.sampleRate)
	}

	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("eq: band %d: %w", i, err)
	}

	return c, nil
}
