// Package preset reads filter presets from Lua files.
//
// A preset file is a Lua script that returns a table:
//
//	return {
//	    format = "1.0.0",
//	    sample_rate = 48000,
//	    filters = {
//	        { kind = "highpass", frequency = 40 },
//	        { kind = "peak", frequency = 3000, q = 1.4, gain = -4 },
//	    },
//	    equalizer = {
//	        gains = { 0, 0, 2, 3, 0, 0, -2, 0, 1, 2 },
//	    },
//	    logging = {
//	        directory = "log",
//	        file = "biquad.log",
//	        size = 1048576,
//	        count = 10,
//	        levels = { DEFAULT = "info" },
//	    },
//	}
//
// The script runs with the standard libraries loaded and arg[0] set to
// the file name, so it can compute values.
package preset

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/bitmark-inc/logger"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/dsp/filter/design"
	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
)

// SupportedFormat is the constraint a preset's format version must meet.
const SupportedFormat = "^1"

var (
	// ErrParse is returned when the Lua script fails or does not return a
	// table of the expected shape.
	ErrParse = errors.New("preset: parse error")
	// ErrUnsupportedFormat is returned for a missing or incompatible
	// format version.
	ErrUnsupportedFormat = errors.New("preset: unsupported format")
	// ErrNoSampleRate is returned when sample_rate is missing or not
	// positive.
	ErrNoSampleRate = errors.New("preset: no sample rate")
	// ErrFilter is returned for a filter entry that cannot be designed.
	ErrFilter = errors.New("preset: invalid filter")
)

var supported = mustConstraint(SupportedFormat)

// Filter is one entry of the filters list.
type Filter struct {
	Kind      string  `gluamapper:"kind" json:"kind"`
	Frequency float64 `gluamapper:"frequency" json:"frequency"`
	Q         float64 `gluamapper:"q" json:"q"`
	Slope     float64 `gluamapper:"slope" json:"slope"`
	Gain      float64 `gluamapper:"gain" json:"gain"`
}

// EqualizerBlock is the equalizer table. Empty Frequencies selects the ten-band
// layout; zero Q and a zero gain range take that layout's values.
type EqualizerBlock struct {
	Frequencies []float64 `gluamapper:"frequencies" json:"frequencies"`
	Q           float64   `gluamapper:"q" json:"q"`
	MinGain     *float64  `gluamapper:"min_gain" json:"min_gain,omitempty"`
	MaxGain     *float64  `gluamapper:"max_gain" json:"max_gain,omitempty"`
	Gains       []float64 `gluamapper:"gains" json:"gains"`
	Design      string    `gluamapper:"design" json:"design"`
}

// File is a loaded preset.
type File struct {
	Format     string               `gluamapper:"format" json:"format"`
	SampleRate float64              `gluamapper:"sample_rate" json:"sample_rate"`
	Filters    []Filter             `gluamapper:"filters" json:"filters"`
	EQ         *EqualizerBlock      `gluamapper:"equalizer" json:"equalizer"`
	Logging    logger.Configuration `gluamapper:"logging" json:"logging"`

	path string
}

// Load executes the Lua file at path and maps the returned table.
func Load(path string) (*File, error) {
	f, err := run(path, func(L *lua.LState) error { return L.DoFile(path) })
	if err != nil {
		return nil, err
	}

	f.path = path

	return f, nil
}

// Parse executes Lua source held in memory. name is used as arg[0] and in
// error messages.
func Parse(name, source string) (*File, error) {
	return run(name, func(L *lua.LState) error { return L.DoString(source) })
}

func run(name string, exec func(*lua.LState) error) (*File, error) {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(name))
	L.SetGlobal("arg", arg)

	if err := exec(L); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}

	tbl, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s: script must return a table", ErrParse, name)
	}

	mapper := gluamapper.Mapper{Option: gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}}

	f := &File{}
	if err := mapper.Map(tbl, f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return f, nil
}

// Path returns the file the preset was loaded from, or "" for Parse.
func (f *File) Path() string { return f.path }

func (f *File) validate() error {
	if f.Format == "" {
		return fmt.Errorf("%w: format is missing", ErrUnsupportedFormat)
	}

	v, err := semver.NewVersion(f.Format)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFormat, f.Format, err)
	}

	if !supported.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, v, SupportedFormat)
	}

	if !(f.SampleRate > 0) || math.IsInf(f.SampleRate, 0) {
		return ErrNoSampleRate
	}

	return nil
}

// Params converts the filters list. A zero q selects design.DefaultQ.
func (f *File) Params() ([]design.Params, error) {
	params := make([]design.Params, 0, len(f.Filters))

	for i, flt := range f.Filters {
		kind, err := design.ParseKind(flt.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d: %w", ErrFilter, i+1, err)
		}

		q := flt.Q
		if q == 0 {
			q = design.DefaultQ
		}

		params = append(params, design.Params{
			Kind:       kind,
			SampleRate: f.SampleRate,
			Freq:       flt.Frequency,
			Q:          q,
			GainDB:     flt.Gain,
			Slope:      flt.Slope,
		})
	}

	return params, nil
}

// Coefficients designs every filter in the list.
func (f *File) Coefficients() ([]biquad.Coefficients, error) {
	params, err := f.Params()
	if err != nil {
		return nil, err
	}

	coeffs := make([]biquad.Coefficients, len(params))
	for i, p := range params {
		c, err := design.Derive(p)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d: %w", ErrFilter, i+1, err)
		}

		coeffs[i] = c
	}

	return coeffs, nil
}

// Chain builds a cascade of the filters list in file order.
func (f *File) Chain() (*biquad.Chain, error) {
	coeffs, err := f.Coefficients()
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(coeffs), nil
}

// Layout returns the equalizer band layout. Without an equalizer table it
// is the ten-band layout.
func (f *File) Layout() eq.Layout {
	layout := eq.TenBand()

	cfg := f.EQ
	if cfg == nil {
		return layout
	}

	if len(cfg.Frequencies) > 0 {
		layout.Frequencies = append([]float64(nil), cfg.Frequencies...)
	}

	if cfg.Q != 0 {
		layout.Q = cfg.Q
	}

	// each bound falls back to the ten-band limit on its own
	if cfg.MinGain != nil {
		layout.MinGainDB = *cfg.MinGain
	}

	if cfg.MaxGain != nil {
		layout.MaxGainDB = *cfg.MaxGain
	}

	return layout
}

// Equalizer builds the equalizer described by the equalizer table at the
// preset's sample rate. Without one, every band of the ten-band layout is
// flat.
func (f *File) Equalizer() (*eq.Equalizer, error) {
	opts := []eq.Option{}

	if cfg := f.EQ; cfg != nil {
		d, err := eq.ParseDesign(cfg.Design)
		if err != nil {
			return nil, err
		}

		opts = append(opts, eq.WithDesign(d))

		if len(cfg.Gains) > 0 {
			opts = append(opts, eq.WithGains(cfg.Gains...))
		}
	}

	return eq.New(f.SampleRate, f.Layout(), opts...)
}

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}

	return c
}
