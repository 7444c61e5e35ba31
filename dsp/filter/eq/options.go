package eq

import (
	"fmt"
	"math"
	"strings"
)

// Design selects the peaking filter used for every band.
type Design int

const (
	// DesignRBJ uses the cookbook peaking EQ.
	DesignRBJ Design = iota
	// DesignConstantQ uses the bilinear constant-Q peak, whose bandwidth
	// is the same for boost and cut.
	DesignConstantQ
)

func (d Design) String() string {
	switch d {
	case DesignRBJ:
		return "rbj"
	case DesignConstantQ:
		return "constq"
	default:
		return "unknown"
	}
}

// ParseDesign parses "rbj" or "constq" (also "constant-q"), ignoring case.
// The empty string selects DesignRBJ.
func ParseDesign(s string) (Design, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rbj":
		return DesignRBJ, nil
	case "constq", "constant-q":
		return DesignConstantQ, nil
	default:
		return 0, fmt.Errorf("eq: unknown design %q", s)
	}
}

type config struct {
	design   Design
	gains    []float64
	minGain  float64
	maxGain  float64
	hasRange bool
}

// Option configures an Equalizer.
type Option func(*config)

// WithDesign selects the peaking filter. Default is DesignRBJ.
func WithDesign(d Design) Option {
	return func(cfg *config) { cfg.design = d }
}

// WithGains sets the initial band gains in dB. The count must match the
// number of bands.
func WithGains(gainsDB ...float64) Option {
	return func(cfg *config) {
		cfg.gains = append([]float64(nil), gainsDB...)
	}
}

// WithGainRange overrides the allowed gain range. NewFromBands has no
// limit unless this option is given.
func WithGainRange(minDB, maxDB float64) Option {
	return func(cfg *config) {
		cfg.minGain, cfg.maxGain = minDB, maxDB
		cfg.hasRange = true
	}
}

func unlimited() (float64, float64) {
	return math.Inf(-1), math.Inf(1)
}
