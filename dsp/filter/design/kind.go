package design

import (
	"fmt"
	"strings"
)

// Kind selects a filter response.
type Kind int

const (
	KindLowpass Kind = iota + 1
	KindHighpass
	KindBandpass
	KindAllpass
	KindPeak
	KindLowShelf
	KindHighShelf
	KindNotch
	// KindPeakConstantQ is the bilinear constant-Q peak; its bandwidth does
	// not change with gain and boost/cut responses mirror each other.
	KindPeakConstantQ
	// KindNotchBandwidth is a notch whose Q parameter carries the
	// bandwidth in octaves.
	KindNotchBandwidth
)

var kindNames = map[Kind]string{
	KindLowpass:        "lowpass",
	KindHighpass:       "highpass",
	KindBandpass:       "bandpass",
	KindAllpass:        "allpass",
	KindPeak:           "peak",
	KindLowShelf:       "lowshelf",
	KindHighShelf:      "highshelf",
	KindNotch:          "notch",
	KindPeakConstantQ:  "peak-constq",
	KindNotchBandwidth: "notch-bw",
}

var kindAliases = map[string]Kind{
	"lp":         KindLowpass,
	"low-pass":   KindLowpass,
	"hp":         KindHighpass,
	"high-pass":  KindHighpass,
	"bp":         KindBandpass,
	"band-pass":  KindBandpass,
	"ap":         KindAllpass,
	"all-pass":   KindAllpass,
	"peaking":    KindPeak,
	"bell":       KindPeak,
	"low-shelf":  KindLowShelf,
	"high-shelf": KindHighShelf,
	"band-stop":  KindNotch,
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindLowpass; k <= KindNotchBandwidth; k++ {
		out = append(out, k)
	}

	return out
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind for a name such as "lowpass", "low-shelf" or
// "peak-constq". Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	if k, ok := kindAliases[name]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// UsesGain reports whether GainDB affects the kind.
func (k Kind) UsesGain() bool {
	switch k {
	case KindPeak, KindLowShelf, KindHighShelf, KindPeakConstantQ:
		return true
	default:
		return false
	}
}

// IsShelf reports whether the kind accepts a shelf slope.
func (k Kind) IsShelf() bool {
	return k == KindLowShelf || k == KindHighShelf
}
