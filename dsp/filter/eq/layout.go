package eq

import (
	"fmt"
	"math"
	"slices"
)

// tenBandCentres are the centre frequencies of the classic ten-band
// graphic equalizer, roughly one octave apart.
var tenBandCentres = [...]float64{29, 59, 119, 237, 474, 947, 1889, 3770, 7523, 15011}

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

// Layout is the band configuration of an Equalizer.
type Layout struct {
	Frequencies []float64 // band centres in Hz, in signal order
	Q           float64   // shared band Q
	MinGainDB   float64   // lowest allowed band gain
	MaxGainDB   float64   // highest allowed band gain
}

// TenBand returns the ten-band layout. Every call returns a fresh value.
func TenBand() Layout {
	return Layout{
		Frequencies: tenBandCentres[:],
		Q:           2 * math.Sqrt2,
		MinGainDB:   -24,
		MaxGainDB:   12,
	}.clone()
}

// OctaveLayout returns a layout with IEC 61260 base-10 centres
// f = 1000 * G^(k/fraction) in [lowerHz, upperHz]. fraction=1 gives octave
// bands, 3 gives third-octave bands. Q is chosen so each band's bandwidth
// matches its fractional-octave spacing.
func OctaveLayout(fraction int, lowerHz, upperHz, minGainDB, maxGainDB float64) (Layout, error) {
	if fraction <= 0 {
		return Layout{}, fmt.Errorf("%w: fraction %d", ErrInvalidLayout, fraction)
	}
	if !(lowerHz > 0) || !(upperHz > lowerHz) {
		return Layout{}, fmt.Errorf("%w: range [%g, %g] Hz", ErrInvalidLayout, lowerHz, upperHz)
	}

	n := float64(fraction)
	kMin := int(math.Ceil(n * math.Log(lowerHz/1000) / math.Log(octaveRatio)))
	kMax := int(math.Floor(n * math.Log(upperHz/1000) / math.Log(octaveRatio)))
	if kMax < kMin {
		return Layout{}, fmt.Errorf("%w: no band centre in [%g, %g] Hz", ErrInvalidLayout, lowerHz, upperHz)
	}

	freqs := make([]float64, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		freqs = append(freqs, 1000*math.Pow(octaveRatio, float64(k)/n))
	}

	// Q = sqrt(r)/(r-1) for an edge ratio r = G^(1/N).
	r := math.Pow(octaveRatio, 1/n)

	return Layout{
		Frequencies: freqs,
		Q:           math.Sqrt(r) / (r - 1),
		MinGainDB:   minGainDB,
		MaxGainDB:   maxGainDB,
	}, nil
}

// NumBands returns the number of bands in the layout.
func (l Layout) NumBands() int { return len(l.Frequencies) }

// Validate checks the layout for sampleRate.
func (l Layout) Validate(sampleRate float64) error {
	if len(l.Frequencies) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidLayout)
	}

	if !(l.Q > 0) || math.IsInf(l.Q, 0) {
		return fmt.Errorf("%w: Q %g", ErrInvalidLayout, l.Q)
	}

	if math.IsNaN(l.MinGainDB) || math.IsNaN(l.MaxGainDB) || l.MinGainDB > l.MaxGainDB {
		return fmt.Errorf("%w: gain range [%g, %g] dB", ErrInvalidLayout, l.MinGainDB, l.MaxGainDB)
	}

	nyquist := sampleRate / 2
	for i, f := range l.Frequencies {
		if !(f > 0) || f >= nyquist {
			return fmt.Errorf("%w: band %d at %g Hz outside (0, %g)", ErrInvalidLayout, i, f, nyquist)
		}
	}

	return nil
}

func (l Layout) clone() Layout {
	l.Frequencies = slices.Clone(l.Frequencies)
	return l
}
