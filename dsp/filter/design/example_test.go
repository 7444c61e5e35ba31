package design_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/dsp/filter/design"
)

func ExampleDerive() {
	c, err := design.Derive(design.Params{
		Kind:       design.KindLowpass,
		SampleRate: 48000,
		Freq:       1000,
		Q:          design.DefaultQ,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("b = %.6f %.6f %.6f\n", c.B0, c.B1, c.B2)
	fmt.Printf("a = %.6f %.6f %.6f\n", c.A0(), c.A1, c.A2)
	fmt.Printf("1000 Hz:  %.2f dB\n", c.MagnitudeDB(1000, 48000))
	fmt.Printf("10000 Hz: %.2f dB\n", c.MagnitudeDB(10000, 48000))
	// Output:
	// b = 0.003916 0.007832 0.003916
	// a = 1.000000 -1.815341 0.831006
	// 1000 Hz:  -3.01 dB
	// 10000 Hz: -42.74 dB
}

func ExamplePeak() {
	c, err := design.Peak(1000, 6, 1, 48000)
	if err != nil {
		fmt.Println(err)
		return
	}

	s := biquad.NewSection(c)
	out := s.Process([]float64{1, 0, 0})
	fmt.Printf("centre gain: %.2f dB\n", c.MagnitudeDB(1000, 48000))
	fmt.Printf("impulse starts with %.4f\n", out[0])
	// Output:
	// centre gain: 6.00 dB
	// impulse starts with 1.0440
}

func ExampleLowpass_invalidFrequency() {
	_, err := design.Lowpass(24000, design.DefaultQ, 48000)
	fmt.Println(errors.Is(err, design.ErrInvalidFrequency))
	// Output:
	// true
}
