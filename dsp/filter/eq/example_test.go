package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-biquad/dsp/filter/eq"
)

func ExampleNew() {
	e, err := eq.New(48000, eq.TenBand())
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := e.SetBandGain(5, 6); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d bands, band 5 at %.0f Hz\n", e.NumBands(), e.BandFrequency(5))
	fmt.Printf("gain at 947 Hz: %.2f dB\n", e.MagnitudeDB(947))
	fmt.Println(e.SetBandGain(5, 20))
	// Output:
	// 10 bands, band 5 at 947 Hz
	// gain at 947 Hz: 6.00 dB
	// eq: gain out of range: 20 dB not in [-24, 12]
}
