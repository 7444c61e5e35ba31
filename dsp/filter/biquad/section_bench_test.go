package biquad

import (
	"fmt"
	"testing"

	archregistry "github.com/cwbudde/algo-biquad/dsp/filter/biquad/internal/arch/registry"
)

// benchCoeffs is a realistic lowpass-like biquad for benchmarking.
var benchCoeffs = Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

func BenchmarkProcessSample(b *testing.B) {
	s := NewSection(benchCoeffs)
	x := 1.0
	for b.Loop() {
		x = s.ProcessSample(x)
	}
	_ = x
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(benchCoeffs)
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkKernels(b *testing.B) {
	coeffs := archregistry.Coefficients{
		B0: benchCoeffs.B0, B1: benchCoeffs.B1, B2: benchCoeffs.B2,
		A1: benchCoeffs.A1, A2: benchCoeffs.A2,
	}

	for _, k := range archregistry.Global.Kernels() {
		b.Run(k.Name, func(b *testing.B) {
			buf := make([]float64, 1024)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}

			var h archregistry.History
			b.SetBytes(1024 * 8)
			b.ResetTimer()
			for range b.N {
				h = k.Block(coeffs, h, buf)
			}
		})
	}
}

func BenchmarkProcessBlockTo(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(benchCoeffs)
			src := make([]float64, size)
			dst := make([]float64, size)
			for i := range src {
				src[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				s.ProcessBlockTo(dst, src)
			}
		})
	}
}
