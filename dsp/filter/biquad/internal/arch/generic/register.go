// Package generic registers the portable biquad block kernel.
package generic

import (
	"github.com/cwbudde/algo-biquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Block:     processBlock,
	})
}

// processBlock is a 2x-unrolled Direct Form I loop. The per-sample
// expression order matches biquad.Section.ProcessSample.
func processBlock(c registry.Coefficients, h registry.History, buf []float64) registry.History {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := h.X1, h.X2, h.Y1, h.Y2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + b1*x1 + b2*x2 - a1*y1 - a2*y2

		xn := buf[i+1]
		yn := b0*xn + b1*x0 + b2*x1 - a1*y0 - a2*y1

		buf[i] = y0
		buf[i+1] = yn

		x2, x1 = x0, xn
		y2, y1 = y0, yn
	}

	if i < n {
		x := buf[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		buf[i] = y
		x2, x1 = x1, x
		y2, y1 = y1, y
	}

	return registry.History{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
