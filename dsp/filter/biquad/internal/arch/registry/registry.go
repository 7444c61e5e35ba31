// Package registry keeps the block-processing kernels available for biquad
// sections and picks one for the running CPU.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are normalized biquad coefficients (a0 == 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// History is the Direct Form I delay line: x[n-1], x[n-2], y[n-1], y[n-2].
type History struct {
	X1, X2 float64
	Y1, Y2 float64
}

// BlockFn filters buf in place and returns the history after the last sample.
type BlockFn func(c Coefficients, h History, buf []float64) History

// Kernel is one registered block implementation.
type Kernel struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Block     BlockFn
}

// Registry stores kernels ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
	sorted  bool
}

// Global is the registry the biquad package selects from.
var Global = &Registry{}

// Register adds a kernel.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = append(r.kernels, k)
	r.sorted = false
}

// Select returns the highest-priority kernel the given features can run,
// or nil when nothing fits.
func (r *Registry) Select(features cpu.Features) *Kernel {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.kernels {
		k := &r.kernels[i]
		if cpu.Supports(features, k.SIMDLevel) {
			return k
		}
	}

	return nil
}

// insertion sort, the list holds a handful of entries
func (r *Registry) sortByPriority() {
	for i := 1; i < len(r.kernels); i++ {
		key := r.kernels[i]
		j := i - 1
		for j >= 0 && r.kernels[j].Priority < key.Priority {
			r.kernels[j+1] = r.kernels[j]
			j--
		}
		r.kernels[j+1] = key
	}
}

// Kernels returns a copy of the registered kernels.
func (r *Registry) Kernels() []Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kernel, len(r.kernels))
	copy(out, r.kernels)
	return out
}
