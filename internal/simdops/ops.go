// Package simdops provides the bulk float64 slice operations used by the
// scalar channel set, with a SIMD-accelerated and a pure Go implementation
// behind the same function table.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops is a table of bulk slice operations.
// All slices passed to one call must have equal length.
type Ops struct {
	// Name identifies the implementation ("simd" or "generic").
	Name string

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)

	// DotProduct returns Σ a[i]*b[i].
	DotProduct func(a, b []float64) float64

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float64)
}

// Implementation names reported by Ops.Name.
const (
	NameSIMD    = "simd"
	NameGeneric = "generic"
)

// Pre-instantiated operation tables.
// These are package-level variables to avoid repeated allocation.
var (
	simdOps = Ops{
		Name:        NameSIMD,
		Scale:       f64.Scale,
		DotProduct:  f64.DotProductUnsafe,
		Interleave2: f64.Interleave2,
	}
	genericOps = Ops{
		Name:        NameGeneric,
		Scale:       scaleGeneric,
		DotProduct:  dotGeneric,
		Interleave2: interleave2Generic,
	}
)

// For returns the SIMD table when enableSIMD is set and the pure Go table otherwise.
func For(enableSIMD bool) *Ops {
	if enableSIMD {
		return &simdOps
	}
	return &genericOps
}

func scaleGeneric(dst, a []float64, s float64) {
	for i, v := range a {
		dst[i] = v * s
	}
}

func dotGeneric(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

func interleave2Generic(dst, a, b []float64) {
	for i := range a {
		dst[2*i] = a[i]
		dst[2*i+1] = b[i]
	}
}
