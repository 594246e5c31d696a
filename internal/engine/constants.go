package engine

// Parallel fan-out constants
const (
	// DefaultParallelThreshold is the smallest channel count for which
	// Update and Transition split work across goroutines.
	DefaultParallelThreshold = 1024

	// minChunkSize keeps per-goroutine work large enough to amortize the
	// scheduling cost.
	minChunkSize = 256
)

// dampingHalf converts the half-life damping into the decay rate y of the
// critically damped kernel.
const dampingHalf = 0.5
