package engine

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Errors returned by channel sets.
var (
	// ErrLengthMismatch indicates an input slice whose length differs from the channel count.
	ErrLengthMismatch = errors.New("input length does not match channel count")

	// ErrNegativeCount indicates a negative channel count at construction.
	ErrNegativeCount = errors.New("channel count must not be negative")
)

// Options controls how a channel set evaluates its kernel.
type Options struct {
	// ExactDecay uses math.Exp instead of the rational approximation.
	ExactDecay bool

	// Parallel splits channels across goroutines once the channel count
	// reaches ParallelThreshold.
	Parallel bool

	// ParallelThreshold is the minimum channel count for parallel work.
	// Zero selects DefaultParallelThreshold.
	ParallelThreshold int
}

// Channels is a fixed-size set of independent inertialized channels stored
// as parallel arrays.
//
// A Channels value is not safe for concurrent use; Transition and Update
// must not run at the same time on the same set.
type Channels[V, R any] struct {
	algebra Algebra[V, R]
	bulk    BulkAlgebra[V, R]
	opts    Options

	values      []V
	rates       []R
	offsets     []V
	offsetRates []R
}

// New creates a channel set of count channels with identity offsets.
func New[V, R any](count int, algebra Algebra[V, R], opts Options) (*Channels[V, R], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeCount, count)
	}
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = DefaultParallelThreshold
	}

	c := &Channels[V, R]{
		algebra:     algebra,
		opts:        opts,
		values:      make([]V, count),
		rates:       make([]R, count),
		offsets:     make([]V, count),
		offsetRates: make([]R, count),
	}
	if bulk, ok := algebra.(BulkAlgebra[V, R]); ok {
		c.bulk = bulk
	}
	c.Reset()

	return c, nil
}

// Len returns the channel count.
func (c *Channels[V, R]) Len() int { return len(c.offsets) }

// Values returns the inertialized values published by the last Update.
// The slice is owned by the channel set and overwritten by the next Update.
func (c *Channels[V, R]) Values() []V { return c.values }

// Rates returns the inertialized rates published by the last Update.
func (c *Channels[V, R]) Rates() []R { return c.rates }

// Offsets returns the outstanding offsets. Rotation offsets are canonical
// right after Transition only; Update may leave them in either hemisphere.
func (c *Channels[V, R]) Offsets() []V { return c.offsets }

// OffsetRates returns the outstanding offset rates.
func (c *Channels[V, R]) OffsetRates() []R { return c.offsetRates }

// Reset sets every offset and published value back to the identity.
func (c *Channels[V, R]) Reset() {
	id, zero := c.algebra.Identity()
	for i := range c.offsets {
		c.values[i] = id
		c.rates[i] = zero
		c.offsets[i] = id
		c.offsetRates[i] = zero
	}
}

// Transition folds the discontinuity between source and target into the
// outstanding offsets. Published values are left untouched until Update.
//
// All four slices must have Len elements; otherwise ErrLengthMismatch is
// returned and nothing is modified.
func (c *Channels[V, R]) Transition(source []V, sourceRates []R, target []V, targetRates []R) error {
	n := c.Len()
	if err := checkLengths(n,
		lengthOf("source", len(source)),
		lengthOf("source rates", len(sourceRates)),
		lengthOf("target", len(target)),
		lengthOf("target rates", len(targetRates)),
	); err != nil {
		return err
	}

	c.forEachRange(n, func(lo, hi int) {
		if c.bulk != nil {
			c.bulk.FoldAll(source[lo:hi], sourceRates[lo:hi], target[lo:hi], targetRates[lo:hi],
				c.offsets[lo:hi], c.offsetRates[lo:hi])
			return
		}
		for i := lo; i < hi; i++ {
			c.offsets[i], c.offsetRates[i] = c.algebra.Fold(source[i], sourceRates[i], target[i], targetRates[i],
				c.offsets[i], c.offsetRates[i])
		}
	})

	return nil
}

// Update decays every offset by one step of deltaTime seconds with the given
// half-life and publishes target + offset as the inertialized output.
//
// Both slices must have Len elements; otherwise ErrLengthMismatch is returned
// and nothing is modified.
func (c *Channels[V, R]) Update(target []V, targetRates []R, halfLife, deltaTime float64) error {
	n := c.Len()
	if err := checkLengths(n,
		lengthOf("target", len(target)),
		lengthOf("target rates", len(targetRates)),
	); err != nil {
		return err
	}

	coeffs := NewCoefficients(halfLife, deltaTime, c.opts.ExactDecay)

	c.forEachRange(n, func(lo, hi int) {
		if c.bulk != nil {
			c.bulk.DecayAll(c.offsets[lo:hi], c.offsetRates[lo:hi], coeffs)
			c.bulk.ApplyAll(target[lo:hi], targetRates[lo:hi], c.offsets[lo:hi], c.offsetRates[lo:hi],
				c.values[lo:hi], c.rates[lo:hi])
			return
		}
		for i := lo; i < hi; i++ {
			c.offsets[i], c.offsetRates[i] = c.algebra.Decay(c.offsets[i], c.offsetRates[i], coeffs)
			c.values[i], c.rates[i] = c.algebra.Apply(target[i], targetRates[i], c.offsets[i], c.offsetRates[i])
		}
	})

	return nil
}

// OffsetEnergy returns the sum of squared offset magnitudes.
func (c *Channels[V, R]) OffsetEnergy() float64 {
	if c.bulk != nil {
		return c.bulk.Energy(c.offsets)
	}
	var sum float64
	for _, o := range c.offsets {
		sum += c.algebra.Magnitude2(o)
	}
	return sum
}

// forEachRange runs fn over [0, n), split into contiguous ranges processed
// concurrently when parallel work is enabled and n is large enough.
func (c *Channels[V, R]) forEachRange(n int, fn func(lo, hi int)) {
	if !c.opts.Parallel || n < c.opts.ParallelThreshold {
		fn(0, n)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := max((n+workers-1)/workers, minChunkSize)

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

type namedLength struct {
	name string
	n    int
}

func lengthOf(name string, n int) namedLength {
	return namedLength{name: name, n: n}
}

func checkLengths(want int, lengths ...namedLength) error {
	for _, l := range lengths {
		if l.n != want {
			return fmt.Errorf("%w: %s has %d elements, want %d", ErrLengthMismatch, l.name, l.n, want)
		}
	}
	return nil
}
