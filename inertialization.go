package inertialization

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-inertialization/internal/engine"
	"github.com/tphakala/go-inertialization/internal/simdops"
)

// Blender is the behavior shared by all channel kinds.
type Blender interface {
	// Len returns the number of channels.
	Len() int

	// Reset returns every offset to the identity and clears the published
	// values and rates.
	Reset()

	// OffsetEnergy returns the sum of squared offset magnitudes. It reaches
	// zero once every transition has fully decayed.
	OffsetEnergy() float64
}

// Config holds blender configuration.
type Config struct {
	// Channels is the number of independent channels in the set.
	// Zero is allowed and yields a set where every call is a no-op.
	Channels int

	// ExactDecay uses math.Exp for the per-step decay factor instead of the
	// rational approximation. The approximation is within 0.5% of e^(-x)
	// and is several times cheaper.
	ExactDecay bool

	// EnableSIMD allows the use of SIMD optimizations when available.
	// Only scalar channel sets have a bulk path; other kinds ignore it.
	EnableSIMD bool

	// EnableParallel splits each call across goroutines when the channel
	// count reaches ParallelThreshold. Results are bit-identical to the
	// sequential path.
	EnableParallel bool

	// ParallelThreshold is the minimum channel count for parallel work.
	// Set to 0 to use the default.
	ParallelThreshold int
}

// Common errors returned by blenders.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid inertialization configuration")

	// ErrLengthMismatch indicates an input slice whose length differs from
	// the channel count. Nothing is modified when it is returned.
	ErrLengthMismatch = engine.ErrLengthMismatch
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Channels < 0 {
		return fmt.Errorf("%w: channels must not be negative", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel threshold must not be negative", ErrInvalidConfig)
	}

	return nil
}

// options converts the configuration into engine options.
func (c *Config) options() engine.Options {
	return engine.Options{
		ExactDecay:        c.ExactDecay,
		Parallel:          c.EnableParallel,
		ParallelThreshold: c.ParallelThreshold,
	}
}

// DefaultConfig returns the configuration used by NewScalar, NewVector and
// NewRotation.
func DefaultConfig(channels int) *Config {
	return &Config{
		Channels:   channels,
		EnableSIMD: true,
	}
}

// Info returns information about a blender's configuration.
type Info struct {
	// Kind is "scalar", "vector" or "rotation".
	Kind string

	// Channels is the channel count.
	Channels int

	// ExactDecay indicates math.Exp decay factors.
	ExactDecay bool

	// Parallel indicates parallel fan-out is enabled.
	Parallel bool

	// SIMDEnabled indicates if SIMD optimizations are active.
	SIMDEnabled bool

	// SIMDType describes the implementation in use ("simd", "generic" or "none").
	SIMDType string
}

// infoProvider is an optional interface for blenders that can provide detailed info.
type infoProvider interface {
	GetInfo() Info
}

// GetInfo returns information about a blender.
// If the blender implements the infoProvider interface, it returns actual values.
// Otherwise, it returns basic info based on the Blender methods.
func GetInfo(b Blender) Info {
	if provider, ok := b.(infoProvider); ok {
		return provider.GetInfo()
	}

	return Info{
		Kind:     "unknown",
		Channels: b.Len(),
		SIMDType: "none",
	}
}

func newInfo(kind string, config *Config, ops *simdops.Ops) Info {
	info := Info{
		Kind:       kind,
		Channels:   config.Channels,
		ExactDecay: config.ExactDecay,
		Parallel:   config.EnableParallel,
		SIMDType:   "none",
	}
	if ops != nil {
		info.SIMDType = ops.Name
		info.SIMDEnabled = ops.Name == simdops.NameSIMD
	}
	return info
}
