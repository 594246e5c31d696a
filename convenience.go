package inertialization

import (
	"fmt"

	"github.com/tphakala/go-inertialization/internal/simdops"
)

// Common update rates for convenience functions, in Hz.
const (
	// RateFrame60 is a typical game and animation update rate.
	RateFrame60 = 60

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)

// DeltaTime returns the step length in seconds for an update rate in Hz.
func DeltaTime(rate float64) float64 {
	return 1 / rate
}

// Splice joins two sampled signals at sample index at: the output is a up to
// at and b from at onward, with the jump between them inertialized so the
// output stays continuous. a and b must have the same length. Rates are the
// finite differences of the samples over deltaTime.
func Splice(a, b []float64, at int, halfLife, deltaTime float64) ([]float64, error) {
	out, err := SpliceMulti([][]float64{a}, [][]float64{b}, at, halfLife, deltaTime, nil)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// SpliceStereo is a convenience function for splicing stereo signals.
func SpliceStereo(leftA, rightA, leftB, rightB []float64, at int, halfLife, deltaTime float64) (leftOut, rightOut []float64, err error) {
	out, err := SpliceMulti(
		[][]float64{leftA, rightA},
		[][]float64{leftB, rightB},
		at, halfLife, deltaTime, nil,
	)
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// SpliceMulti splices multi-channel signals, one inertialized channel per
// signal channel. Each element of a and b is one channel; all channels must
// have the same length.
//
// config may be nil. Its Channels field is ignored and replaced with the
// number of signal channels.
func SpliceMulti(a, b [][]float64, at int, halfLife, deltaTime float64, config *Config) ([][]float64, error) {
	n, err := checkSplice(a, b, at, halfLife, deltaTime)
	if err != nil {
		return nil, err
	}

	channels := len(a)
	cfg := DefaultConfig(channels)
	if config != nil {
		c := *config
		c.Channels = channels
		cfg = &c
	}
	blend, err := NewScalarWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, channels)
	for ch := range channels {
		out[ch] = make([]float64, n)
		copy(out[ch][:at], a[ch][:at])
	}
	if at == n {
		return out, nil
	}

	source := make([]float64, channels)
	sourceRates := make([]float64, channels)
	target := make([]float64, channels)
	targetRates := make([]float64, channels)

	// Fold at the last sample taken from a, so the first Update lands on
	// sample at one step later.
	last := max(at-1, 0)
	gatherFrame(a, last, deltaTime, source, sourceRates)
	gatherFrame(b, last, deltaTime, target, targetRates)
	if err := blend.Transition(source, sourceRates, target, targetRates); err != nil {
		return nil, err
	}

	for i := at; i < n; i++ {
		gatherFrame(b, i, deltaTime, target, targetRates)
		if err := blend.Update(target, targetRates, halfLife, deltaTime); err != nil {
			return nil, err
		}
		for ch, v := range blend.Values() {
			out[ch][i] = v
		}
	}

	return out, nil
}

// gatherFrame copies sample i of every channel into values and its backward
// difference into rates. The first sample has zero rate.
func gatherFrame(signal [][]float64, i int, deltaTime float64, values, rates []float64) {
	for ch, s := range signal {
		values[ch] = s[i]
		if i > 0 {
			rates[ch] = (s[i] - s[i-1]) / deltaTime
		} else {
			rates[ch] = 0
		}
	}
}

func checkSplice(a, b [][]float64, at int, halfLife, deltaTime float64) (int, error) {
	if len(a) == 0 {
		return 0, fmt.Errorf("%w: no channels", ErrInvalidConfig)
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d channels spliced onto %d", ErrLengthMismatch, len(a), len(b))
	}

	n := len(a[0])
	for ch := range a {
		if len(a[ch]) != n || len(b[ch]) != n {
			return 0, fmt.Errorf("%w: channel %d has %d and %d samples, want %d",
				ErrLengthMismatch, ch, len(a[ch]), len(b[ch]), n)
		}
	}

	if at < 0 || at > n {
		return 0, fmt.Errorf("%w: splice point %d outside [0, %d]", ErrInvalidConfig, at, n)
	}
	// Negated so that NaN is rejected.
	if !(halfLife >= 0) {
		return 0, fmt.Errorf("%w: half-life must not be negative", ErrInvalidConfig)
	}
	if !(deltaTime > 0) {
		return 0, fmt.Errorf("%w: delta time must be positive", ErrInvalidConfig)
	}

	return n, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	simdops.For(true).Interleave2(result, left[:minLen], right[:minLen])
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float64, numSamples)
	right = make([]float64, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
