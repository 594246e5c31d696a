package inertialization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-inertialization/internal/testutil"
)

func sine(n int, freq, phase, rate float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2*math.Pi*freq*float64(i)/rate + phase)
	}
	return s
}

// TestSplice_Step tests that a step between two constant signals is smoothed.
func TestSplice_Step(t *testing.T) {
	const (
		n  = RateDAT / 10 // 100ms
		at = 100
	)
	a := make([]float64, n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	out, err := Splice(a, b, at, DefaultSpliceHalfLife, DeltaTime(RateDAT))
	require.NoError(t, err)
	require.Len(t, out, n)

	assert.Equal(t, a[:at], out[:at])
	assert.Less(t, out[at], 0.01, "first spliced sample should stay near a")
	assert.InDelta(t, 1.0, out[n-1], 1e-6)
	testutil.AssertNoNaNOrInf(t, out)

	for i := 1; i < n; i++ {
		assert.Less(t, math.Abs(out[i]-out[i-1]), 0.01, "sample %d", i)
	}
}

// TestSplice_PhaseFlip tests a splice between a sine and its inverse.
func TestSplice_PhaseFlip(t *testing.T) {
	const (
		n    = RateCD / 4
		freq = 440.0
		at   = 1137 // a is near +0.83 here
	)
	a := sine(n, freq, 0, RateCD)
	b := sine(n, freq, math.Pi, RateCD)

	out, err := Splice(a, b, at, DefaultSpliceHalfLife, DeltaTime(RateCD))
	require.NoError(t, err)

	// A raw splice jumps by 2·|a[at]|; the inertialized one moves like the sine itself.
	maxStep := 2 * math.Pi * freq / RateCD * 1.5
	for i := at; i < at+200; i++ {
		assert.Less(t, math.Abs(out[i]-out[i-1]), maxStep, "sample %d", i)
	}
	assert.InDeltaSlice(t, b[n-100:], out[n-100:], 1e-6)
}

// TestSplice_Bounds tests splice points at the ends of the signal.
func TestSplice_Bounds(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7, 8}

	out, err := Splice(a, b, len(a), 0.01, 0.01)
	require.NoError(t, err)
	assert.Equal(t, a, out)

	same, err := Splice(b, b, 0, 0.01, 0.01)
	require.NoError(t, err)
	assert.Equal(t, b, same)
}

// TestSplice_Errors tests argument validation.
func TestSplice_Errors(t *testing.T) {
	a := []float64{1, 2, 3}

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"Length mismatch", func() error {
			_, err := Splice(a, []float64{1}, 1, 0.01, 0.01)
			return err
		}, ErrLengthMismatch},
		{"Negative splice point", func() error {
			_, err := Splice(a, a, -1, 0.01, 0.01)
			return err
		}, ErrInvalidConfig},
		{"Splice point past end", func() error {
			_, err := Splice(a, a, 4, 0.01, 0.01)
			return err
		}, ErrInvalidConfig},
		{"Negative half-life", func() error {
			_, err := Splice(a, a, 1, -1, 0.01)
			return err
		}, ErrInvalidConfig},
		{"Zero delta time", func() error {
			_, err := Splice(a, a, 1, 0.01, 0)
			return err
		}, ErrInvalidConfig},
		{"NaN half-life", func() error {
			_, err := Splice(a, a, 1, math.NaN(), 0.01)
			return err
		}, ErrInvalidConfig},
		{"NaN delta time", func() error {
			_, err := Splice(a, a, 1, 0.01, math.NaN())
			return err
		}, ErrInvalidConfig},
		{"No channels", func() error {
			_, err := SpliceMulti(nil, nil, 0, 0.01, 0.01, nil)
			return err
		}, ErrInvalidConfig},
		{"Ragged channels", func() error {
			_, err := SpliceMulti([][]float64{a, {1}}, [][]float64{a, a}, 0, 0.01, 0.01, nil)
			return err
		}, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

// TestSpliceStereo_ChannelIndependence tests that an unchanged channel passes through.
func TestSpliceStereo_ChannelIndependence(t *testing.T) {
	const n = 2000
	left := sine(n, 220, 0, RateDAT)
	rightA := sine(n, 330, 0, RateDAT)
	rightB := sine(n, 330, 1, RateDAT)

	leftOut, rightOut, err := SpliceStereo(left, rightA, left, rightB, n/2, DefaultSpliceHalfLife, DeltaTime(RateDAT))
	require.NoError(t, err)

	assert.Equal(t, left, leftOut)
	assert.Equal(t, rightA[:n/2], rightOut[:n/2])
	assert.NotEqual(t, rightB[n/2], rightOut[n/2])
}

// TestSpliceMulti_Parallel tests that a parallel config gives the same result.
func TestSpliceMulti_Parallel(t *testing.T) {
	const (
		channels = 600
		n        = 500
	)
	a := make([][]float64, channels)
	b := make([][]float64, channels)
	for ch := range channels {
		a[ch] = sine(n, 100+float64(ch), 0, RateDAT)
		b[ch] = sine(n, 100+float64(ch), float64(ch%7), RateDAT)
	}

	seq, err := SpliceMulti(a, b, n/4, DefaultSpliceHalfLife, DeltaTime(RateDAT), nil)
	require.NoError(t, err)
	par, err := SpliceMulti(a, b, n/4, DefaultSpliceHalfLife, DeltaTime(RateDAT), &Config{
		EnableSIMD:        true,
		EnableParallel:    true,
		ParallelThreshold: 128,
	})
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []float64{1, 2, 3, 4, 5}
	right := []float64{-1, -2, -3, -4}

	interleaved := InterleaveToStereo(left, right)
	assert.Equal(t, []float64{1, -1, 2, -2, 3, -3, 4, -4}, interleaved)

	l, r := DeinterleaveFromStereo(interleaved)
	assert.Equal(t, left[:4], l)
	assert.Equal(t, right, r)
}
