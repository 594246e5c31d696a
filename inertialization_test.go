package inertialization

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"Empty set", Config{}, false},
		{"Typical", Config{Channels: 64, EnableSIMD: true}, false},
		{"Parallel with threshold", Config{Channels: 8, EnableParallel: true, ParallelThreshold: 4}, false},
		{"Negative channels", Config{Channels: -1}, true},
		{"Too many channels", Config{Channels: maxChannels + 1}, true},
		{"Negative threshold", Config{Channels: 8, ParallelThreshold: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewWithConfig_Nil(t *testing.T) {
	_, err := NewScalarWithConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewVectorWithConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewRotationWithConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_NegativeCount(t *testing.T) {
	_, err := NewScalar(-3)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewRotation(-1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// staticBlender implements Blender without providing info.
type staticBlender struct{}

func (staticBlender) Len() int              { return 7 }
func (staticBlender) Reset()                {}
func (staticBlender) OffsetEnergy() float64 { return 0 }

func TestGetInfo(t *testing.T) {
	s, err := NewScalarWithConfig(&Config{Channels: 4, EnableSIMD: true, ExactDecay: true})
	require.NoError(t, err)
	info := GetInfo(s)
	assert.Equal(t, "scalar", info.Kind)
	assert.Equal(t, 4, info.Channels)
	assert.True(t, info.ExactDecay)
	assert.True(t, info.SIMDEnabled)
	assert.Equal(t, "simd", info.SIMDType)

	s, err = NewScalarWithConfig(&Config{Channels: 4})
	require.NoError(t, err)
	info = GetInfo(s)
	assert.False(t, info.SIMDEnabled)
	assert.Equal(t, "generic", info.SIMDType)

	r, err := NewRotation(2)
	require.NoError(t, err)
	info = GetInfo(r)
	assert.Equal(t, "rotation", info.Kind)
	assert.Equal(t, "none", info.SIMDType)

	info = GetInfo(staticBlender{})
	assert.Equal(t, "unknown", info.Kind)
	assert.Equal(t, 7, info.Channels)
}

func TestErrLengthMismatch_IsEngineError(t *testing.T) {
	s, err := NewScalar(2)
	require.NoError(t, err)

	err = s.Update([]float64{1}, []float64{0, 0}, 0.1, DeltaTime(RateFrame60))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	assert.Contains(t, err.Error(), "target has 1 elements, want 2")
}
