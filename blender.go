package inertialization

import (
	"fmt"

	"github.com/tphakala/go-inertialization/internal/engine"
	"github.com/tphakala/go-inertialization/internal/simdops"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scalar inertializes a set of float64 channels.
type Scalar struct {
	*engine.Channels[float64, float64]
	info Info
}

// Vector inertializes a set of 3D vector channels.
type Vector struct {
	*engine.Channels[r3.Vec, r3.Vec]
	info Info
}

// Rotation inertializes a set of unit quaternion channels. Rates are angular
// velocities in radians per second.
type Rotation struct {
	*engine.Channels[quat.Number, r3.Vec]
	info Info
}

// NewScalar creates a scalar blender with n channels and default settings.
func NewScalar(n int) (*Scalar, error) {
	return NewScalarWithConfig(DefaultConfig(n))
}

// NewScalarWithConfig creates a scalar blender from config.
func NewScalarWithConfig(config *Config) (*Scalar, error) {
	if err := checkConfig(config); err != nil {
		return nil, err
	}

	algebra := engine.NewScalarAlgebra(config.EnableSIMD)
	channels, err := engine.New[float64, float64](config.Channels, algebra, config.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Scalar{
		Channels: channels,
		info:     newInfo("scalar", config, simdops.For(config.EnableSIMD)),
	}, nil
}

// NewVector creates a vector blender with n channels and default settings.
func NewVector(n int) (*Vector, error) {
	return NewVectorWithConfig(DefaultConfig(n))
}

// NewVectorWithConfig creates a vector blender from config.
func NewVectorWithConfig(config *Config) (*Vector, error) {
	if err := checkConfig(config); err != nil {
		return nil, err
	}

	channels, err := engine.New[r3.Vec, r3.Vec](config.Channels, engine.VectorAlgebra{}, config.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Vector{
		Channels: channels,
		info:     newInfo("vector", config, nil),
	}, nil
}

// NewRotation creates a rotation blender with n channels and default settings.
func NewRotation(n int) (*Rotation, error) {
	return NewRotationWithConfig(DefaultConfig(n))
}

// NewRotationWithConfig creates a rotation blender from config.
func NewRotationWithConfig(config *Config) (*Rotation, error) {
	if err := checkConfig(config); err != nil {
		return nil, err
	}

	channels, err := engine.New[quat.Number, r3.Vec](config.Channels, engine.NewRotationAlgebra(), config.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Rotation{
		Channels: channels,
		info:     newInfo("rotation", config, nil),
	}, nil
}

// GetInfo returns the blender's configuration details.
func (s *Scalar) GetInfo() Info { return s.info }

// GetInfo returns the blender's configuration details.
func (v *Vector) GetInfo() Info { return v.info }

// GetInfo returns the blender's configuration details.
func (r *Rotation) GetInfo() Info { return r.info }

func checkConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	return config.Validate()
}

// Compile-time interface checks.
var (
	_ Blender = (*Scalar)(nil)
	_ Blender = (*Vector)(nil)
	_ Blender = (*Rotation)(nil)
)
