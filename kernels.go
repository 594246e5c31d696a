package inertialization

import (
	"github.com/tphakala/go-inertialization/internal/engine"
	"github.com/tphakala/go-inertialization/internal/mathutil"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Single-channel kernels for callers that keep their own offset state
// instead of using a blender. They use the fast decay approximation.

// ScalarOffset is the outstanding offset of one scalar channel.
// The zero value is the identity.
type ScalarOffset struct {
	Value float64
	Rate  float64
}

// VectorOffset is the outstanding offset of one vector channel.
// The zero value is the identity.
type VectorOffset struct {
	Value r3.Vec
	Rate  r3.Vec
}

// RotationOffset is the outstanding offset of one rotation channel.
// The zero value is treated as the identity rotation.
type RotationOffset struct {
	Value quat.Number
	Rate  r3.Vec
}

var (
	scalarAlgebra   engine.ScalarAlgebra
	vectorAlgebra   engine.VectorAlgebra
	rotationAlgebra = engine.NewRotationAlgebra()
)

// TransitionScalar folds a source→target jump into o.
func TransitionScalar(o *ScalarOffset, source, sourceRate, target, targetRate float64) {
	o.Value, o.Rate = scalarAlgebra.Fold(source, sourceRate, target, targetRate, o.Value, o.Rate)
}

// UpdateScalar decays o by one step and returns the inertialized value and rate.
func UpdateScalar(o *ScalarOffset, target, targetRate, halfLife, deltaTime float64) (value, rate float64) {
	c := engine.NewCoefficients(halfLife, deltaTime, false)
	o.Value, o.Rate = scalarAlgebra.Decay(o.Value, o.Rate, c)
	return scalarAlgebra.Apply(target, targetRate, o.Value, o.Rate)
}

// TransitionVector folds a source→target jump into o.
func TransitionVector(o *VectorOffset, source, sourceRate, target, targetRate r3.Vec) {
	o.Value, o.Rate = vectorAlgebra.Fold(source, sourceRate, target, targetRate, o.Value, o.Rate)
}

// UpdateVector decays o by one step and returns the inertialized value and rate.
func UpdateVector(o *VectorOffset, target, targetRate r3.Vec, halfLife, deltaTime float64) (value, rate r3.Vec) {
	c := engine.NewCoefficients(halfLife, deltaTime, false)
	o.Value, o.Rate = vectorAlgebra.Decay(o.Value, o.Rate, c)
	return vectorAlgebra.Apply(target, targetRate, o.Value, o.Rate)
}

// TransitionRotation folds a source→target jump into o. The stored offset is
// unit length with a non-negative real part.
func TransitionRotation(o *RotationOffset, source quat.Number, sourceRate r3.Vec, target quat.Number, targetRate r3.Vec) {
	o.identityIfZero()
	o.Value, o.Rate = rotationAlgebra.Fold(source, sourceRate, target, targetRate, o.Value, o.Rate)
}

// UpdateRotation decays o by one step and returns target·offset and the
// inertialized angular velocity.
func UpdateRotation(o *RotationOffset, target quat.Number, targetRate r3.Vec, halfLife, deltaTime float64) (value quat.Number, rate r3.Vec) {
	o.identityIfZero()
	c := engine.NewCoefficients(halfLife, deltaTime, false)
	o.Value, o.Rate = rotationAlgebra.Decay(o.Value, o.Rate, c)
	return rotationAlgebra.Apply(target, targetRate, o.Value, o.Rate)
}

func (o *RotationOffset) identityIfZero() {
	if o.Value == (quat.Number{}) {
		o.Value = mathutil.Identity
	}
}
