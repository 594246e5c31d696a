// Package engine implements the inertialization decay kernel and the generic
// channel set that applies it to scalar, vector and rotation offsets.
package engine

import (
	"github.com/tphakala/go-inertialization/internal/mathutil"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Coefficients holds the per-step decay factors. They depend only on the
// half-life and the step length, so one value serves every channel of a step.
type Coefficients struct {
	// Y is the decay rate: HalfLifeToDamping(halfLife) / 2.
	Y float64

	// Decay is e^(-Y·DeltaTime), approximated unless exact decay was requested.
	Decay float64

	// DeltaTime is the step length in seconds.
	DeltaTime float64
}

// NewCoefficients computes the decay factors for one step.
//
// halfLife is expected to be ≥ 0 and deltaTime > 0. A zero half-life snaps
// offsets to (almost) zero in one step; a zero deltaTime leaves them unchanged.
func NewCoefficients(halfLife, deltaTime float64, exact bool) Coefficients {
	y := mathutil.HalfLifeToDamping(halfLife, mathutil.DefaultDampingEpsilon) * dampingHalf

	negExp := mathutil.FastNegExp
	if exact {
		negExp = mathutil.ExactNegExp
	}

	return Coefficients{
		Y:         y,
		Decay:     negExp(y * deltaTime),
		DeltaTime: deltaTime,
	}
}

// DecayScalar advances a scalar offset and its rate one step toward zero with
// the implicit critically damped spring:
//
//	j1 = v + x·y
//	x' = e·(x + j1·dt)
//	v' = e·(v − j1·y·dt)
//
// The update is stable for any step length.
func DecayScalar(x, v float64, c Coefficients) (float64, float64) {
	j1 := v + x*c.Y
	return c.Decay * (x + j1*c.DeltaTime),
		c.Decay * (v - j1*c.Y*c.DeltaTime)
}

// DecayVec is DecayScalar applied to 3-vectors.
func DecayVec(x, v r3.Vec, c Coefficients) (r3.Vec, r3.Vec) {
	j1 := r3.Add(v, r3.Scale(c.Y, x))
	return r3.Scale(c.Decay, r3.Add(x, r3.Scale(c.DeltaTime, j1))),
		r3.Scale(c.Decay, r3.Sub(v, r3.Scale(c.Y*c.DeltaTime, j1)))
}

// DecayRotation decays a rotation offset toward the identity by running
// DecayVec on its scaled angle-axis vector and mapping the result back.
func DecayRotation(q quat.Number, w r3.Vec, c Coefficients, eps float64) (quat.Number, r3.Vec) {
	j0 := mathutil.ToScaledAngleAxis(q, eps)
	j0, w = DecayVec(j0, w, c)
	return mathutil.FromScaledAngleAxis(j0, eps), w
}
