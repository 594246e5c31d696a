package engine

import (
	"github.com/tphakala/go-inertialization/internal/mathutil"
	"github.com/tphakala/go-inertialization/internal/simdops"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Algebra describes how offsets of value type V with rate type R are folded
// on a transition, decayed each step and applied to the target.
type Algebra[V, R any] interface {
	// Identity returns the neutral offset and rate.
	Identity() (V, R)

	// Fold folds a source→target discontinuity into the outstanding offset.
	Fold(source V, sourceRate R, target V, targetRate R, offset V, offsetRate R) (V, R)

	// Decay advances an offset one step toward the identity.
	Decay(offset V, offsetRate R, c Coefficients) (V, R)

	// Apply adds an offset back onto the target value and rate.
	Apply(target V, targetRate R, offset V, offsetRate R) (V, R)

	// Magnitude2 returns the squared size of an offset.
	Magnitude2(offset V) float64
}

// BulkAlgebra is an optional extension for algebras that can process whole
// channel ranges at once. Results must match the per-channel methods.
type BulkAlgebra[V, R any] interface {
	FoldAll(source []V, sourceRates []R, target []V, targetRates []R, offsets []V, offsetRates []R)
	DecayAll(offsets []V, offsetRates []R, c Coefficients)
	ApplyAll(target []V, targetRates []R, offsets []V, offsetRates []R, values []V, rates []R)
	Energy(offsets []V) float64
}

// ScalarAlgebra handles float64 channels. Its bulk path runs on gonum floats
// and the simdops table.
type ScalarAlgebra struct {
	ops *simdops.Ops
}

// NewScalarAlgebra returns a scalar algebra using SIMD when enableSIMD is set.
func NewScalarAlgebra(enableSIMD bool) ScalarAlgebra {
	return ScalarAlgebra{ops: simdops.For(enableSIMD)}
}

func (ScalarAlgebra) Identity() (float64, float64) { return 0, 0 }

func (ScalarAlgebra) Fold(source, sourceRate, target, targetRate, offset, offsetRate float64) (float64, float64) {
	return (source + offset) - target, (sourceRate + offsetRate) - targetRate
}

func (ScalarAlgebra) Decay(offset, offsetRate float64, c Coefficients) (float64, float64) {
	return DecayScalar(offset, offsetRate, c)
}

func (ScalarAlgebra) Apply(target, targetRate, offset, offsetRate float64) (float64, float64) {
	return target + offset, targetRate + offsetRate
}

func (ScalarAlgebra) Magnitude2(offset float64) float64 { return offset * offset }

// FoldAll folds every channel: offsets = (source + offsets) - target.
func (ScalarAlgebra) FoldAll(source, sourceRates, target, targetRates, offsets, offsetRates []float64) {
	floats.Add(offsets, source)
	floats.Sub(offsets, target)
	floats.Add(offsetRates, sourceRates)
	floats.Sub(offsetRates, targetRates)
}

// DecayAll evaluates the bracketed terms of DecayScalar per channel and then
// applies the shared decay factor to both arrays in one pass each.
func (a ScalarAlgebra) DecayAll(offsets, offsetRates []float64, c Coefficients) {
	for i, x := range offsets {
		v := offsetRates[i]
		j1 := v + x*c.Y
		offsets[i] = x + j1*c.DeltaTime
		offsetRates[i] = v - j1*c.Y*c.DeltaTime
	}
	ops := a.table()
	ops.Scale(offsets, offsets, c.Decay)
	ops.Scale(offsetRates, offsetRates, c.Decay)
}

// ApplyAll publishes target + offset for every channel.
func (ScalarAlgebra) ApplyAll(target, targetRates, offsets, offsetRates, values, rates []float64) {
	floats.AddTo(values, target, offsets)
	floats.AddTo(rates, targetRates, offsetRates)
}

// Energy returns Σ offset².
func (a ScalarAlgebra) Energy(offsets []float64) float64 {
	return a.table().DotProduct(offsets, offsets)
}

// table falls back to the pure Go operations for a zero ScalarAlgebra.
func (a ScalarAlgebra) table() *simdops.Ops {
	if a.ops == nil {
		return simdops.For(false)
	}
	return a.ops
}

// VectorAlgebra handles r3.Vec channels with additive offsets.
type VectorAlgebra struct{}

func (VectorAlgebra) Identity() (r3.Vec, r3.Vec) { return r3.Vec{}, r3.Vec{} }

func (VectorAlgebra) Fold(source, sourceRate, target, targetRate, offset, offsetRate r3.Vec) (r3.Vec, r3.Vec) {
	return r3.Sub(r3.Add(source, offset), target), r3.Sub(r3.Add(sourceRate, offsetRate), targetRate)
}

func (VectorAlgebra) Decay(offset, offsetRate r3.Vec, c Coefficients) (r3.Vec, r3.Vec) {
	return DecayVec(offset, offsetRate, c)
}

func (VectorAlgebra) Apply(target, targetRate, offset, offsetRate r3.Vec) (r3.Vec, r3.Vec) {
	return r3.Add(target, offset), r3.Add(targetRate, offsetRate)
}

func (VectorAlgebra) Magnitude2(offset r3.Vec) float64 { return r3.Norm2(offset) }

// RotationAlgebra handles unit quaternion channels with angular velocity
// rates. Offsets are delta rotations applied on the right of the target and
// decayed in the tangent space at the identity.
//
// Fold leaves offsets on the non-negative real hemisphere. Decay does not
// re-canonicalize, so an offset with a large rate can cross that boundary
// between transitions; the tangent-space trajectory stays continuous.
type RotationAlgebra struct {
	// Eps gates the first-order branches of the log/exp mappings.
	Eps float64
}

// NewRotationAlgebra returns a rotation algebra with the default epsilon.
func NewRotationAlgebra() RotationAlgebra {
	return RotationAlgebra{Eps: mathutil.DefaultRotationEpsilon}
}

func (RotationAlgebra) Identity() (quat.Number, r3.Vec) { return mathutil.Identity, r3.Vec{} }

// Fold computes abs(normalize(inv(target)·source·offset)), the outstanding
// offset expressed in the new target's local frame.
func (RotationAlgebra) Fold(source quat.Number, sourceRate r3.Vec, target quat.Number, targetRate r3.Vec,
	offset quat.Number, offsetRate r3.Vec,
) (quat.Number, r3.Vec) {
	delta := quat.Mul(quat.Inv(target), quat.Mul(source, offset))
	return mathutil.ShortestDelta(delta), r3.Sub(r3.Add(sourceRate, offsetRate), targetRate)
}

func (a RotationAlgebra) Decay(offset quat.Number, offsetRate r3.Vec, c Coefficients) (quat.Number, r3.Vec) {
	return DecayRotation(offset, offsetRate, c, a.Eps)
}

func (RotationAlgebra) Apply(target quat.Number, targetRate r3.Vec, offset quat.Number, offsetRate r3.Vec) (quat.Number, r3.Vec) {
	return quat.Mul(target, offset), r3.Add(targetRate, offsetRate)
}

// Magnitude2 returns the squared rotation angle of the offset.
func (a RotationAlgebra) Magnitude2(offset quat.Number) float64 {
	return r3.Norm2(mathutil.ToScaledAngleAxis(offset, a.Eps))
}
