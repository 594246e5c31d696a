// Package inertialization provides offset-based inertialization for
// discontinuous signals in pure Go.
//
// Inertialization replaces crossfading: when a signal jumps from a source
// trajectory to a new target, the jump is captured once as an offset and
// that offset is decayed to zero by a critically damped spring while the
// target keeps updating. Only the target needs to be evaluated after the
// transition, and the output stays continuous in both value and rate.
//
// # Features
//
//   - Scalar, 3D vector and rotation channels behind one decay law
//   - Implicit spring update, stable at any step length
//   - Half-life parameterization: the offset decays at a predictable speed
//   - Fast rational approximation of e^(-x), with an exact mode
//   - Optional SIMD acceleration (AVX2/NEON) via github.com/tphakala/simd
//   - Optional parallel fan-out for very large channel sets
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// A set of scalar channels, driven once per frame:
//
//	blend, err := inertialization.NewScalar(1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// On a discontinuity: fold source -> target into the offset.
//	err = blend.Transition(
//	    []float64{currentPose}, []float64{currentVelocity},
//	    []float64{newPose}, []float64{newVelocity},
//	)
//
//	// Every frame: decay and publish target + offset.
//	err = blend.Update([]float64{target}, []float64{targetVelocity}, 0.1, dt)
//	output := blend.Values()[0]
//
// # Channel Kinds
//
//   - [Scalar]: float64 values and rates, offsets are differences.
//   - [Vector]: r3.Vec values and rates, offsets are component-wise differences.
//   - [Rotation]: unit quaternions with angular velocities. Offsets are delta
//     rotations applied on the right of the target and decayed in the tangent
//     space (scaled angle-axis) at the identity.
//
// Transitions are re-entrant: a new transition while an offset is still
// decaying folds the new jump onto the residual offset.
//
// # Half-Life
//
// The half-life argument of Update sets the decay speed. Because the decay
// is critically damped and starts with the source's velocity, an offset
// starting at rest has fallen to about 60% of its size after one half-life
// and to under 1% after five.
//
// # Audio
//
// [Splice] and [SpliceMulti] join two sampled signals at a sample index,
// inertializing the jump so the splice does not click. The splice-wav
// command applies this to WAV files.
//
// # Thread Safety
//
// A blender is not safe for concurrent use. Transition and Update on the same
// instance must be serialized by the caller. Independent blenders can be used
// from different goroutines freely.
package inertialization
