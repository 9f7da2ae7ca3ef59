// Package xform implements the pose transform core shared by the import and
// export pipelines: coordinate-system conversion between WebXR's Y-up space
// and the editor's Z-up space, position scaling, and delta rebasing against a
// pose captured at the start of a run.
//
// All functions are pure. Rotations are never re-normalized and non-finite
// inputs pass through unchanged; validation belongs to the caller.
package xform

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Direction selects which coordinate-system conversion ConvertSpace applies.
type Direction int

const (
	// Keep leaves the pose in its source coordinate system.
	Keep Direction = iota
	// WebXRToHost converts from WebXR Y-up to the editor's Z-up frame.
	WebXRToHost
	// HostToWebXR converts from the editor's Z-up frame back to WebXR Y-up.
	HostToWebXR
)

func (d Direction) String() string {
	switch d {
	case WebXRToHost:
		return "webxr-to-host"
	case HostToWebXR:
		return "host-to-webxr"
	default:
		return "keep"
	}
}

// basisRotation is the +90 degree rotation about X that carries WebXR's Y-up
// frame (forward=-Z, up=+Y) onto the editor's Z-up frame (forward=-Y, up=+Z).
// basisInverse is the -90 degree counterpart used on export.
var (
	basisRotation = quat.Number{Real: 0.7071068, Imag: 0.7071068}
	basisInverse  = quat.Number{Real: 0.7071068, Imag: -0.7071068}
)

// ConvertSpace converts a position/rotation pair between coordinate systems.
// WebXRToHost maps position (x,y,z) to (x,-z,y) and pre-multiplies the
// rotation by the basis rotation; HostToWebXR is its exact algebraic inverse.
// Keep returns the pose untouched.
func ConvertSpace(p r3.Vec, q quat.Number, dir Direction) (r3.Vec, quat.Number) {
	switch dir {
	case WebXRToHost:
		return r3.Vec{X: p.X, Y: -p.Z, Z: p.Y}, quat.Mul(basisRotation, q)
	case HostToWebXR:
		return r3.Vec{X: p.X, Y: p.Z, Z: -p.Y}, quat.Mul(basisInverse, q)
	default:
		return p, q
	}
}

// ApplyScale scales a position by factor on import, or divides by factor when
// invert is set (export). The factor must be positive; enforcing that is the
// caller's contract.
func ApplyScale(p r3.Vec, factor float64, invert bool) r3.Vec {
	if invert {
		return r3.Scale(1/factor, p)
	}
	return r3.Scale(factor, p)
}

// VecFromArray converts a host channel triple into a vector.
func VecFromArray(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

// VecToArray converts a vector back into a host channel triple.
func VecToArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// DeltaBasis is the pair of poses delta rebasing works against. It is
// captured once at the start of an import run and held immutable: the
// initial pose comes from the target camera before any keyframe is written,
// the first-frame pose from the clip's first frame in recorder space.
type DeltaBasis struct {
	InitialPosition    r3.Vec
	InitialRotation    quat.Number
	FirstFramePosition r3.Vec
	FirstFrameRotation quat.Number
}

// RebaseDelta re-expresses a converted pose relative to the basis so the
// animation plays back from the target's starting pose instead of the
// recorded absolute poses. The positional delta is rotated into the initial
// orientation only when a coordinate conversion is in effect; with dir Keep
// the raw delta is applied as-is. Delta rebasing is import-only.
func RebaseDelta(p r3.Vec, q quat.Number, basis DeltaBasis, dir Direction) (r3.Vec, quat.Number) {
	dq := quat.Mul(quat.Inv(basis.FirstFrameRotation), q)
	outQ := quat.Mul(basis.InitialRotation, dq)

	dp := r3.Sub(p, basis.FirstFramePosition)
	if dir != Keep {
		dp = r3.Rotation(basis.InitialRotation).Rotate(dp)
	}
	return r3.Add(basis.InitialPosition, dp), outQ
}
