// Package quat provides the unit-quaternion algebra used across armature.
//
// All rotations follow the Hamilton convention: Mul(q1, q2) composes
// rotations so that applying the product equals applying q2 first, then q1,
// and RotateVec computes the sandwich product q * (0,v) * conj(q). The two
// stay mutually consistent, so RotateVec(v, Mul(q1, q2)) equals
// RotateVec(RotateVec(v, q2), q1).
//
// Array interchange order is (w, x, y, z), the scalar part first, matching
// common physics file formats.
//
// Inputs are assumed unit-norm. None of these functions normalize or check
// their arguments; feeding non-unit quaternions is a caller error.
//
// References:
//   - Kuipers: "Quaternions and Rotation Sequences" (1999)
package quat

import "github.com/go-gl/mathgl/mgl64"

// Ident returns the identity rotation.
func Ident() mgl64.Quat {
	return mgl64.QuatIdent()
}

// Conj returns the conjugate of q: the vector part negated, the scalar part
// kept. For a unit quaternion this represents the inverse rotation.
func Conj(q mgl64.Quat) mgl64.Quat {
	return q.Conjugate()
}

// Reciprocal returns the rotation inverse of q: the conjugate divided by the
// squared norm. For unit input this equals Conj; it keeps its own name
// because callers use it to mean "invert this rotation".
func Reciprocal(q mgl64.Quat) mgl64.Quat {
	return q.Inverse()
}

// Mul returns the Hamilton product of q1 and q2. Applying the product to a
// vector equals applying q2 first, then q1.
func Mul(q1, q2 mgl64.Quat) mgl64.Quat {
	return q1.Mul(q2)
}

// RotateVec rotates v by q via the sandwich product q * (0,v) * conj(q).
func RotateVec(v mgl64.Vec3, q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(v)
}

// FromWXYZ builds a quaternion from its (w, x, y, z) components.
func FromWXYZ(c [4]float64) mgl64.Quat {
	return mgl64.Quat{W: c[0], V: mgl64.Vec3{c[1], c[2], c[3]}}
}

// WXYZ returns the (w, x, y, z) components of q.
func WXYZ(q mgl64.Quat) [4]float64 {
	return [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()}
}
