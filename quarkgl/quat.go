package quarkgl

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuatFromAxisAngle returns the rotation of angle radians around axis.
//
// The axis must already be unit length.
func QuatFromAxisAngle(axis mgl64.Vec3, angle float64) mgl64.Quat {
	half := angle * 0.5
	s := math.Sin(half)
	return mgl64.Quat{W: math.Cos(half), V: axis.Mul(s)}
}

// QuatMul returns the Hamilton product a*b. Rotating a vector by the result
// applies b first, then a.
func QuatMul(a, b mgl64.Quat) mgl64.Quat { return a.Mul(b) }

// QuatInverse returns the conjugate of q. It is the inverse only for unit quaternions.
func QuatInverse(q mgl64.Quat) mgl64.Quat { return q.Conjugate() }

// RotateVector rotates v by q as q * (v, 0) * q⁻¹.
func RotateVector(v mgl64.Vec3, q mgl64.Quat) mgl64.Vec3 {
	p := mgl64.Quat{W: 0, V: v}
	return QuatMul(QuatMul(q, p), QuatInverse(q)).V
}

// Renormalize returns q scaled back to unit length. A zero quaternion becomes the identity.
func Renormalize(q mgl64.Quat) mgl64.Quat {
	l := math.Sqrt(q.W*q.W + q.V.Dot(q.V))
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.QuatIdent()
	}
	return mgl64.Quat{W: q.W / l, V: q.V.Mul(1 / l)}
}

// ToEulerDegrees converts q to roll (X), pitch (Y) and yaw (Z) in degrees, each in [0, 360).
func ToEulerDegrees(q mgl64.Quat) mgl64.Vec3 {
	q = Renormalize(q)
	x, y, z, w := q.V.X(), q.V.Y(), q.V.Z(), q.W

	sinrCosp := 2 * (w*x + y*z)
	cosrCosp := 1 - 2*(x*x+y*y)
	roll := math.Atan2(sinrCosp, cosrCosp)

	// Gimbal lock: asin saturates at ±1.
	sinp := 2 * (w*y - z*x)
	var pitch float64
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	sinyCosp := 2 * (w*z + x*y)
	cosyCosp := 1 - 2*(y*y+z*z)
	yaw := math.Atan2(sinyCosp, cosyCosp)

	return mgl64.Vec3{
		wrap360(mgl64.RadToDeg(roll)),
		wrap360(mgl64.RadToDeg(pitch)),
		wrap360(mgl64.RadToDeg(yaw)),
	}
}

func wrap360(deg float64) float64 {
	deg = math.Mod(deg+360, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}
