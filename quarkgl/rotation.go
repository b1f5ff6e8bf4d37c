package quarkgl

import "github.com/go-gl/mathgl/mgl64"

// Rotation is anything that can report its orientation both ways.
type Rotation interface {
	Quat() mgl64.Quat
	EulerDegrees() mgl64.Vec3
}

// EulerRotation holds one angle per axis, in radians.
type EulerRotation struct {
	X, Y, Z float64
}

// Quat returns the quaternion that rotates like the Z, Y, X sequence of TransformVertex.
func (e EulerRotation) Quat() mgl64.Quat {
	qx := QuatFromAxisAngle(mgl64.Vec3{1, 0, 0}, e.X)
	// RotateAroundY turns the other way round.
	qy := QuatFromAxisAngle(mgl64.Vec3{0, 1, 0}, -e.Y)
	qz := QuatFromAxisAngle(mgl64.Vec3{0, 0, 1}, e.Z)
	return QuatMul(qx, QuatMul(qy, qz))
}

// EulerDegrees returns the stored angles converted to degrees, without wrapping.
func (e EulerRotation) EulerDegrees() mgl64.Vec3 {
	return mgl64.Vec3{mgl64.RadToDeg(e.X), mgl64.RadToDeg(e.Y), mgl64.RadToDeg(e.Z)}
}

func (e EulerRotation) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return e.X
	case AxisY:
		return e.Y
	default:
		return e.Z
	}
}

func (e *EulerRotation) Set(a Axis, rad float64) {
	switch a {
	case AxisX:
		e.X = rad
	case AxisY:
		e.Y = rad
	default:
		e.Z = rad
	}
}

// QuatRotation adapts a plain quaternion to Rotation.
type QuatRotation mgl64.Quat

func (q QuatRotation) Quat() mgl64.Quat { return mgl64.Quat(q) }

func (q QuatRotation) EulerDegrees() mgl64.Vec3 { return ToEulerDegrees(mgl64.Quat(q)) }
