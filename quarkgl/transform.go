package quarkgl

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis selects one component of a vector.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a names one of the three axes.
func (a Axis) Valid() bool { return a <= AxisZ }

// ObjectTransform is the per-object placement applied by TransformVertex.
type ObjectTransform struct {
	Position mgl64.Vec3
	Rotation EulerRotation
	Scale    mgl64.Vec3
}

// IdentityTransform leaves vertices unchanged.
func IdentityTransform() ObjectTransform {
	return ObjectTransform{Scale: mgl64.Vec3{1, 1, 1}}
}

// TransformVertex maps a model-space vertex to world space.
//
// The order is scale, rotate Z, rotate Y, rotate X, translate. It is not configurable.
func TransformVertex(v mgl64.Vec3, t ObjectTransform) mgl64.Vec3 {
	v = Scale(v, t.Scale)
	v = RotateAroundZ(v, t.Rotation.Z)
	v = RotateAroundY(v, t.Rotation.Y)
	v = RotateAroundX(v, t.Rotation.X)
	return Translate(v, t.Position)
}

func Scale(v, s mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0] * s[0], v[1] * s[1], v[2] * s[2]}
}

// Translate adds d to v. Each delta is first rounded to 10 decimal digits.
func Translate(v, d mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		v[0] + round10(d[0]),
		v[1] + round10(d[1]),
		v[2] + round10(d[2]),
	}
}

func round10(f float64) float64 {
	const p = 1e10
	r := math.Round(f*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return f
	}
	return r
}

// RotateAroundX rotates v in the Y/Z plane.
func RotateAroundX(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return mgl64.Vec3{v[0], v[1]*c - v[2]*s, v[1]*s + v[2]*c}
}

// RotateAroundY rotates v in the X/Z plane.
//
// Positive angles turn +X towards +Z, the opposite sense of a right-handed Y rotation.
func RotateAroundY(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return mgl64.Vec3{v[0]*c - v[2]*s, v[1], v[0]*s + v[2]*c}
}

// RotateAroundZ rotates v in the X/Y plane.
func RotateAroundZ(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return mgl64.Vec3{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
}
