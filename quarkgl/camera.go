package quarkgl

import "github.com/go-gl/mathgl/mgl64"

const (
	// DragSensitivity converts dragged pixels to radians.
	DragSensitivity = 0.004
	// ZoomStep is the distance travelled per wheel step.
	ZoomStep = 0.1
	// DefaultMoveSpeed is the keyboard speed in world units per second.
	DefaultMoveSpeed = 2.0
	// BoostFactor multiplies the keyboard speed while boost is on.
	BoostFactor = 2.0
)

var (
	worldUp       = mgl64.Vec3{0, 1, 0}
	localRight    = mgl64.Vec3{1, 0, 0}
	basisForward  = mgl64.Vec3{0, 0, 1}
	basisSideward = mgl64.Vec3{1, 0, 0}
)

// MoveDirection is a keyboard movement request.
type MoveDirection uint8

const (
	MoveForward MoveDirection = iota
	MoveBackward
	MoveLeft
	MoveRight
)

// Camera is a free-flying camera looking down its local +Z axis.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat

	BaseSpeed float64
	Boost     bool
}

// NewCamera returns the start camera: two units behind the origin, looking at it.
func NewCamera() Camera {
	return Camera{
		Position:  mgl64.Vec3{0, 0, -2},
		Rotation:  mgl64.QuatIdent(),
		BaseSpeed: DefaultMoveSpeed,
	}
}

// ViewTransform moves a world-space point into camera space.
func (c *Camera) ViewTransform(p mgl64.Vec3) mgl64.Vec3 {
	return RotateVector(p.Sub(c.Position), QuatInverse(c.Rotation))
}

// Drag turns the camera by a mouse drag in pixels.
//
// Yaw is applied around the world up axis (left multiply), pitch around the camera's own
// right axis (right multiply).
func (c *Camera) Drag(dx, dy float64) {
	yaw := QuatFromAxisAngle(worldUp, dx*DragSensitivity)
	pitch := QuatFromAxisAngle(localRight, dy*DragSensitivity)
	c.Rotation = QuatMul(yaw, c.Rotation)
	c.Rotation = QuatMul(c.Rotation, pitch)
	c.Rotation = Renormalize(c.Rotation)
}

// Zoom moves the camera along the ray through ndc. Positive steps move forward.
func (c *Camera) Zoom(steps float64, ndc mgl64.Vec2) {
	if steps == 0 {
		return
	}
	dir := mgl64.Vec3{ndc.X(), ndc.Y(), 1}.Normalize()
	ray := RotateVector(dir, c.Rotation)
	delta := ZoomStep
	if steps < 0 {
		delta = -ZoomStep
	}
	c.Position = c.Position.Add(ray.Mul(delta))
}

// Forward is the camera's +Z axis in world space.
func (c *Camera) Forward() mgl64.Vec3 { return RotateVector(basisForward, c.Rotation) }

// Sideward is the camera's +X axis in world space.
func (c *Camera) Sideward() mgl64.Vec3 { return RotateVector(basisSideward, c.Rotation) }

// Speed is the current keyboard speed in units per second.
func (c *Camera) Speed() float64 {
	s := c.BaseSpeed
	if s == 0 {
		s = DefaultMoveSpeed
	}
	if c.Boost {
		s *= BoostFactor
	}
	return s
}

// ToggleBoost flips the boost state. Hosts call it on key press, not while held.
func (c *Camera) ToggleBoost() { c.Boost = !c.Boost }

// Move steps the camera for one held direction key over dt seconds.
func (c *Camera) Move(dir MoveDirection, dt float64) {
	step := c.Speed() * dt
	switch dir {
	case MoveForward:
		c.Position = c.Position.Add(c.Forward().Mul(step))
	case MoveBackward:
		c.Position = c.Position.Sub(c.Forward().Mul(step))
	case MoveLeft:
		c.Position = c.Position.Sub(c.Sideward().Mul(step))
	case MoveRight:
		c.Position = c.Position.Add(c.Sideward().Mul(step))
	}
}

// Reset restores the start position and orientation, keeping speed settings.
func (c *Camera) Reset() {
	n := NewCamera()
	c.Position = n.Position
	c.Rotation = n.Rotation
}
