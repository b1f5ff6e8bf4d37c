package quarkgl

import "github.com/go-gl/mathgl/mgl64"

// NearPlane is the smallest view-space depth that is drawn.
const NearPlane = 0.01

// NDCPoint is a perspective-divided point before screen mapping.
type NDCPoint struct {
	X, Y         float64
	ShouldRender bool
}

// ProjectedPoint is a vertex in screen pixels.
//
// When ShouldRender is false the coordinates were computed from a clamped depth and
// do not describe a visible position.
type ProjectedPoint struct {
	X, Y         float64
	ShouldRender bool
}

// Project performs the perspective divide of a view-space point.
func Project(p mgl64.Vec3) NDCPoint {
	z := p.Z()
	if z <= NearPlane {
		z = NearPlane
		return NDCPoint{X: p.X() / z, Y: p.Y() / z, ShouldRender: false}
	}
	return NDCPoint{X: p.X() / z, Y: p.Y() / z, ShouldRender: true}
}

// Viewport is the pixel size of the drawing surface.
type Viewport struct {
	Width, Height float64
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// ToScreen maps NDC to pixels. X is divided by the aspect ratio, Y is flipped.
func (v Viewport) ToScreen(x, y float64) (sx, sy float64) {
	sx = 0.5*v.Width*x/v.Aspect() + 0.5*v.Width
	sy = 0.5 * v.Height * (1 - y)
	return sx, sy
}

// ProjectToScreen runs Project and ToScreen on a view-space point.
func (v Viewport) ProjectToScreen(view mgl64.Vec3) ProjectedPoint {
	n := Project(view)
	sx, sy := v.ToScreen(n.X, n.Y)
	return ProjectedPoint{X: sx, Y: sy, ShouldRender: n.ShouldRender}
}

// CursorNDC inverts ToScreen for a cursor position, so that a ray through the
// result hits the pixel under the cursor.
func (v Viewport) CursorNDC(px, py float64) mgl64.Vec2 {
	if v.Width == 0 || v.Height == 0 {
		return mgl64.Vec2{}
	}
	x := (px/v.Width*2 - 1) * v.Aspect()
	y := 1 - py/v.Height*2
	return mgl64.Vec2{x, y}
}
