package quarkgl

import "math"

const (
	defaultGridStep = 50
	minGridStep     = 4
)

// Grid is the screen-space background grid. It only follows input loosely to give a
// sense of motion; it is not projected.
type Grid struct {
	OffsetX, OffsetY float64
	Step             float64
}

func NewGrid() Grid { return Grid{Step: defaultGridStep} }

// Drag shifts the grid against the drag direction.
func (g *Grid) Drag(dx, dy float64) {
	g.OffsetX -= dx
	g.OffsetY -= dy
}

// Zoom widens the grid when moving forward and narrows it when moving back.
func (g *Grid) Zoom(steps float64) {
	if steps > 0 {
		g.Step += ZoomStep
		g.OffsetX--
		g.OffsetY--
	} else if steps < 0 {
		g.Step -= ZoomStep
		g.OffsetX++
		g.OffsetY++
	}
	g.clamp()
}

// Move follows a keyboard movement of the camera.
func (g *Grid) Move(dir MoveDirection, speed, dt float64) {
	step := speed * dt
	switch dir {
	case MoveLeft:
		g.OffsetX += 100 * dt
	case MoveRight:
		g.OffsetX -= 100 * dt
	case MoveForward:
		g.Step += step / 1.5
		g.OffsetX -= step * 10
		g.OffsetY -= step * 10
	case MoveBackward:
		g.Step -= step / 1.5
		g.OffsetX += step * 10
		g.OffsetY += step * 10
	}
	g.clamp()
}

func (g *Grid) clamp() {
	if g.Step < minGridStep || math.IsNaN(g.Step) {
		g.Step = minGridStep
	}
}

// Lines calls fn with the position of every vertical (vertical=true) and horizontal
// line inside a w×h surface.
func (g Grid) Lines(w, h float64, fn func(pos float64, vertical bool)) {
	step := g.Step
	if step < minGridStep || math.IsNaN(step) {
		step = minGridStep
	}
	for x := start(g.OffsetX, step); x < w; x += step {
		fn(x, true)
	}
	for y := start(g.OffsetY, step); y < h; y += step {
		fn(y, false)
	}
}

func start(offset, step float64) float64 {
	s := math.Mod(offset, step)
	if s < 0 {
		s += step
	}
	return s
}
