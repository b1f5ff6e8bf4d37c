package quarkgl

import (
	"fmt"
	"strings"
)

// Point is a screen position in pixels.
type Point struct {
	X, Y float32
}

// Paint describes how a polygon is filled. A non-nil Texture wins over Color.
type Paint struct {
	Color   Color
	Texture *Texture
}

// Target is a 2D drawing surface. These are the only primitives the renderer uses.
//
// Implementations clip out-of-bounds drawing.
type Target interface {
	Size() (w, h int)
	Clear(c Color)
	SetPixel(x, y int, c Color)
	FillRect(x, y, w, h float32, c Color)
	StrokeLine(x0, y0, x1, y1, width float32, c Color)
	// FillPolygon fills a closed polygon. Textures repeat in screen space,
	// anchored at the surface origin.
	FillPolygon(pts []Point, p Paint)
	StrokePolygon(pts []Point, width float32, c Color)
}

// RenderMode selects the drawing strategy.
type RenderMode uint8

const (
	RenderPoints RenderMode = iota
	RenderWireframe
	RenderFilled
)

func (m RenderMode) String() string {
	switch m {
	case RenderPoints:
		return "points"
	case RenderWireframe:
		return "wireframe"
	case RenderFilled:
		return "filled"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseRenderMode accepts the names returned by String. "vertices" is an alias of points.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "points", "vertices":
		return RenderPoints, nil
	case "wireframe", "wire":
		return RenderWireframe, nil
	case "filled", "fill":
		return RenderFilled, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", s)
	}
}
