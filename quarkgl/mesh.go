package quarkgl

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrFaceIndexOutOfRange = errors.New("face index out of range")

// Mesh is a polygon mesh. Each face is an ordered list of indices into Vertices.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][]int
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Size returns the extent along each axis.
func (b AABB) Size() mgl64.Vec3 { return b.Max.Sub(b.Min) }

// Bounds returns the bounding box of vertices. ok is false when there are none.
func Bounds(vertices []mgl64.Vec3) (box AABB, ok bool) {
	if len(vertices) == 0 {
		return AABB{}, false
	}
	inf := math.Inf(1)
	box = AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			box.Min[i] = math.Min(box.Min[i], v[i])
			box.Max[i] = math.Max(box.Max[i], v[i])
		}
	}
	return box, true
}

// Validate checks that every face index points at a vertex.
func (m Mesh) Validate() error {
	n := len(m.Vertices)
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d of %d vertices: %w", fi, idx, n, ErrFaceIndexOutOfRange)
			}
		}
	}
	return nil
}

// NormalizeMesh moves the bounding box centre to the origin and scales uniformly so
// the largest box dimension becomes 2. A flat-to-a-point mesh is only recentred.
// Vertices are updated in place.
func NormalizeMesh(vertices []mgl64.Vec3) {
	box, ok := Bounds(vertices)
	if !ok {
		return
	}
	pivot := box.Center()
	size := box.Size()
	maxSize := math.Max(size[0], math.Max(size[1], size[2]))

	factor := 1.0
	if maxSize > 0 {
		factor = 2 / maxSize
	}
	for i, v := range vertices {
		vertices[i] = v.Sub(pivot).Mul(factor)
	}
}

// NewCube returns the built-in unit cube primitive.
func NewCube() Mesh {
	return Mesh{
		Vertices: []mgl64.Vec3{
			{-0.5, -0.5, -0.5},
			{0.5, -0.5, -0.5},
			{0.5, 0.5, -0.5},
			{-0.5, 0.5, -0.5},
			{-0.5, -0.5, 0.5},
			{0.5, -0.5, 0.5},
			{0.5, 0.5, 0.5},
			{-0.5, 0.5, 0.5},
		},
		Faces: [][]int{
			{0, 1, 2, 3},
			{4, 5, 6, 7},
			{0, 1, 5, 4},
			{3, 2, 6, 7},
			{1, 2, 6, 5},
			{0, 3, 7, 4},
		},
	}
}
