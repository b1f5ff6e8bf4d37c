package quarkgl

import "github.com/go-gl/mathgl/mgl64"

// FacePolicy decides when a filled face with vertices behind the near plane is drawn.
type FacePolicy uint8

const (
	// FaceAnyVisible draws a face unless every vertex is behind the near plane.
	FaceAnyVisible FacePolicy = iota
	// FaceAllVisible drops a face as soon as one vertex is behind the near plane.
	FaceAllVisible
)

// EdgePolicy decides when a wireframe edge with an endpoint behind the near plane is drawn.
type EdgePolicy uint8

const (
	// EdgeAnyVisible keeps partially visible edges.
	EdgeAnyVisible EdgePolicy = iota
	// EdgeBothVisible needs both endpoints in front of the near plane.
	EdgeBothVisible
)

const (
	defaultBaseHue = 220
	defaultHueStep = 15
)

// Renderer draws a Scene through a Target.
//
// Create it once and reuse it; the projection buffers are kept between frames.
type Renderer struct {
	ClearColor Color
	GridColor  Color
	GridWidth  float32

	PointColor Color
	PointSize  float32

	WireColor Color
	WireWidth float32

	FaceStroke      Color
	FaceStrokeWidth float32
	FaceSaturation  float64
	FaceLightness   float64
	FaceAlpha       float64
	BaseHue         float64
	HueStep         float64

	Faces FacePolicy
	Edges EdgePolicy

	proj []ProjectedPoint
	pts  []Point
}

// NewRenderer returns a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{
		ClearColor: Hex(0x090a0d),
		GridColor:  Hex(0x1a1e29),
		GridWidth:  1,

		PointColor: Hex(0x800080),
		PointSize:  5,

		WireColor: Hex(0x6366f1),
		WireWidth: 2,

		FaceStroke:      Hex(0x818cf8),
		FaceStrokeWidth: 1,
		FaceSaturation:  0.7,
		FaceLightness:   0.6,
		FaceAlpha:       0.6,
		BaseHue:         defaultBaseHue,
		HueStep:         defaultHueStep,
	}
}

// FaceColor is the solid fill of face i.
func (r *Renderer) FaceColor(i int) Color {
	return HSLA(r.BaseHue+float64(i)*r.HueStep, r.FaceSaturation, r.FaceLightness, r.FaceAlpha)
}

// ProjectVertex runs the whole pipeline for one model-space vertex of o.
func ProjectVertex(v mgl64.Vec3, o *Object, cam *Camera, vp Viewport) ProjectedPoint {
	return vp.ProjectToScreen(cam.ViewTransform(TransformVertex(v, o.Transform)))
}

// Render draws the background grid and every object of s in s.Mode.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.renderBackground(t, s.Grid, w, h)
	if s.Empty() {
		return
	}

	vp := Viewport{Width: float64(w), Height: float64(h)}
	tex := s.Texture.Load()
	for _, o := range s.objects {
		r.projectObject(o, &s.Camera, vp)
		switch s.Mode {
		case RenderPoints:
			r.renderPoints(t)
		case RenderWireframe:
			r.renderWireframe(t, o)
		default:
			r.renderFilled(t, o, tex)
		}
	}
}

func (r *Renderer) renderBackground(t Target, g Grid, w, h int) {
	t.Clear(r.ClearColor)
	fw, fh := float32(w), float32(h)
	g.Lines(float64(w), float64(h), func(pos float64, vertical bool) {
		p := float32(pos)
		if vertical {
			t.StrokeLine(p, 0, p, fh, r.GridWidth, r.GridColor)
		} else {
			t.StrokeLine(0, p, fw, p, r.GridWidth, r.GridColor)
		}
	})
}

// projectObject fills r.proj with the screen position of every vertex of o.
func (r *Renderer) projectObject(o *Object, cam *Camera, vp Viewport) {
	n := len(o.Mesh.Vertices)
	if cap(r.proj) < n {
		r.proj = make([]ProjectedPoint, n)
	}
	r.proj = r.proj[:n]
	for i, v := range o.Mesh.Vertices {
		r.proj[i] = ProjectVertex(v, o, cam, vp)
	}
}

func (r *Renderer) renderPoints(t Target) {
	half := r.PointSize / 2
	for _, p := range r.proj {
		if !p.ShouldRender {
			continue
		}
		t.FillRect(float32(p.X)-half, float32(p.Y)-half, r.PointSize, r.PointSize, r.PointColor)
	}
}

func (r *Renderer) renderWireframe(t Target, o *Object) {
	for _, f := range o.Mesh.Faces {
		n := len(f)
		for i := 0; i < n; i++ {
			a := r.proj[f[i]]
			b := r.proj[f[(i+1)%n]]
			if !r.edgeVisible(a, b) {
				continue
			}
			t.StrokeLine(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), r.WireWidth, r.WireColor)
		}
	}
}

func (r *Renderer) edgeVisible(a, b ProjectedPoint) bool {
	if r.Edges == EdgeBothVisible {
		return a.ShouldRender && b.ShouldRender
	}
	return a.ShouldRender || b.ShouldRender
}

func (r *Renderer) renderFilled(t Target, o *Object, tex *Texture) {
	for i, f := range o.Mesh.Faces {
		if len(f) < 3 {
			continue
		}
		r.pts = r.pts[:0]
		visible := 0
		for _, idx := range f {
			p := r.proj[idx]
			if p.ShouldRender {
				visible++
			}
			r.pts = append(r.pts, Point{X: float32(p.X), Y: float32(p.Y)})
		}
		if !r.faceVisible(visible, len(f)) {
			continue
		}

		if tex != nil {
			t.FillPolygon(r.pts, Paint{Texture: tex})
			continue
		}
		t.StrokePolygon(r.pts, r.FaceStrokeWidth, r.FaceStroke)
		t.FillPolygon(r.pts, Paint{Color: r.FaceColor(i)})
	}
}

func (r *Renderer) faceVisible(visible, total int) bool {
	if r.Faces == FaceAllVisible {
		return visible == total
	}
	return visible > 0
}
