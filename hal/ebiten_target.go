//go:build cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"quarkview/quarkgl"
)

// ebitenTarget draws on the ebiten screen image.
type ebitenTarget struct {
	dst *ebiten.Image

	// white is the inner pixel of a white 3×3 image, the source of solid triangles.
	// It is created on the first solid fill.
	white *ebiten.Image

	vs []ebiten.Vertex
	is []uint16

	tex    *quarkgl.Texture
	texImg *ebiten.Image
}

var _ quarkgl.Target = (*ebitenTarget)(nil)

func (t *ebitenTarget) Size() (int, int) {
	b := t.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (t *ebitenTarget) Clear(c quarkgl.Color) { t.dst.Fill(c.NRGBA()) }

func (t *ebitenTarget) SetPixel(x, y int, c quarkgl.Color) {
	if c.A == 0xff {
		t.dst.Set(x, y, c.NRGBA())
		return
	}
	vector.DrawFilledRect(t.dst, float32(x), float32(y), 1, 1, c.NRGBA(), false)
}

func (t *ebitenTarget) FillRect(x, y, w, h float32, c quarkgl.Color) {
	vector.DrawFilledRect(t.dst, x, y, w, h, c.NRGBA(), false)
}

func (t *ebitenTarget) StrokeLine(x0, y0, x1, y1, width float32, c quarkgl.Color) {
	vector.StrokeLine(t.dst, x0, y0, x1, y1, width, c.NRGBA(), true)
}

func (t *ebitenTarget) FillPolygon(pts []quarkgl.Point, p quarkgl.Paint) {
	if len(pts) < 3 {
		return
	}
	path := polygonPath(pts)
	t.vs, t.is = path.AppendVerticesAndIndicesForFilling(t.vs[:0], t.is[:0])

	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.EvenOdd, AntiAlias: true}
	if p.Texture != nil && p.Texture.Img != nil {
		src := t.textureImage(p.Texture)
		for i := range t.vs {
			v := &t.vs[i]
			v.SrcX, v.SrcY = v.DstX, v.DstY
			v.ColorR, v.ColorG, v.ColorB, v.ColorA = 1, 1, 1, 1
		}
		op.Address = ebiten.AddressRepeat
		t.dst.DrawTriangles(t.vs, t.is, src, op)
		return
	}
	t.paint(p.Color)
	t.dst.DrawTriangles(t.vs, t.is, t.whiteSource(), op)
}

func (t *ebitenTarget) StrokePolygon(pts []quarkgl.Point, width float32, c quarkgl.Color) {
	if len(pts) < 2 {
		return
	}
	path := polygonPath(pts)
	sop := &vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinMiter, MiterLimit: 4}
	t.vs, t.is = path.AppendVerticesAndIndicesForStroke(t.vs[:0], t.is[:0], sop)
	t.paint(c)
	t.dst.DrawTriangles(t.vs, t.is, t.whiteSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (t *ebitenTarget) whiteSource() *ebiten.Image {
	if t.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(quarkgl.RGB(0xff, 0xff, 0xff).NRGBA())
		t.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return t.white
}

func polygonPath(pts []quarkgl.Point) *vector.Path {
	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}
	path.Close()
	return &path
}

// paint colors every pending vertex with c, sampling the white image.
func (t *ebitenTarget) paint(c quarkgl.Color) {
	r := float32(c.R) / 0xff
	g := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	a := float32(c.A) / 0xff
	for i := range t.vs {
		v := &t.vs[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
}

// textureImage uploads tex once and keeps it until another texture is bound.
func (t *ebitenTarget) textureImage(tex *quarkgl.Texture) *ebiten.Image {
	if t.tex == tex && t.texImg != nil {
		return t.texImg
	}
	if t.texImg != nil {
		t.texImg.Deallocate()
	}
	t.tex = tex
	t.texImg = ebiten.NewImageFromImage(tex.Img)
	return t.texImg
}
