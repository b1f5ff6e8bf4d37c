package quarkgl

import (
	"image"
	"math"
)

// RGBATarget rasterizes into an in-memory RGBA image.
//
// It needs no window or GPU and backs headless runs and snapshots.
type RGBATarget struct {
	Img *image.NRGBA
}

// NewRGBATarget allocates a w×h target.
func NewRGBATarget(w, h int) *RGBATarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBATarget{Img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Img == nil {
		return
	}
	pix := t.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// SetPixel blends c over the pixel at (x, y).
func (t *RGBATarget) SetPixel(x, y int, c Color) {
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	off := t.Img.PixOffset(x, y)
	p := t.Img.Pix[off : off+4 : off+4]
	dst := Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	out := c.Over(dst)
	p[0], p[1], p[2], p[3] = out.R, out.G, out.B, out.A
}

// At returns the pixel at (x, y).
func (t *RGBATarget) At(x, y int) Color {
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return Color{}
	}
	off := t.Img.PixOffset(x, y)
	p := t.Img.Pix[off : off+4 : off+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (t *RGBATarget) FillRect(x, y, w, h float32, c Color) {
	x0, y0 := roundPx(x), roundPx(y)
	x1, y1 := roundPx(x+w), roundPx(y+h)
	tw, th := t.Size()
	x0, y0 = clampInt(x0, 0, tw), clampInt(y0, 0, th)
	x1, y1 = clampInt(x1, 0, tw), clampInt(y1, 0, th)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			t.SetPixel(px, py, c)
		}
	}
}

// StrokeLine draws a Bresenham line; widths above one stamp a square brush.
func (t *RGBATarget) StrokeLine(x0, y0, x1, y1, width float32, c Color) {
	if !finite32(x0, y0, x1, y1) {
		return
	}
	brush := int(width + 0.5)
	if brush < 1 {
		brush = 1
	}
	lo := -(brush - 1) / 2
	hi := lo + brush

	tw, th := t.Size()
	if tw == 0 || th == 0 {
		return
	}
	m := float64(brush)
	ax, ay, bx, by, ok := clipSegment(float64(x0), float64(y0), float64(x1), float64(y1),
		-m, -m, float64(tw)+m, float64(th)+m)
	if !ok {
		return
	}
	ix0, iy0 := roundPx64(ax), roundPx64(ay)
	ix1, iy1 := roundPx64(bx), roundPx64(by)

	dx := absInt(ix1 - ix0)
	sx := -1
	if ix0 < ix1 {
		sx = 1
	}
	dy := -absInt(iy1 - iy0)
	sy := -1
	if iy0 < iy1 {
		sy = 1
	}
	err := dx + dy
	for {
		for by := lo; by < hi; by++ {
			for bx := lo; bx < hi; bx++ {
				t.SetPixel(ix0+bx, iy0+by, c)
			}
		}
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

func (t *RGBATarget) StrokePolygon(pts []Point, width float32, c Color) {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		t.StrokeLine(a.X, a.Y, b.X, b.Y, width, c)
	}
}

// FillPolygon fills pts with the even-odd rule, sampling pixel centres.
func (t *RGBATarget) FillPolygon(pts []Point, p Paint) {
	if len(pts) < 3 {
		return
	}
	tw, th := t.Size()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, q := range pts {
		if !finite32(q.X, q.Y) {
			return
		}
		minX, maxX = math.Min(minX, float64(q.X)), math.Max(maxX, float64(q.X))
		minY, maxY = math.Min(minY, float64(q.Y)), math.Max(maxY, float64(q.Y))
	}
	y0 := clampInt(int(math.Floor(minY)), 0, th)
	y1 := clampInt(int(math.Ceil(maxY)), 0, th)
	xLo := clampInt(int(math.Floor(minX)), 0, tw)
	xHi := clampInt(int(math.Ceil(maxX)), 0, tw)
	if y0 >= y1 || xLo >= xHi {
		return
	}

	var xs []float64
	for y := y0; y < y1; y++ {
		cy := float64(y) + 0.5
		xs = scanlineCrossings(xs[:0], pts, cy)
		for i := 0; i+1 < len(xs); i += 2 {
			from := clampInt(int(math.Ceil(xs[i]-0.5)), xLo, xHi)
			to := clampInt(int(math.Ceil(xs[i+1]-0.5)), xLo, xHi)
			for x := from; x < to; x++ {
				c := p.Color
				if p.Texture != nil {
					c = p.Texture.At(x, y)
				}
				t.SetPixel(x, y, c)
			}
		}
	}
}

// scanlineCrossings appends the sorted x positions where the polygon edges cross y.
func scanlineCrossings(xs []float64, pts []Point, y float64) []float64 {
	n := len(pts)
	for i := 0; i < n; i++ {
		ax, ay := float64(pts[i].X), float64(pts[i].Y)
		bx, by := float64(pts[(i+1)%n].X), float64(pts[(i+1)%n].Y)
		if (ay <= y && by > y) || (by <= y && ay > y) {
			xs = append(xs, ax+(y-ay)*(bx-ax)/(by-ay))
		}
	}
	// Insertion sort: polygons here have a handful of edges.
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
	return xs
}

// clipSegment clips the segment to the rectangle [xmin,xmax]×[ymin,ymax] (Liang-Barsky).
// It reports false when nothing of the segment lies inside.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (ax, ay, bx, by float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func roundPx(v float32) int { return roundPx64(float64(v)) }

func roundPx64(v float64) int { return int(math.Floor(v + 0.5)) }

func finite32(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
