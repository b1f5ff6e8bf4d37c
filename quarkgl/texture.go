package quarkgl

import (
	"image"
	"sync/atomic"
)

// Texture is a decoded image sampled as a repeating pattern by filled faces.
type Texture struct {
	Name string
	Img  image.Image
}

// At samples the texture at pixel (x, y), wrapping in both directions.
func (t *Texture) At(x, y int) Color {
	if t == nil || t.Img == nil {
		return Color{}
	}
	b := t.Img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Color{}
	}
	x %= w
	if x < 0 {
		x += w
	}
	y %= h
	if y < 0 {
		y += h
	}
	return ColorFrom(t.Img.At(b.Min.X+x, b.Min.Y+y))
}

// TextureSlot holds an optional texture that may be replaced from another goroutine.
type TextureSlot struct {
	p atomic.Pointer[Texture]
}

// Load returns the current texture or nil.
func (s *TextureSlot) Load() *Texture { return s.p.Load() }

// Store publishes t. A nil t unbinds the texture.
func (s *TextureSlot) Store(t *Texture) { s.p.Store(t) }
