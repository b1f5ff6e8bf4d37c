package quarkgl

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// HSLA builds a color from hue in degrees and saturation, lightness and alpha in 0..1.
func HSLA(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{
		R: unit8(r + m),
		G: unit8(g + m),
		B: unit8(b + m),
		A: unit8(a),
	}
}

// ColorFrom converts any image color to a straight-alpha Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA returns c as an image/color value.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// RGBA8 returns c as the non-premultiplied color.RGBA expected by tinyfont.
func (c Color) RGBA8() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Over blends c on top of dst.
func (c Color) Over(dst Color) Color {
	if c.A == 0xFF {
		return c
	}
	if c.A == 0 {
		return dst
	}
	a := uint32(c.A)
	ia := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia + 127) / 255)
	}
	outA := a + uint32(dst.A)*ia/255
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: uint8(outA)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
