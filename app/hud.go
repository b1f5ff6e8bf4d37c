package app

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"quarkview/quarkgl"
)

const (
	hudMargin     = 8
	hudLineHeight = 12
	hudBaseline   = 9
	hudPadding    = 4
)

var hudFont tinyfont.Fonter = &proggy.TinySZ8pt7b

var (
	hudText     = quarkgl.Hex(0xe0e7ff)
	hudNotice   = quarkgl.Hex(0xfbbf24)
	hudBackdrop = quarkgl.RGBA(0x09, 0x0a, 0x0d, 0xb0)
)

// hudDisplay lets tinyfont draw on a quarkgl.Target.
type hudDisplay struct {
	t quarkgl.Target
}

var _ drivers.Displayer = hudDisplay{}

func (d hudDisplay) Size() (x, y int16) {
	if d.t == nil {
		return 0, 0
	}
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d hudDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), quarkgl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d hudDisplay) Display() error { return nil }

// drawHUD writes the readout lines in the top-left corner, then the notice, if any,
// in its own color.
func drawHUD(t quarkgl.Target, lines []string, notice string) {
	if t == nil {
		return
	}
	rows := len(lines)
	if notice != "" {
		rows++
	}
	if rows == 0 {
		return
	}

	var maxW uint32
	for _, s := range lines {
		if _, w := tinyfont.LineWidth(hudFont, s); w > maxW {
			maxW = w
		}
	}
	if notice != "" {
		if _, w := tinyfont.LineWidth(hudFont, notice); w > maxW {
			maxW = w
		}
	}
	t.FillRect(hudMargin-hudPadding, hudMargin-hudPadding,
		float32(maxW)+2*hudPadding, float32(rows*hudLineHeight)+2*hudPadding, hudBackdrop)

	d := hudDisplay{t: t}
	y := int16(hudMargin + hudBaseline)
	for _, s := range lines {
		tinyfont.WriteLine(d, hudFont, hudMargin, y, s, hudText.RGBA8())
		y += hudLineHeight
	}
	if notice != "" {
		tinyfont.WriteLine(d, hudFont, hudMargin, y, notice, hudNotice.RGBA8())
	}
}
