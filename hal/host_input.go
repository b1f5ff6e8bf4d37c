//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var hostKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyW, KeyW},
	{ebiten.KeyA, KeyA},
	{ebiten.KeyS, KeyS},
	{ebiten.KeyD, KeyD},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyShiftLeft, KeyShift},
	{ebiten.KeyShiftRight, KeyShift},
	{ebiten.Key1, Key1},
	{ebiten.Key2, Key2},
	{ebiten.Key3, Key3},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyC, KeyC},
	{ebiten.KeyR, KeyR},
	{ebiten.KeyEscape, KeyEscape},
}

type hostInput struct {
	ch chan Event

	dragging     bool
	lastX, lastY int
}

func newHostInput() *hostInput {
	return &hostInput{ch: make(chan Event, 256)}
}

func (in *hostInput) Events() <-chan Event { return in.ch }

func (in *hostInput) emit(ev Event) {
	select {
	case in.ch <- ev:
	default:
	}
}

func (in *hostInput) poll() {
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if in.dragging && (x != in.lastX || y != in.lastY) {
			in.emit(Event{Kind: EventDrag, DX: float64(x - in.lastX), DY: float64(y - in.lastY)})
		}
		in.dragging = true
	} else {
		in.dragging = false
	}
	in.lastX, in.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		in.emit(Event{Kind: EventWheel, Steps: wy, X: float64(x), Y: float64(y)})
	}

	for _, k := range hostKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			in.emit(Event{Kind: EventKey, Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			in.emit(Event{Kind: EventKey, Code: k.code, Press: false})
		}
	}
}
