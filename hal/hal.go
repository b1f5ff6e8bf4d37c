package hal

import (
	"errors"
	"time"

	"quarkview/quarkgl"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// DefaultTPS is the tick rate of the animation and render loop.
const DefaultTPS = 90

// ErrQuit is returned by App.Update to end the run loop without an error.
var ErrQuit = errors.New("quit")

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShift
	Key1
	Key2
	Key3
	KeyTab
	KeyDelete
	KeyC
	KeyR
	KeyEscape
)

// EventKind tells which fields of an Event are set.
type EventKind uint8

const (
	// EventKey carries Code and Press.
	EventKey EventKind = iota + 1
	// EventDrag carries DX and DY, the cursor movement in pixels while the button is held.
	EventDrag
	// EventWheel carries Steps (positive away from the user) and the cursor X and Y.
	EventWheel
)

// Event is one input event.
type Event struct {
	Kind EventKind

	Code  KeyCode
	Press bool

	DX, DY float64

	Steps float64
	X, Y  float64
}

// Input provides input events (best-effort on each platform).
type Input interface {
	Events() <-chan Event
}

// Clock measures frame time.
type Clock interface {
	// Delta is the time between the two most recent frames.
	Delta() time.Duration
	// Frames is the number of frames stepped so far.
	Frames() uint64
}

// Host is the only contact point between the viewer and the outside world.
type Host interface {
	Logger() Logger
	Input() Input
	Clock() Clock
}

// App is driven by a run loop: Update once per tick, then Draw.
type App interface {
	Update() error
	Draw(t quarkgl.Target)
}

// NewAppFunc builds the application once the host exists.
type NewAppFunc func(Host) (App, error)
