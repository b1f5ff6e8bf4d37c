package hal

import (
	"sync/atomic"
	"time"
)

// maxFrameDelta caps the measured delta so a stalled window does not teleport objects.
const maxFrameDelta = 250 * time.Millisecond

type hostTime struct {
	now func() time.Time

	last   time.Time
	delta  time.Duration
	frames atomic.Uint64
}

func newHostTime() *hostTime {
	return &hostTime{now: time.Now}
}

func (t *hostTime) Delta() time.Duration { return t.delta }

func (t *hostTime) Frames() uint64 { return t.frames.Load() }

// step records the start of a new frame.
func (t *hostTime) step() {
	now := t.now()
	t.frames.Add(1)
	if t.last.IsZero() {
		t.last = now
		t.delta = 0
		return
	}
	d := now.Sub(t.last)
	t.last = now
	if d < 0 {
		d = 0
	}
	if d > maxFrameDelta {
		d = maxFrameDelta
	}
	t.delta = d
}
