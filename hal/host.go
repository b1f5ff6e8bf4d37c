package hal

import (
	"fmt"
	"io"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	in     *hostInput
	t      *hostTime
}

func newHost(w io.Writer) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: w},
		in:     newHostInput(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Input() Input   { return h.in }
func (h *hostHAL) Clock() Clock   { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger that writes whole lines to w. It is safe for concurrent use.
func NewLogger(w io.Writer) Logger { return &hostLogger{w: w} }

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
