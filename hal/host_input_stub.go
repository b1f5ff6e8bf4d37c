//go:build !cgo

package hal

type hostInput struct {
	ch chan Event
}

func newHostInput() *hostInput {
	return &hostInput{ch: make(chan Event, 256)}
}

func (in *hostInput) Events() <-chan Event { return in.ch }

func (in *hostInput) poll() {
	// No input support without the window backend.
}
