package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"quarkview/hal"
)

// runGuarded runs fn and turns a panic into an error after logging the stack, so a
// faulty console command does not take the window down.
func runGuarded(l hal.Logger, name string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if l != nil {
			l.WriteLineString(fmt.Sprintf("viewer panic: command=%s panic=%v", name, r))
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}
		err = fmt.Errorf("%s: panic: %v", name, r)
	}()
	return fn()
}
