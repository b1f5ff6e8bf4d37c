package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
)

// StartConsole reads command lines from r on its own goroutine. Lines are split with
// shell quoting rules and handed to the tick goroutine, which runs them between frames.
func (v *Viewer) StartConsole(r io.Reader) {
	go v.readConsole(v.ctx, r)
}

func (v *Viewer) readConsole(ctx context.Context, r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shlex.Split(line)
		if err != nil {
			v.logf("console: %v", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		select {
		case v.lines <- args:
		case <-ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil {
		v.logf("console: read: %v", err)
	}
}

// Exec runs one console command synchronously on the calling goroutine.
func (v *Viewer) Exec(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := v.reg.resolve(args[0])
	if !ok {
		return fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, args[0])
	}
	return runGuarded(v.log, cmd.Name, func() error {
		return cmd.Run(v, args[1:])
	})
}

// ExecLine splits line like the console does and runs it.
func (v *Viewer) ExecLine(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	return v.Exec(args)
}
