package app

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

type cmdFunc func(v *Viewer, args []string) error

type command struct {
	Name    string
	Aliases []string
	Usage   string
	Desc    string
	Run     cmdFunc
}

// registry maps console words to commands. Names and aliases are matched
// case-insensitively.
type registry struct {
	cmds  []command
	index map[string]int
}

func newRegistry() *registry {
	return &registry{index: make(map[string]int)}
}

func commandKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// register adds cmd under its name and aliases. On error nothing is added.
func (r *registry) register(cmd command) error {
	cmd.Name = commandKey(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("console registry: empty command name")
	}
	if cmd.Run == nil {
		return fmt.Errorf("console registry: %q has no handler", cmd.Name)
	}

	keys := []string{cmd.Name}
	aliases := cmd.Aliases[:0:0]
	for _, a := range cmd.Aliases {
		if a = commandKey(a); a != "" {
			keys = append(keys, a)
			aliases = append(aliases, a)
		}
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, taken := r.index[k]; taken || seen[k] {
			return fmt.Errorf("console registry: %q is already taken", k)
		}
		seen[k] = true
	}

	cmd.Aliases = aliases
	r.cmds = append(r.cmds, cmd)
	for _, k := range keys {
		r.index[k] = len(r.cmds) - 1
	}
	return nil
}

func (r *registry) resolve(word string) (command, bool) {
	i, ok := r.index[commandKey(word)]
	if !ok {
		return command{}, false
	}
	return r.cmds[i], true
}

// names lists the primary names in registration order.
func (r *registry) names() []string {
	out := make([]string, len(r.cmds))
	for i, c := range r.cmds {
		out[i] = c.Name
	}
	return out
}
