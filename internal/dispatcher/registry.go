package dispatcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/spiral/internal/dispatcher/handler"
)

// Source tells where a command was defined.
type Source uint8

const (
	// SourceBuiltin marks a command implemented in Go.
	SourceBuiltin Source = iota
	// SourceScript marks a command registered by the config script.
	SourceScript
)

// String returns the source name.
func (s Source) String() string {
	if s == SourceScript {
		return "script"
	}
	return "builtin"
}

// Command is a named, described action.
type Command struct {
	Name        string
	Description string
	Source      Source
	Handler     handler.Handler
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]*Command

	// shadowed holds built-ins replaced by script commands.
	shadowed map[string]*Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		shadowed: make(map[string]*Command),
	}
}

// Register adds cmd, replacing any command with the same name. A built-in
// replaced by a script command comes back on ResetScripts.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" || strings.ContainsFunc(cmd.Name, isSpace) {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidCommand, cmd.Name)
	}
	if old, ok := r.commands[cmd.Name]; ok && old.Source == SourceBuiltin && cmd.Source == SourceScript {
		r.shadowed[cmd.Name] = old
	}
	if cmd.Source == SourceBuiltin {
		delete(r.shadowed, cmd.Name)
	}
	r.commands[cmd.Name] = &cmd
	return nil
}

// Unregister removes the command with name.
func (r *Registry) Unregister(name string) bool {
	if _, ok := r.commands[name]; !ok {
		return false
	}
	delete(r.commands, name)
	delete(r.shadowed, name)
	return true
}

// Lookup returns a copy of the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	if !ok {
		return Command{}, false
	}
	return *cmd, true
}

// Has returns true if a command is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns copies of all commands, sorted by name.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, name := range r.Names() {
		out = append(out, *r.commands[name])
	}
	return out
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	return len(r.commands)
}

// ResetScripts removes every script command and returns how many were
// removed. Built-ins are kept, and those a script replaced are restored.
func (r *Registry) ResetScripts() int {
	n := 0
	for name, cmd := range r.commands {
		if cmd.Source == SourceScript {
			delete(r.commands, name)
			n++
		}
	}
	for name, cmd := range r.shadowed {
		r.commands[name] = cmd
	}
	clear(r.shadowed)
	return n
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
