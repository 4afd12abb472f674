package keymap

import (
	"strings"
	"unicode"

	"github.com/dshills/spiral/internal/input/key"
)

// Invocation is a command name with its raw, unparsed argument string.
type Invocation struct {
	Name string
	Args string
}

// NewInvocation splits a command line into name and raw arguments at
// the first run of whitespace.
func NewInvocation(line string) Invocation {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return Invocation{Name: line}
	}
	return Invocation{Name: line[:i], Args: strings.TrimSpace(line[i:])}
}

// String returns the invocation as a command line.
func (inv Invocation) String() string {
	if inv.Args == "" {
		return inv.Name
	}
	return inv.Name + " " + inv.Args
}

// Binding maps a key sequence in a mode to one or more invocations.
type Binding struct {
	// Keys is the chord that triggers the binding.
	Keys key.Sequence

	// Mode is the mode the binding belongs to; "" is the global scope.
	Mode string

	// Invocations run in order when the binding matches.
	Invocations []Invocation

	// Description is an optional human-readable description.
	Description string
}

// String returns a short description of the binding for listings.
func (b *Binding) String() string {
	cmds := make([]string, len(b.Invocations))
	for i, inv := range b.Invocations {
		cmds[i] = inv.String()
	}
	mode := b.Mode
	if mode == "" {
		mode = "*"
	}
	return mode + " " + b.Keys.String() + " -> " + strings.Join(cmds, "; ")
}

// clone returns a copy that shares no slices with b.
func (b *Binding) clone() *Binding {
	c := *b
	c.Keys = b.Keys.Clone()
	c.Invocations = append([]Invocation(nil), b.Invocations...)
	return &c
}
