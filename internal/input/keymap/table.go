package keymap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/spiral/internal/input/key"
)

// GlobalMode is the scope whose bindings are visible in every mode.
const GlobalMode = ""

// Table holds the binding tries of every mode and the per-mode fallback
// commands.
type Table struct {
	modes     map[string]*PrefixTree
	fallbacks map[string]string
}

// NewTable creates an empty binding table.
func NewTable() *Table {
	return &Table{
		modes:     make(map[string]*PrefixTree),
		fallbacks: make(map[string]string),
	}
}

// Bind parses chord and binds it in mode to the given invocations.
// An existing binding on the same chord is replaced.
func (t *Table) Bind(chord, mode string, invs ...Invocation) (*Binding, error) {
	seq, err := key.ParseSequence(chord)
	if err != nil {
		return nil, err
	}
	return t.BindSequence(seq, mode, invs...)
}

// BindSequence binds seq in mode to the given invocations.
func (t *Table) BindSequence(seq key.Sequence, mode string, invs ...Invocation) (*Binding, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: empty chord", key.ErrInvalidKeyChord)
	}
	if len(invs) == 0 {
		return nil, fmt.Errorf("keymap: binding %q has no commands", seq)
	}
	for _, inv := range invs {
		if strings.TrimSpace(inv.Name) == "" {
			return nil, fmt.Errorf("keymap: binding %q has an empty command name", seq)
		}
	}
	b := &Binding{
		Keys:        seq.Clone(),
		Mode:        mode,
		Invocations: append([]Invocation(nil), invs...),
	}
	t.tree(mode).Insert(b)
	return b, nil
}

// Unbind removes the binding on chord in mode.
func (t *Table) Unbind(chord, mode string) (bool, error) {
	seq, err := key.ParseSequence(chord)
	if err != nil {
		return false, err
	}
	tree, ok := t.modes[mode]
	if !ok {
		return false, nil
	}
	return tree.Remove(seq), nil
}

func (t *Table) tree(mode string) *PrefixTree {
	tree, ok := t.modes[mode]
	if !ok {
		tree = NewPrefixTree()
		t.modes[mode] = tree
	}
	return tree
}

// Match is the outcome of looking a sequence up in a mode.
type Match int

const (
	// NoMatch means no binding starts with the sequence.
	NoMatch Match = iota
	// Exact means a binding is stored at the sequence.
	Exact
	// Prefix means the sequence is a strict prefix of some binding.
	Prefix
)

// Lookup resolves seq in mode. The mode's own trie is consulted first
// and shadows the global scope on any shared prefix: an exact match or
// pending prefix in the mode wins before the global scope is tried.
func (t *Table) Lookup(seq key.Sequence, mode string) (Match, *Binding) {
	scopes := []string{mode}
	if mode != GlobalMode {
		scopes = append(scopes, GlobalMode)
	}
	for _, scope := range scopes {
		tree, ok := t.modes[scope]
		if !ok {
			continue
		}
		if b := tree.Lookup(seq); b != nil {
			return Exact, b
		}
		if tree.HasPrefix(seq) {
			return Prefix, nil
		}
	}
	return NoMatch, nil
}

// SetFallback sets the command run with an unmatched printable key in
// mode. An empty name removes the fallback.
func (t *Table) SetFallback(mode, name string) {
	if name == "" {
		delete(t.fallbacks, mode)
		return
	}
	t.fallbacks[mode] = name
}

// Fallback returns the fallback command of mode.
func (t *Table) Fallback(mode string) (string, bool) {
	name, ok := t.fallbacks[mode]
	return name, ok
}

// Bindings returns copies of the bindings of mode, sorted by chord.
func (t *Table) Bindings(mode string) []*Binding {
	tree, ok := t.modes[mode]
	if !ok {
		return nil
	}
	out := make([]*Binding, 0, tree.Len())
	tree.Walk(func(b *Binding) bool {
		out = append(out, b.clone())
		return true
	})
	slices.SortFunc(out, func(a, b *Binding) int {
		return strings.Compare(a.Keys.String(), b.Keys.String())
	})
	return out
}

// Modes returns the modes that have bindings, sorted.
func (t *Table) Modes() []string {
	out := make([]string, 0, len(t.modes))
	for mode, tree := range t.modes {
		if tree.Len() > 0 {
			out = append(out, mode)
		}
	}
	slices.Sort(out)
	return out
}

// Len returns the total number of bindings.
func (t *Table) Len() int {
	n := 0
	for _, tree := range t.modes {
		n += tree.Len()
	}
	return n
}

// Clear removes every binding and fallback.
func (t *Table) Clear() {
	clear(t.modes)
	clear(t.fallbacks)
}
