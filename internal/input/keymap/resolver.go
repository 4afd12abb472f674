package keymap

import "github.com/dshills/spiral/internal/input/key"

// Status describes what a key press did to the pending chord.
type Status int

const (
	// StatusNoMatch means the chord matched nothing and was cleared.
	StatusNoMatch Status = iota
	// StatusMatched means the chord completed a binding and was cleared.
	StatusMatched
	// StatusPending means the chord is a prefix of a binding.
	StatusPending
	// StatusCancelled means escape discarded a pending chord.
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusPending:
		return "pending"
	case StatusCancelled:
		return "cancelled"
	default:
		return "no-match"
	}
}

// Result is the outcome of feeding one key to a Resolver.
type Result struct {
	Status Status

	// Keys is the chord as it stood when resolution finished.
	Keys key.Sequence

	// Binding is set when Status is StatusMatched.
	Binding *Binding

	// Fallback is the mode's fallback invocation when a single printable
	// key matched nothing and the mode has one.
	Fallback *Invocation
}

// Resolver turns key presses into bindings, one key at a time.
type Resolver struct {
	table   *Table
	pending key.Sequence
}

// NewResolver creates a resolver over table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Feed appends ev to the pending chord and resolves it in mode.
func (r *Resolver) Feed(ev key.Event, mode string) Result {
	ev = ev.Normalize()
	if ev.IsEscape() && len(r.pending) > 0 {
		keys := r.pending
		r.pending = nil
		return Result{Status: StatusCancelled, Keys: keys}
	}

	r.pending = append(r.pending, ev)
	keys := r.pending.Clone()

	match, b := r.table.Lookup(keys, mode)
	switch match {
	case Exact:
		r.pending = nil
		return Result{Status: StatusMatched, Keys: keys, Binding: b}
	case Prefix:
		return Result{Status: StatusPending, Keys: keys}
	}

	r.pending = nil
	res := Result{Status: StatusNoMatch, Keys: keys}
	if len(keys) == 1 && ev.IsChar() {
		if name, ok := r.table.Fallback(mode); ok {
			res.Fallback = &Invocation{Name: name, Args: string(ev.Rune)}
		}
	}
	return res
}

// Pending returns a copy of the keys received but not yet resolved.
func (r *Resolver) Pending() key.Sequence {
	return r.pending.Clone()
}

// Reset discards the pending chord.
func (r *Resolver) Reset() {
	r.pending = nil
}
