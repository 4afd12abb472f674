package input

import "github.com/dshills/spiral/internal/input/keymap"

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action came from a key binding.
	SourceKeyboard ActionSource = iota
	// SourceFallback indicates an unbound key routed to a mode's fallback.
	SourceFallback
	// SourceCommandLine indicates the action came from the command line.
	SourceCommandLine
	// SourceScript indicates the action came from the scripting bridge.
	SourceScript
	// SourceAPI indicates the action was issued programmatically.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceFallback:
		return "fallback"
	case SourceCommandLine:
		return "cmdline"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Action is a command invocation to be executed by the dispatcher.
type Action struct {
	// Name is the command name, e.g. "move-char-left".
	Name string

	// Args is the raw argument string; each command parses its own.
	Args string

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action from a name and raw arguments.
func NewAction(name, args string, source ActionSource) Action {
	return Action{Name: name, Args: args, Source: source}
}

// FromInvocations converts bound invocations into actions.
func FromInvocations(invs []keymap.Invocation, source ActionSource) []Action {
	out := make([]Action, len(invs))
	for i, inv := range invs {
		out[i] = Action{Name: inv.Name, Args: inv.Args, Source: source}
	}
	return out
}

// String returns the action as a command line.
func (a Action) String() string {
	if a.Args == "" {
		return a.Name
	}
	return a.Name + " " + a.Args
}
