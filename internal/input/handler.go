package input

import (
	"github.com/dshills/spiral/internal/input/cmdline"
	"github.com/dshills/spiral/internal/input/key"
	"github.com/dshills/spiral/internal/input/keymap"
)

// ExecCommand is the command that runs a typed command line.
const ExecCommand = "exec"

// Outcome describes what a key event did.
type Outcome struct {
	// Actions are the commands to run, in order.
	Actions []Action

	// Status is the resolver status when the key went to the resolver.
	Status keymap.Status

	// Keys is the chord that produced the outcome.
	Keys key.Sequence

	// CommandLine is true when the key was consumed by the command line.
	CommandLine bool

	// Consumed is true when a hook consumed the key.
	Consumed bool
}

// Handler is the entry point for key input.
type Handler struct {
	table    *keymap.Table
	resolver *keymap.Resolver

	line       *cmdline.Line
	lineActive bool

	hooks []Hook
}

// NewHandler creates a handler resolving keys against table.
func NewHandler(table *keymap.Table) *Handler {
	return &Handler{
		table:    table,
		resolver: keymap.NewResolver(table),
		line:     cmdline.New(":"),
	}
}

// Table returns the binding table.
func (h *Handler) Table() *keymap.Table {
	return h.table
}

// AddHook registers a hook.
func (h *Handler) AddHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// HandleKey processes a key event in mode and returns the actions it
// produced. Nothing is executed here.
func (h *Handler) HandleKey(ev key.Event, mode string) Outcome {
	ev = ev.Normalize()
	for _, hook := range h.hooks {
		if hook.PreKeyEvent(ev, mode) {
			return Outcome{Consumed: true}
		}
	}

	var out Outcome
	if h.lineActive {
		out = h.handleLineKey(ev)
	} else {
		out = h.resolve(ev, mode)
	}

	for _, hook := range h.hooks {
		hook.PostKeyEvent(ev, out)
	}
	return out
}

func (h *Handler) resolve(ev key.Event, mode string) Outcome {
	res := h.resolver.Feed(ev, mode)
	out := Outcome{Status: res.Status, Keys: res.Keys}
	switch {
	case res.Status == keymap.StatusMatched:
		out.Actions = FromInvocations(res.Binding.Invocations, SourceKeyboard)
	case res.Fallback != nil:
		out.Actions = []Action{NewAction(res.Fallback.Name, res.Fallback.Args, SourceFallback)}
	}
	return out
}

func (h *Handler) handleLineKey(ev key.Event) Outcome {
	out := Outcome{CommandLine: true}
	switch h.line.HandleKey(ev) {
	case cmdline.ActionExecute:
		text := h.line.Submit()
		h.lineActive = false
		out.Actions = []Action{NewAction(ExecCommand, text, SourceCommandLine)}
	case cmdline.ActionCancel:
		h.line.Reset()
		h.lineActive = false
	}
	return out
}

// FocusCommandLine gives the command line focus with an empty line.
func (h *Handler) FocusCommandLine() {
	h.resolver.Reset()
	h.line.Reset()
	h.lineActive = true
}

// CommandLineActive reports whether the command line has focus.
func (h *Handler) CommandLineActive() bool {
	return h.lineActive
}

// CommandLine returns the command line editor.
func (h *Handler) CommandLine() *cmdline.Line {
	return h.line
}

// SetCompleter sets the command line completion function.
func (h *Handler) SetCompleter(c cmdline.Completer) {
	h.line.SetCompleter(c)
}

// Pending returns the keys of the unresolved chord.
func (h *Handler) Pending() key.Sequence {
	return h.resolver.Pending()
}

// ClearPending discards the unresolved chord.
func (h *Handler) ClearPending() {
	h.resolver.Reset()
}
