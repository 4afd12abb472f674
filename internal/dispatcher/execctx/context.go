// Package execctx provides the execution context for command handlers.
package execctx

import (
	"fmt"

	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/engine/view"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/mode"
)

// Executor runs commands. Handlers use it to re-enter the dispatcher.
type Executor interface {
	// Execute runs a single action.
	Execute(action input.Action) error

	// ExecuteList runs actions in order, reporting each failure and
	// continuing with the rest.
	ExecuteList(actions []input.Action) error

	// ExecuteLine parses a command line and runs it.
	ExecuteLine(line string) error
}

// SessionInterface abstracts the session-level operations commands need.
type SessionInterface interface {
	// Message shows an informational message to the user.
	Message(text string)

	// FocusCommandLine gives the command line keyboard focus.
	FocusCommandLine()

	// ReloadConfig discards script state and re-runs the config script.
	ReloadConfig() error

	// Quit asks the session to end.
	Quit()
}

// ExecutionContext provides context for command execution.
type ExecutionContext struct {
	// Engine provides buffers, views and edits.
	Engine *engine.Engine

	// Modes switches the mode of the active view.
	Modes *mode.Manager

	// Session provides messages, the command line and reload.
	Session SessionInterface

	// Dispatcher re-enters command dispatch.
	Dispatcher Executor

	// Depth is the dispatch nesting depth, 1 for a top-level command.
	Depth int
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{}
}

// Validate checks that the engine is available.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ActiveView returns the active view.
func (ctx *ExecutionContext) ActiveView() (*view.View, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return ctx.Engine.ActiveView()
}

// ActiveBuffer returns the active view and its buffer.
func (ctx *ExecutionContext) ActiveBuffer() (*view.View, *buffer.Buffer, error) {
	v, err := ctx.ActiveView()
	if err != nil {
		return nil, nil, err
	}
	buf, err := ctx.Engine.Buffer(v.Buffer())
	if err != nil {
		return nil, nil, err
	}
	return v, buf, nil
}

// Selections returns the active view, its buffer and a copy of its
// selections.
func (ctx *ExecutionContext) Selections() (*view.View, *buffer.Buffer, []cursor.Selection, error) {
	v, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return nil, nil, nil, err
	}
	sels := v.Selections()
	if len(sels) == 0 {
		return nil, nil, nil, ErrNoSelections
	}
	return v, buf, sels, nil
}

// MapSelections replaces every selection of the active view with f of it.
func (ctx *ExecutionContext) MapSelections(f func(sel cursor.Selection, buf *buffer.Buffer) cursor.Selection) error {
	v, buf, sels, err := ctx.Selections()
	if err != nil {
		return err
	}
	for i, sel := range sels {
		sels[i] = f(sel, buf)
	}
	return ctx.Engine.SetSelections(v.ID(), sels)
}

// Mode returns the mode of the active view, or "" without one.
func (ctx *ExecutionContext) Mode() string {
	v, err := ctx.ActiveView()
	if err != nil {
		return ""
	}
	return v.Mode()
}

// SwitchMode sets the mode of the active view.
func (ctx *ExecutionContext) SwitchMode(name string) error {
	if ctx.Modes == nil {
		return ErrMissingModeManager
	}
	v, err := ctx.ActiveView()
	if err != nil {
		return err
	}
	return ctx.Modes.Switch(v, name)
}

// PushMode saves the active view's mode and switches to name.
func (ctx *ExecutionContext) PushMode(name string) error {
	if ctx.Modes == nil {
		return ErrMissingModeManager
	}
	v, err := ctx.ActiveView()
	if err != nil {
		return err
	}
	return ctx.Modes.Push(v, name)
}

// PopMode restores the mode saved by PushMode.
func (ctx *ExecutionContext) PopMode() error {
	if ctx.Modes == nil {
		return ErrMissingModeManager
	}
	v, err := ctx.ActiveView()
	if err != nil {
		return err
	}
	return ctx.Modes.Pop(v)
}

// Message shows text through the session, if there is one.
func (ctx *ExecutionContext) Message(text string) {
	if ctx.Session != nil {
		ctx.Session.Message(text)
	}
}

// RequireArg returns args or ErrMissingArgument when it is empty.
func RequireArg(command, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("%w: %s needs an argument", ErrMissingArgument, command)
	}
	return args, nil
}
