package app

import (
	"errors"
	"fmt"
	"strings"
)

// Session errors.
var (
	// ErrSessionClosed indicates use of a closed session.
	ErrSessionClosed = errors.New("session closed")

	// ErrScriptRunning indicates a config reload requested by a running
	// script, which would close the state it runs in.
	ErrScriptRunning = errors.New("cannot reload config while a script is running")
)

// OperationError is a failed session operation on a named target, such
// as opening a file.
type OperationError struct {
	Op     string // "open", "reload"
	Target string // file path or script name
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }

// ComponentError is a failure while wiring a session component, such as
// the Lua state or the built-in commands.
type ComponentError struct {
	Component string // "lua", "dispatcher"
	Action    string
	Err       error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	parts := []string{e.Component}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ComponentError) Unwrap() error { return e.Err }

// ScriptError is a config script that failed to run.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// LoadError collects the scripts that failed during one config load.
// The scripts after a failing one still ran.
type LoadError struct {
	Failed []*ScriptError
}

func (e *LoadError) add(script string, err error) {
	e.Failed = append(e.Failed, &ScriptError{Script: script, Err: err})
}

// Len returns the number of failed scripts.
func (e *LoadError) Len() int { return len(e.Failed) }

func (e *LoadError) Error() string {
	if len(e.Failed) == 1 {
		return e.Failed[0].Error()
	}
	names := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		names[i] = f.Script
	}
	return fmt.Sprintf("%d scripts failed (%s): %v", len(e.Failed), strings.Join(names, ", "), e.Failed[0].Err)
}

// Unwrap returns the script failures for errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	out := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		out[i] = f
	}
	return out
}

// orNil returns e as an error, or nil when no script failed.
func (e *LoadError) orNil() error {
	if len(e.Failed) == 0 {
		return nil
	}
	return e
}
