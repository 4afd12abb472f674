package api

import (
	"github.com/dshills/spiral/internal/dispatcher"
	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/engine/view"
	"github.com/dshills/spiral/internal/input/keymap"
	"github.com/dshills/spiral/internal/input/mode"
)

// Context gives the Editor table access to the session.
type Context struct {
	// Engine provides buffers, views and edits.
	Engine *engine.Engine

	// Keymap receives bindings and fallback commands.
	Keymap *keymap.Table

	// Commands receives script commands.
	Commands *dispatcher.Registry

	// Exec runs command lines for Editor.exec.
	Exec execctx.Executor

	// Modes switches view modes and reports mode changes.
	Modes *mode.Manager

	// Files opens files for Editor.open_file.
	Files FileOpener

	// Messages shows text on the message surface.
	Messages Messenger

	// Logger receives Editor.log and script print output.
	Logger Logger

	// SessionID is exposed as Editor.session_id.
	SessionID string
}

// FileOpener opens a file into a new active view.
type FileOpener interface {
	OpenFile(path string) (*view.View, error)
}

// Messenger shows messages to the user.
type Messenger interface {
	Message(text string)
}

// Logger is the levelled logger scripts write to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
