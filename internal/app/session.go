// Package app owns the editor session. A Session wires the engine, the
// key resolver, the command dispatcher and the Lua config together and
// is driven one key at a time by a frontend.
package app

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/dshills/spiral/internal/config"
	"github.com/dshills/spiral/internal/dispatcher"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/spiral/internal/dispatcher/handlers/cursor"
	editorhandler "github.com/dshills/spiral/internal/dispatcher/handlers/editor"
	filehandler "github.com/dshills/spiral/internal/dispatcher/handlers/file"
	"github.com/dshills/spiral/internal/dispatcher/handlers/macro"
	modehandler "github.com/dshills/spiral/internal/dispatcher/handlers/mode"
	searchhandler "github.com/dshills/spiral/internal/dispatcher/handlers/search"
	sessionhandler "github.com/dshills/spiral/internal/dispatcher/handlers/session"
	viewhandler "github.com/dshills/spiral/internal/dispatcher/handlers/view"
	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/view"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/fuzzy"
	"github.com/dshills/spiral/internal/input/key"
	"github.com/dshills/spiral/internal/input/keymap"
	keymacro "github.com/dshills/spiral/internal/input/macro"
	"github.com/dshills/spiral/internal/input/mode"
	"github.com/dshills/spiral/internal/plugin/api"
	plua "github.com/dshills/spiral/internal/plugin/lua"
	"github.com/dshills/spiral/internal/vfs"
)

// ScratchName names the buffer a session starts with when no file is
// opened.
const ScratchName = "*scratch*"

const maxCompletions = 20

// Options configures a session.
type Options struct {
	// Settings are the decoded settings; the zero value means defaults.
	Settings config.Settings

	// FS is the file system for open, write and config scripts.
	// Defaults to the OS.
	FS vfs.FS

	// Logger receives the session log. Defaults to NullLogger.
	Logger *Logger

	// Clipboard mirrors the kill ring when set.
	Clipboard editorhandler.Clipboard

	// Scripts replaces the config search path. Nil searches on every
	// reload.
	Scripts []config.Script

	// Files are opened at startup, the last one active.
	Files []string
}

// Session is the root owner of editor state. It is not safe for
// concurrent use; a frontend drives it from one goroutine.
type Session struct {
	id       string
	settings config.Settings
	fs       vfs.FS
	logger   *Logger

	engine     *engine.Engine
	keymap     *keymap.Table
	input      *input.Handler
	modes      *mode.Manager
	dispatcher *dispatcher.Dispatcher
	files      *filehandler.Handler
	ring       *editorhandler.KillRing
	macros     *keymacro.Recorder
	messages   *Messages

	scripts []config.Script
	lua     *plua.State
	module  *api.EditorModule

	quit   bool
	closed bool
}

// New creates a session, opens opts.Files and runs the config scripts.
// Failures to open a file or run a script are reported on the message
// surface; only a broken command set fails New.
func New(opts Options) (*Session, error) {
	if opts.Settings == (config.Settings{}) {
		opts.Settings = config.DefaultSettings()
	}
	if opts.FS == nil {
		opts.FS = vfs.NewOSFS()
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		settings: opts.Settings,
		fs:       opts.FS,
		logger:   opts.Logger.WithField("session", id[:8]),
		engine:   engine.New(engine.WithMaxUndoEntries(opts.Settings.Editor.MaxUndo)),
		keymap:   keymap.NewTable(),
		modes:    mode.NewManager(),
		files:    filehandler.NewHandler(opts.FS),
		ring:     editorhandler.NewKillRing(editorhandler.DefaultKillRingSize),
		messages: NewMessages(DefaultMessageCount),
		scripts:  opts.Scripts,
	}

	s.input = input.NewHandler(s.keymap)
	s.input.AddHook(input.LoggingHook{Logger: s.logger.WithComponent("input").Debug})
	s.macros = keymacro.NewRecorder(func() bool {
		return len(s.input.Pending()) == 0 && !s.input.CommandLineActive()
	})
	s.input.AddHook(s.macros)
	s.modes.OnChange(func(from, to string) {
		s.input.ClearPending()
		s.logger.Debug("mode %s -> %s", from, to)
	})

	s.dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	s.dispatcher.SetEngine(s.engine)
	s.dispatcher.SetModeManager(s.modes)
	s.dispatcher.SetSession(s)
	s.dispatcher.SetReporter(s.ReportError)
	audit := dispatcher.NewAuditHook(s.logger.WithComponent("dispatch"))
	s.dispatcher.RegisterPreHook(audit)
	s.dispatcher.RegisterPostHook(audit)
	if err := s.registerBuiltins(opts.Clipboard); err != nil {
		return nil, NewComponentError("dispatcher", "register built-ins", err)
	}
	s.input.SetCompleter(s.completeCommand)

	for _, path := range opts.Files {
		if _, err := s.OpenFile(path); err != nil {
			s.ReportError(NewOperationError("open", path, err))
		}
	}
	if len(s.engine.Views()) == 0 {
		s.openScratch()
	}

	if err := s.ReloadConfig(); err != nil {
		s.ReportError(err)
	}
	s.logger.Info("session started")
	return s, nil
}

func (s *Session) registerBuiltins(clip editorhandler.Clipboard) error {
	namespaces := []handler.NamespaceHandler{
		cursorhandler.NewHandler(),
		cursorhandler.NewSelectionHandler(),
		editorhandler.NewEditHandler(),
		editorhandler.NewYankHandler(s.ring, clip),
		modehandler.NewHandler(),
		macro.NewHandler(macro.WithKeyMacros(s.macros, s.HandleKey)),
		s.files,
		viewhandler.NewHandler(),
		searchhandler.NewHandler(),
		sessionhandler.NewHandler(),
	}
	for _, ns := range namespaces {
		if err := s.dispatcher.RegisterNamespace(ns); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) openScratch() {
	buf := s.engine.CreateBuffer("", buffer.WithName(ScratchName))
	v, err := s.engine.CreateView(buf.ID())
	if err != nil {
		s.ReportError(err)
		return
	}
	s.engine.SetActiveView(v.ID())
}

// installDefaults sets what a session has before any script runs.
func (s *Session) installDefaults() {
	s.keymap.SetFallback(mode.ModeInsert, editorhandler.ActionInsert)
}

// ReloadConfig drops script commands, bindings and hooks, then runs
// the config scripts in a fresh Lua state. A script that fails is
// reported and the rest still run. Built-in commands survive.
func (s *Session) ReloadConfig() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.lua != nil && s.lua.Depth() > 0 {
		return ErrScriptRunning
	}

	scripts := s.scripts
	if scripts == nil {
		var err error
		scripts, err = config.LoadScripts(s.fs, config.SearchPaths(s.settings.Editor.Script))
		if err != nil {
			return NewOperationError("reload", "config", err)
		}
	}

	s.closeScripts()
	s.dispatcher.Registry().ResetScripts()
	s.keymap.Clear()
	s.installDefaults()
	s.input.ClearPending()

	logger := s.logger.WithComponent("lua")
	state, err := plua.NewState(
		plua.WithExecutionTimeout(s.settings.Script.Timeout.Duration()),
		plua.WithPrint(func(line string) { logger.Info("print: %s", line) }),
	)
	if err != nil {
		return NewComponentError("lua", "create state", err)
	}
	module := api.NewEditorModule(&api.Context{
		Engine:    s.engine,
		Keymap:    s.keymap,
		Commands:  s.dispatcher.Registry(),
		Exec:      s.dispatcher,
		Modes:     s.modes,
		Files:     s,
		Messages:  s,
		Logger:    logger,
		SessionID: s.id,
	}, state)
	if err := module.Register(state.LuaState()); err != nil {
		state.Close()
		return NewComponentError("lua", "register "+module.Name(), err)
	}
	s.lua, s.module = state, module

	var errs LoadError
	for _, script := range scripts {
		if err := state.DoString(script.Source, script.Name); err != nil {
			errs.add(script.Name, err)
		}
	}
	s.logger.Info("config loaded: %d script(s), %d binding mode(s), %d failure(s)",
		len(scripts), len(s.keymap.Modes()), errs.Len())
	return errs.orNil()
}

func (s *Session) closeScripts() {
	if s.module != nil {
		s.module.Close()
		s.module = nil
	}
	if s.lua != nil {
		s.lua.Close()
		s.lua = nil
	}
}

// HandleKey feeds a key to the resolver or the focused command line
// and runs the commands it produced. Command failures are reported on
// the message surface and also returned.
func (s *Session) HandleKey(ev key.Event) error {
	if s.closed {
		return ErrSessionClosed
	}
	out := s.input.HandleKey(ev, s.Mode())
	if len(out.Actions) == 0 {
		return nil
	}
	return s.dispatcher.ExecuteList(out.Actions)
}

// Execute parses and runs a command line.
func (s *Session) Execute(line string) error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.dispatcher.ExecuteLine(line)
}

// OpenFile opens path in a new active view. It implements the scripting
// bridge's file opener.
func (s *Session) OpenFile(path string) (*view.View, error) {
	action := input.NewAction(filehandler.ActionOpen, strconv.Quote(path), input.SourceAPI)
	if err := s.dispatcher.Execute(action); err != nil {
		return nil, err
	}
	return s.engine.ActiveView()
}

// Message shows an informational message.
func (s *Session) Message(text string) {
	s.messages.Add(LogLevelInfo, text)
	s.logger.Info("message: %s", text)
}

// ReportError logs err and shows it on the message surface.
func (s *Session) ReportError(err error) {
	s.messages.Add(LogLevelError, err.Error())
	s.logger.Error("%v", err)
}

// FocusCommandLine gives the command line keyboard focus.
func (s *Session) FocusCommandLine() {
	s.input.FocusCommandLine()
}

// Quit asks the frontend to end the session.
func (s *Session) Quit() {
	s.quit = true
}

// Done reports whether quit was requested.
func (s *Session) Done() bool {
	return s.quit
}

// Close releases the Lua state. The session cannot be used afterwards.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closeScripts()
	s.closed = true
	if m := s.dispatcher.Metrics(); m != nil {
		s.logger.Info("session closed: %d commands, %d failed, avg %s",
			m.TotalDispatches(), m.TotalErrors(), m.AverageDuration())
		for _, am := range m.TopActions(5) {
			s.logger.Debug("  %s x%d (max %s)", am.Name, am.DispatchCount, am.MaxDuration)
		}
	} else {
		s.logger.Info("session closed")
	}
	return nil
}

// Mode returns the active view's mode, or normal without a view.
func (s *Session) Mode() string {
	v, err := s.engine.ActiveView()
	if err != nil {
		return mode.ModeNormal
	}
	return v.Mode()
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Settings returns the session settings.
func (s *Session) Settings() config.Settings { return s.settings }

// Engine returns the text engine.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Keymap returns the binding table.
func (s *Session) Keymap() *keymap.Table { return s.keymap }

// Input returns the key input handler.
func (s *Session) Input() *input.Handler { return s.input }

// Macros returns the key macro registers.
func (s *Session) Macros() *keymacro.Recorder { return s.macros }

// Dispatcher returns the command dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher { return s.dispatcher }

// Modes returns the mode manager.
func (s *Session) Modes() *mode.Manager { return s.modes }

// KillRing returns the kill ring.
func (s *Session) KillRing() *editorhandler.KillRing { return s.ring }

// Messages returns the message surface.
func (s *Session) Messages() *Messages { return s.messages }

// Logger returns the session logger.
func (s *Session) Logger() *Logger { return s.logger }

// completeCommand ranks registered command names against word, including
// commands registered by the config.
func (s *Session) completeCommand(word string) []string {
	return fuzzy.Texts(fuzzy.Match(word, s.dispatcher.Registry().Names(), maxCompletions))
}
