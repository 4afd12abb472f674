package api

import (
	"fmt"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spiral/internal/dispatcher"
	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/key"
	"github.com/dshills/spiral/internal/input/keymap"
	"github.com/dshills/spiral/internal/input/mode"
	plua "github.com/dshills/spiral/internal/plugin/lua"
)

// GlobalName is the name of the global table the module installs.
const GlobalName = "Editor"

// EditorModule implements the Editor table.
type EditorModule struct {
	ctx   *Context
	state *plua.State

	// removers drop the mode-change hooks registered by the script.
	removers []func()
}

// NewEditorModule creates the Editor module for a Lua state.
func NewEditorModule(ctx *Context, state *plua.State) *EditorModule {
	if ctx.Logger == nil {
		ctx.Logger = nopLogger{}
	}
	return &EditorModule{ctx: ctx, state: state}
}

// Name returns the module name.
func (m *EditorModule) Name() string {
	return GlobalName
}

// Register installs the userdata types and the Editor global.
func (m *EditorModule) Register(L *lua.LState) error {
	if m.ctx.Engine == nil {
		return fmt.Errorf("register %s: %w", GlobalName, execctx.ErrMissingEngine)
	}
	m.registerViewType(L)
	m.registerBufferType(L)
	m.registerSelectionType(L)

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"bind":                   m.bind,
		"bind_key":               m.bindKey,
		"register_command":       m.registerCommand,
		"exec":                   m.exec,
		"get_active_view":        m.getActiveView,
		"set_active_view":        m.setActiveView,
		"get_views":              m.getViews,
		"create_buffer":          m.createBuffer,
		"create_view_for_buffer": m.createViewForBuffer,
		"open_file":              m.openFile,
		"on_mode_change":         m.onModeChange,
		"set_fallback":           m.setFallback,
		"message":                m.message,
		"get_mode":               m.getMode,
		"log":                    m.log,
	})
	L.SetField(mod, "session_id", lua.LString(m.ctx.SessionID))

	L.SetGlobal(GlobalName, mod)
	return nil
}

// Close removes the hooks the script registered.
func (m *EditorModule) Close() {
	for _, remove := range m.removers {
		remove()
	}
	m.removers = nil
}

// report logs a script failure that has no caller to return to and
// shows it on the message surface.
func (m *EditorModule) report(err error) {
	m.ctx.Logger.Error("script: %v", err)
	if m.ctx.Messages != nil {
		m.ctx.Messages.Message(err.Error())
	}
}

// bind(chord, [mode], cmd...) -> true | false, err
// Binds chord in mode to one or more command lines, which may also be
// given as a table. Without a mode the binding goes to normal, never to
// the global scope. Several commands run in order like a normal command. An invalid chord is reported and bind returns false
// with the message, so the rest of the script still runs.
func (m *EditorModule) bind(L *lua.LState) int {
	chord := L.CheckString(1)

	modeName := mode.ModeNormal
	first := 2
	if L.GetTop() >= 3 {
		modeName = L.CheckString(2)
		first = 3
	}
	lines := collectStrings(L, first)
	if len(lines) == 0 {
		L.ArgError(first, "at least one command is required")
		return 0
	}
	return m.bindLines(L, chord, modeName, lines)
}

// bind_key(key, cmd) -> true | false, err
// Binds a single key in the global scope, visible in every mode.
func (m *EditorModule) bindKey(L *lua.LState) int {
	chord := L.CheckString(1)
	line := L.CheckString(2)

	seq, err := key.ParseSequence(chord)
	if err == nil && len(seq) != 1 {
		err = fmt.Errorf("%w: %q is not a single key", key.ErrInvalidKeyChord, chord)
	}
	if err != nil {
		return m.bindFailed(L, err)
	}
	if _, err := m.ctx.Keymap.BindSequence(seq, keymap.GlobalMode, keymap.NewInvocation(line)); err != nil {
		return m.bindFailed(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *EditorModule) bindLines(L *lua.LState, chord, modeName string, lines []string) int {
	invs := make([]keymap.Invocation, len(lines))
	for i, line := range lines {
		invs[i] = keymap.NewInvocation(line)
	}
	if _, err := m.ctx.Keymap.Bind(chord, modeName, invs...); err != nil {
		return m.bindFailed(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *EditorModule) bindFailed(L *lua.LState, err error) int {
	err = fmt.Errorf("bind: %w", err)
	m.report(err)
	L.Push(lua.LFalse)
	L.Push(lua.LString(err.Error()))
	return 2
}

// collectStrings reads string arguments from position first on, flattening
// array tables.
func collectStrings(L *lua.LState, first int) []string {
	var out []string
	for i := first; i <= L.GetTop(); i++ {
		switch v := L.Get(i).(type) {
		case lua.LString:
			out = append(out, string(v))
		case *lua.LTable:
			for j := 1; j <= v.Len(); j++ {
				s, ok := v.RawGetInt(j).(lua.LString)
				if !ok {
					L.ArgError(i, "commands must be strings")
					return nil
				}
				out = append(out, string(s))
			}
		default:
			L.ArgError(i, "command string or table expected")
			return nil
		}
	}
	return out
}

// register_command(name, [description], fn)
// Registers fn as a command. It is called with the command's arguments,
// booleans and integers converted, and runs as one undo unit.
func (m *EditorModule) registerCommand(L *lua.LState) int {
	name := L.CheckString(1)
	desc := ""
	fnIndex := 2
	if L.GetTop() >= 3 {
		desc = L.CheckString(2)
		fnIndex = 3
	}
	fn := L.CheckFunction(fnIndex)

	if m.ctx.Commands == nil {
		L.RaiseError("register_command: no command registry")
		return 0
	}
	err := m.ctx.Commands.Register(dispatcher.Command{
		Name:        name,
		Description: desc,
		Source:      dispatcher.SourceScript,
		Handler:     m.scriptHandler(fn),
	})
	if err != nil {
		L.RaiseError("register_command: %v", err)
	}
	return 0
}

// scriptHandler adapts a Lua function to a command handler.
func (m *EditorModule) scriptHandler(fn *lua.LFunction) handler.HandlerFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		args, err := handler.ParseArgs(action.Args)
		if err != nil {
			return handler.Error(err)
		}
		values := make([]lua.LValue, len(args))
		for i, arg := range args {
			values[i] = argValue(arg)
		}

		if v, err := ctx.ActiveView(); err == nil {
			id := v.Buffer()
			ctx.Engine.BeginUndoGroup(id)
			defer ctx.Engine.EndUndoGroup(id)
		}

		if _, err := m.state.CallFunction(fn, values...); err != nil {
			return handler.Error(err)
		}
		return handler.Success()
	}
}

// argValue converts a command argument to the Lua value a script sees.
func argValue(arg string) lua.LValue {
	switch arg {
	case "true":
		return lua.LTrue
	case "false":
		return lua.LFalse
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return lua.LNumber(n)
	}
	return lua.LString(arg)
}

// exec(line)
// Parses and runs a command line. A failing command raises an error.
func (m *EditorModule) exec(L *lua.LState) int {
	line := L.CheckString(1)
	if m.ctx.Exec == nil {
		L.RaiseError("exec: no dispatcher")
		return 0
	}
	if err := m.ctx.Exec.ExecuteLine(line); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// get_active_view() -> view | nil
func (m *EditorModule) getActiveView(L *lua.LState) int {
	v, err := m.ctx.Engine.ActiveView()
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(newView(L, v.ID()))
	return 1
}

// set_active_view(view)
func (m *EditorModule) setActiveView(L *lua.LState) int {
	if err := m.ctx.Engine.SetActiveView(checkView(L, 1).id); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// get_views() -> {view...}
// Returns every view in creation order.
func (m *EditorModule) getViews(L *lua.LState) int {
	tbl := L.NewTable()
	for i, v := range m.ctx.Engine.Views() {
		tbl.RawSetInt(i+1, newView(L, v.ID()))
	}
	L.Push(tbl)
	return 1
}

// create_buffer([text], [name]) -> buffer
func (m *EditorModule) createBuffer(L *lua.LState) int {
	text := L.OptString(1, "")
	var opts []buffer.Option
	if name := L.OptString(2, ""); name != "" {
		opts = append(opts, buffer.WithName(name))
	}
	buf := m.ctx.Engine.CreateBuffer(text, opts...)
	L.Push(newBuffer(L, buf.ID()))
	return 1
}

// create_view_for_buffer(buffer) -> view
func (m *EditorModule) createViewForBuffer(L *lua.LState) int {
	v, err := m.ctx.Engine.CreateView(checkBuffer(L, 1).id)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(newView(L, v.ID()))
	return 1
}

// open_file(path) -> view
// Opens path in a new view and makes it active.
func (m *EditorModule) openFile(L *lua.LState) int {
	path := L.CheckString(1)
	if m.ctx.Files == nil {
		L.RaiseError("open_file: no file system")
		return 0
	}
	v, err := m.ctx.Files.OpenFile(path)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(newView(L, v.ID()))
	return 1
}

// on_mode_change(fn)
// Calls fn(old, new) after every mode change of any view.
func (m *EditorModule) onModeChange(L *lua.LState) int {
	fn := L.CheckFunction(1)
	if m.ctx.Modes == nil {
		L.RaiseError("on_mode_change: no mode manager")
		return 0
	}
	remove := m.ctx.Modes.OnChange(func(from, to string) {
		if _, err := m.state.CallFunction(fn, lua.LString(from), lua.LString(to)); err != nil {
			m.report(fmt.Errorf("on_mode_change: %w", err))
		}
	})
	m.removers = append(m.removers, remove)
	return 0
}

// set_fallback(mode, cmd)
// Runs cmd with the character as its argument when a printable key
// matches nothing in mode. An empty cmd removes the fallback.
func (m *EditorModule) setFallback(L *lua.LState) int {
	modeName := L.CheckString(1)
	name := L.OptString(2, "")
	m.ctx.Keymap.SetFallback(modeName, name)
	return 0
}

// message(text)
func (m *EditorModule) message(L *lua.LState) int {
	text := L.CheckString(1)
	if m.ctx.Messages != nil {
		m.ctx.Messages.Message(text)
	}
	return 0
}

// get_mode() -> string
// Returns the mode of the active view, or "" without one.
func (m *EditorModule) getMode(L *lua.LState) int {
	v, err := m.ctx.Engine.ActiveView()
	if err != nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(v.Mode()))
	return 1
}

// log([level], msg)
// Writes to the editor log. Level is debug, info, warn or error.
func (m *EditorModule) log(L *lua.LState) int {
	level, msg := "info", L.CheckString(1)
	if L.GetTop() >= 2 {
		level, msg = strings.ToLower(msg), L.CheckString(2)
	}
	switch level {
	case "debug":
		m.ctx.Logger.Debug("script: %s", msg)
	case "warn", "warning":
		m.ctx.Logger.Warn("script: %s", msg)
	case "error":
		m.ctx.Logger.Error("script: %s", msg)
	default:
		m.ctx.Logger.Info("script: %s", msg)
	}
	return 0
}
