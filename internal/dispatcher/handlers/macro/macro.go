// Package macro provides handlers that run other commands: normal runs a
// list of command lines, exec runs one typed line, and the key macro
// commands record and replay keystrokes.
package macro

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/key"
	keymacro "github.com/dshills/spiral/internal/input/macro"
)

// Action names for composite commands.
const (
	ActionNormal = "normal"
	ActionExec   = input.ExecCommand
)

// Action names for key macros.
const (
	ActionRecord = "record-macro"   // record-macro [register]
	ActionStop   = "stop-recording" // save the recording
	ActionPlay   = "play-macro"     // play-macro [register|@] [count]
	ActionToggle = "toggle-recording"
)

// Handler implements the composite commands.
type Handler struct {
	recorder *keymacro.Recorder
	feed     func(key.Event) error
}

// Option configures a Handler.
type Option func(*Handler)

// WithKeyMacros enables the key macro commands. Replayed keys go to feed.
func WithKeyMacros(rec *keymacro.Recorder, feed func(key.Event) error) Option {
	return func(h *Handler) {
		h.recorder = rec
		h.feed = feed
	}
}

// NewHandler creates a new macro handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Namespace returns the macro namespace.
func (h *Handler) Namespace() string {
	return "macro"
}

// Actions lists the composite commands.
func (h *Handler) Actions() []handler.ActionInfo {
	info := []handler.ActionInfo{
		{Name: ActionExec, Description: "Parse and run a command line"},
		{Name: ActionNormal, Description: "Run each argument as a command line"},
	}
	if h.recorder != nil {
		info = append(info,
			handler.ActionInfo{Name: ActionPlay, Description: "Replay the keys in a register"},
			handler.ActionInfo{Name: ActionRecord, Description: "Record keys into a register"},
			handler.ActionInfo{Name: ActionStop, Description: "Stop recording keys"},
			handler.ActionInfo{Name: ActionToggle, Description: "Start or stop recording keys"},
		)
	}
	return info
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionNormal, ActionExec:
		return true
	case ActionRecord, ActionStop, ActionPlay, ActionToggle:
		return h.recorder != nil
	}
	return false
}

// HandleAction processes a composite action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionRecord, ActionStop, ActionPlay, ActionToggle:
		if h.recorder == nil {
			return handler.Errorf("%s: key macros are disabled", action.Name)
		}
		return h.keyMacro(action)
	}
	if ctx.Dispatcher == nil {
		return handler.Errorf("%s: no dispatcher", action.Name)
	}
	switch action.Name {
	case ActionNormal:
		return h.normal(action, ctx)
	case ActionExec:
		if _, err := execctx.RequireArg(action.Name, action.Args); err != nil {
			return handler.Error(err)
		}
		return handler.FromError(ctx.Dispatcher.ExecuteLine(action.Args))
	default:
		return handler.Errorf("unknown macro action: %s", action.Name)
	}
}

// normal runs every argument as a command line. A failing line is
// reported by the dispatcher and the rest still run, so normal itself
// only fails on a malformed argument list.
func (h *Handler) normal(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	lines, err := handler.ParseArgs(action.Args)
	if err != nil {
		return handler.Error(err)
	}
	if len(lines) == 0 {
		return handler.NoOp()
	}
	actions := make([]input.Action, 0, len(lines))
	for _, line := range lines {
		name, args := handler.SplitCommand(line)
		actions = append(actions, input.NewAction(name, args, input.SourceCommandLine))
	}
	ctx.Dispatcher.ExecuteList(actions)
	return handler.Success()
}

func (h *Handler) keyMacro(action input.Action) handler.Result {
	args := strings.Fields(action.Args)
	name := action.Name
	if name == ActionToggle {
		name = ActionRecord
		if _, recording := h.recorder.Recording(); recording {
			name = ActionStop
		}
	}
	switch name {
	case ActionRecord:
		reg, err := registerArg(args)
		if err != nil {
			return handler.Error(err)
		}
		if err := h.recorder.StartRecording(reg); err != nil {
			return handler.Error(err)
		}
		return handler.SuccessWithMessage(fmt.Sprintf("recording @%c", keymacro.NormalizeRegister(reg)))
	case ActionStop:
		// Keys typed to reach stop-recording are not part of the macro.
		reg, n, err := h.recorder.StopRecording(action.Source != input.SourceAPI)
		if err != nil {
			return handler.Error(err)
		}
		return handler.SuccessWithMessage(fmt.Sprintf("recorded %d keys into @%c", n, reg))
	default:
		reg, err := registerArg(args)
		if err != nil {
			return handler.Error(err)
		}
		if reg == '@' {
			if reg = h.recorder.LastPlayed(); reg == 0 {
				return handler.Errorf("%s: no macro played yet", action.Name)
			}
		}
		count := 1
		if len(args) > 1 {
			if count, err = strconv.Atoi(args[1]); err != nil || count < 1 {
				return handler.Errorf("%s: invalid count %q", action.Name, args[1])
			}
		}
		return handler.FromError(h.recorder.Play(reg, count, h.feed))
	}
}

func registerArg(args []string) (rune, error) {
	if len(args) == 0 {
		return keymacro.DefaultRegister, nil
	}
	r, size := utf8.DecodeRuneInString(args[0])
	if size != len(args[0]) {
		return 0, fmt.Errorf("%w: %q", keymacro.ErrInvalidRegister, args[0])
	}
	return r, nil
}
