// Package mode provides handlers for mode switching.
package mode

import (
	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/input"
)

// Action names for mode operations.
const (
	ActionEnter       = "enter-mode"
	ActionPush        = "push-mode"
	ActionPop         = "pop-mode"
	ActionCommandMode = "enter-command-mode"
)

// Handler handles mode switching for the active view.
type Handler struct{}

// NewHandler creates a new mode handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the mode namespace.
func (h *Handler) Namespace() string {
	return "mode"
}

// Actions lists the mode commands.
func (h *Handler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionCommandMode, Description: "Focus the command line"},
		{Name: ActionEnter, Description: "Enter the given mode"},
		{Name: ActionPop, Description: "Return to the mode saved by push-mode"},
		{Name: ActionPush, Description: "Save the current mode and enter the given mode"},
	}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionEnter, ActionPush, ActionPop, ActionCommandMode:
		return true
	}
	return false
}

// HandleAction processes a mode action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionEnter:
		name, err := execctx.RequireArg(action.Name, action.Args)
		if err != nil {
			return handler.Error(err)
		}
		return handler.FromError(ctx.SwitchMode(name))
	case ActionPush:
		name, err := execctx.RequireArg(action.Name, action.Args)
		if err != nil {
			return handler.Error(err)
		}
		return handler.FromError(ctx.PushMode(name))
	case ActionPop:
		return handler.FromError(ctx.PopMode())
	case ActionCommandMode:
		if ctx.Session == nil {
			return handler.Error(execctx.ErrMissingSession)
		}
		ctx.Session.FocusCommandLine()
		return handler.Success()
	default:
		return handler.Errorf("unknown mode action: %s", action.Name)
	}
}
