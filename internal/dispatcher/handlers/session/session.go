// Package session provides handlers for session-level commands.
package session

import (
	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/input"
)

// Action names for session operations.
const (
	ActionReloadConfig = "reload-config"
	ActionQuit         = "quit"
	ActionMessage      = "message"
)

// Handler implements the session commands.
type Handler struct{}

// NewHandler creates a new session handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the session namespace.
func (h *Handler) Namespace() string {
	return "session"
}

// Actions lists the session commands.
func (h *Handler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionMessage, Description: "Show a message"},
		{Name: ActionQuit, Description: "End the session"},
		{Name: ActionReloadConfig, Description: "Drop script state and re-run the config script"},
	}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionReloadConfig, ActionQuit, ActionMessage:
		return true
	}
	return false
}

// HandleAction processes a session action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Session == nil {
		return handler.Error(execctx.ErrMissingSession)
	}
	switch action.Name {
	case ActionReloadConfig:
		if err := ctx.Session.ReloadConfig(); err != nil {
			return handler.Error(err)
		}
		return handler.SuccessWithMessage("config reloaded")
	case ActionQuit:
		ctx.Session.Quit()
		return handler.Success()
	case ActionMessage:
		text, err := handler.Literal(action.Args)
		if err != nil {
			return handler.Error(err)
		}
		if text == "" {
			return handler.NoOp()
		}
		ctx.Session.Message(text)
		return handler.Success()
	default:
		return handler.Errorf("unknown session action: %s", action.Name)
	}
}
