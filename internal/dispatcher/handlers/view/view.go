// Package view provides handlers for scrolling and for switching
// between views.
package view

import (
	"fmt"
	"strconv"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/input"
)

// Action names for view operations.
const (
	ActionScrollDown     = "scroll-down"      // scroll-down [n]
	ActionScrollUp       = "scroll-up"        // scroll-up [n]
	ActionScrollToCursor = "scroll-to-cursor" // cursor line to the top
	ActionNextView       = "next-view"
	ActionPrevView       = "prev-view"
	ActionSplitView      = "split-view" // another view over the active buffer
)

// Handler implements view handling.
type Handler struct{}

// NewHandler creates a new view handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the view namespace.
func (h *Handler) Namespace() string {
	return "view"
}

// Actions lists the view commands.
func (h *Handler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionNextView, Description: "Activate the next view"},
		{Name: ActionPrevView, Description: "Activate the previous view"},
		{Name: ActionScrollDown, Description: "Scroll down by a count of lines (default 1)"},
		{Name: ActionScrollToCursor, Description: "Scroll the primary cursor's line to the top"},
		{Name: ActionScrollUp, Description: "Scroll up by a count of lines (default 1)"},
		{Name: ActionSplitView, Description: "Open another view over the active buffer"},
	}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionScrollDown, ActionScrollUp, ActionScrollToCursor,
		ActionNextView, ActionPrevView, ActionSplitView:
		return true
	}
	return false
}

// HandleAction processes a view action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Engine == nil {
		return handler.Error(execctx.ErrMissingEngine)
	}

	switch action.Name {
	case ActionScrollDown, ActionScrollUp:
		count, err := parseCount(action.Args)
		if err != nil {
			return handler.Errorf("%s: %w", action.Name, err)
		}
		if action.Name == ActionScrollUp {
			count = -count
		}
		return h.scroll(ctx, count)
	case ActionScrollToCursor:
		return h.scrollToCursor(ctx)
	case ActionNextView:
		return h.cycle(ctx, 1)
	case ActionPrevView:
		return h.cycle(ctx, -1)
	case ActionSplitView:
		return h.split(ctx)
	default:
		return handler.Errorf("unknown view action: %s", action.Name)
	}
}

func parseCount(args string) (int, error) {
	if args == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", args)
	}
	return n, nil
}

func (h *Handler) scroll(ctx *execctx.ExecutionContext, delta int) handler.Result {
	v, err := ctx.ActiveView()
	if err != nil {
		return handler.Error(err)
	}
	before := v.Scroll()
	after, err := ctx.Engine.ScrollView(v.ID(), delta)
	if err != nil {
		return handler.Error(err)
	}
	if after == before {
		return handler.NoOp()
	}
	return handler.Success()
}

func (h *Handler) scrollToCursor(ctx *execctx.ExecutionContext) handler.Result {
	v, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	line := buf.LineOf(v.Primary().Head())
	_, err = ctx.Engine.ScrollView(v.ID(), line-v.Scroll())
	return handler.FromError(err)
}

// cycle activates the view step places from the active one in creation
// order, wrapping at either end.
func (h *Handler) cycle(ctx *execctx.ExecutionContext, step int) handler.Result {
	active, err := ctx.ActiveView()
	if err != nil {
		return handler.Error(err)
	}
	views := ctx.Engine.Views()
	if len(views) < 2 {
		return handler.NoOp()
	}
	for i, v := range views {
		if v.ID() == active.ID() {
			next := views[(i+step+len(views))%len(views)]
			return handler.FromError(ctx.Engine.SetActiveView(next.ID()))
		}
	}
	return handler.NoOp()
}

// split creates a view over the active buffer with the same selections,
// mode and scroll, and activates it.
func (h *Handler) split(ctx *execctx.ExecutionContext) handler.Result {
	active, err := ctx.ActiveView()
	if err != nil {
		return handler.Error(err)
	}
	v, err := ctx.Engine.CreateView(active.Buffer())
	if err != nil {
		return handler.Error(err)
	}
	if err := ctx.Engine.SetSelections(v.ID(), active.Selections()); err != nil {
		return handler.Error(err)
	}
	v.SetMode(active.Mode())
	v.SetScroll(active.Scroll())
	return handler.FromError(ctx.Engine.SetActiveView(v.ID()))
}
