package cursor

import (
	"sort"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/input"
)

// Action names for selection shaping.
const (
	ActionExtendToLines = "extend-selection-to-lines"
	ActionCollapse      = "collapse-selection"
	ActionFlip          = "flip-selection"
	ActionSelectAll     = "select-all"
	ActionKeepPrimary   = "keep-primary-selection"
)

var selectionActions = map[string]string{
	ActionExtendToLines: "Grow selections to whole lines",
	ActionCollapse:      "Collapse selections onto their heads",
	ActionFlip:          "Swap head and anchor of each selection",
	ActionSelectAll:     "Select the whole buffer",
	ActionKeepPrimary:   "Drop every selection but the primary one",
}

// SelectionHandler implements commands that reshape selections without
// moving along the text.
type SelectionHandler struct{}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler() *SelectionHandler {
	return &SelectionHandler{}
}

// Namespace returns the selection namespace.
func (h *SelectionHandler) Namespace() string {
	return "selection"
}

// Actions lists the selection commands.
func (h *SelectionHandler) Actions() []handler.ActionInfo {
	return sortedInfo(selectionActions, func(d string) string { return d })
}

// HandleAction processes a selection action.
func (h *SelectionHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionExtendToLines:
		return handler.FromError(ctx.MapSelections(func(sel cursor.Selection, buf *buffer.Buffer) cursor.Selection {
			return cursor.ToLines(sel, buf)
		}))
	case ActionCollapse:
		return handler.FromError(ctx.MapSelections(func(sel cursor.Selection, _ *buffer.Buffer) cursor.Selection {
			return sel.Collapse()
		}))
	case ActionFlip:
		return handler.FromError(ctx.MapSelections(func(sel cursor.Selection, _ *buffer.Buffer) cursor.Selection {
			return sel.Flip()
		}))
	case ActionSelectAll:
		return h.selectAll(ctx)
	case ActionKeepPrimary:
		return h.keepPrimary(ctx)
	default:
		return handler.Errorf("unknown selection action: %s", action.Name)
	}
}

func (h *SelectionHandler) selectAll(ctx *execctx.ExecutionContext) handler.Result {
	v, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	sel := cursor.NewSelection(0, max(buf.Len()-1, 0))
	return handler.FromError(ctx.Engine.SetSelections(v.ID(), []cursor.Selection{sel}))
}

func (h *SelectionHandler) keepPrimary(ctx *execctx.ExecutionContext) handler.Result {
	v, _, sels, err := ctx.Selections()
	if err != nil {
		return handler.Error(err)
	}
	if len(sels) == 1 {
		return handler.NoOp()
	}
	return handler.FromError(ctx.Engine.SetSelections(v.ID(), sels[:1]))
}

func sortedInfo[T any](m map[string]T, describe func(T) string) []handler.ActionInfo {
	out := make([]handler.ActionInfo, 0, len(m))
	for name, v := range m {
		out = append(out, handler.ActionInfo{Name: name, Description: describe(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
