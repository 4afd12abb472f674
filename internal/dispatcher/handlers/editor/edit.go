package editor

import (
	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/input"
)

// Action names for editing.
const (
	ActionDelete = "delete"
	ActionInsert = "insert"
	ActionUndo   = "undo"
	ActionRedo   = "redo"
)

// EditHandler handles text edits and history.
type EditHandler struct{}

// NewEditHandler creates a new edit handler.
func NewEditHandler() *EditHandler {
	return &EditHandler{}
}

// Namespace returns the editor namespace.
func (h *EditHandler) Namespace() string {
	return "editor"
}

// Actions lists the edit commands.
func (h *EditHandler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionDelete, Description: "Delete the text under every selection"},
		{Name: ActionInsert, Description: "Insert text before every selection"},
		{Name: ActionRedo, Description: "Redo the last undone change"},
		{Name: ActionUndo, Description: "Undo the last change"},
	}
}

// CanHandle returns true if this handler can process the action.
func (h *EditHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionDelete, ActionInsert, ActionUndo, ActionRedo:
		return true
	}
	return false
}

// HandleAction processes an edit action.
func (h *EditHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionDelete:
		return h.delete(ctx)
	case ActionInsert:
		return h.insert(action, ctx)
	case ActionUndo:
		return h.undo(ctx)
	case ActionRedo:
		return h.redo(ctx)
	default:
		return handler.Errorf("unknown editor action: %s", action.Name)
	}
}

// delete removes the effective range of every selection. Each selection
// collapses onto its deletion site.
func (h *EditHandler) delete(ctx *execctx.ExecutionContext) handler.Result {
	_, buf, sels, err := ctx.Selections()
	if err != nil {
		return handler.Error(err)
	}
	n := buf.Len()
	edits := make([]buffer.Edit, 0, len(sels))
	for _, sel := range sels {
		r := sel.Range(n)
		edits = append(edits, buffer.NewDelete(r.Start, r.End))
	}
	return handler.FromError(ctx.Engine.Apply(buf.ID(), ActionDelete, edits))
}

// insert inserts text at the start of every selection. The selections
// move past the inserted text. Fallback keys insert their character as is.
func (h *EditHandler) insert(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	text := action.Args
	if action.Source != input.SourceFallback {
		var err error
		if text, err = handler.Literal(action.Args); err != nil {
			return handler.Error(err)
		}
	}
	if text == "" {
		return handler.NoOp()
	}
	_, buf, sels, err := ctx.Selections()
	if err != nil {
		return handler.Error(err)
	}
	edits := make([]buffer.Edit, 0, len(sels))
	for _, sel := range sels {
		edits = append(edits, buffer.NewInsert(min(sel.Min(), buf.Len()), text))
	}
	return handler.FromError(ctx.Engine.Apply(buf.ID(), ActionInsert, edits))
}

func (h *EditHandler) undo(ctx *execctx.ExecutionContext) handler.Result {
	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	return handler.FromError(ctx.Engine.Undo(buf.ID()))
}

func (h *EditHandler) redo(ctx *execctx.ExecutionContext) handler.Result {
	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	return handler.FromError(ctx.Engine.Redo(buf.ID()))
}
