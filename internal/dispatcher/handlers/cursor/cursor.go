// Package cursor provides handlers for selection movement.
package cursor

import (
	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/input"
)

// Action names for character and line motions.
const (
	ActionMoveLeft    = "move-char-left"
	ActionMoveRight   = "move-char-right"
	ActionMoveUp      = "move-char-up"
	ActionMoveDown    = "move-char-down"
	ActionExtendLeft  = "extend-char-left"
	ActionExtendRight = "extend-char-right"
	ActionExtendUp    = "extend-char-up"
	ActionExtendDown  = "extend-char-down"
)

// Action names for goto motions.
const (
	ActionGotoStart       = "goto-start"
	ActionGotoEnd         = "goto-end"
	ActionGotoLineStart   = "goto-start-of-line"
	ActionGotoLineEnd     = "goto-end-of-line"
	ActionExtendStart     = "extend-start"
	ActionExtendEnd       = "extend-end"
	ActionExtendLineStart = "extend-start-of-line"
	ActionExtendLineEnd   = "extend-end-of-line"
)

// motionKind selects how a motion is applied to a selection.
type motionKind uint8

const (
	kindMove motionKind = iota
	kindExtend
	kindGoto
)

type motion struct {
	kind        motionKind
	fn          cursor.Motion
	description string
}

// motions maps every motion command to its behavior. The extend-goto-*
// names are aliases of the extend-* goto motions.
var motions = map[string]motion{
	ActionMoveLeft:  {kindMove, cursor.Left, "Move selections one character left"},
	ActionMoveRight: {kindMove, cursor.Right, "Move selections one character right"},
	ActionMoveUp:    {kindMove, cursor.Up, "Move selections one line up"},
	ActionMoveDown:  {kindMove, cursor.Down, "Move selections one line down"},

	ActionExtendLeft:  {kindExtend, cursor.Left, "Extend selections one character left"},
	ActionExtendRight: {kindExtend, cursor.Right, "Extend selections one character right"},
	ActionExtendUp:    {kindExtend, cursor.Up, "Extend selections one line up"},
	ActionExtendDown:  {kindExtend, cursor.Down, "Extend selections one line down"},

	ActionGotoStart:     {kindGoto, cursor.Start, "Go to the start of the buffer"},
	ActionGotoEnd:       {kindGoto, cursor.End, "Go to the end of the buffer"},
	ActionGotoLineStart: {kindGoto, cursor.LineStart, "Go to the start of the line"},
	ActionGotoLineEnd:   {kindGoto, cursor.LineEnd, "Go to the end of the line"},

	ActionExtendStart:     {kindExtend, cursor.Start, "Extend selections to the start of the buffer"},
	ActionExtendEnd:       {kindExtend, cursor.End, "Extend selections to the end of the buffer"},
	ActionExtendLineStart: {kindExtend, cursor.LineStart, "Extend selections to the start of the line"},
	ActionExtendLineEnd:   {kindExtend, cursor.LineEnd, "Extend selections to the end of the line"},

	"extend-goto-start":         {kindExtend, cursor.Start, "Alias of extend-start"},
	"extend-goto-end":           {kindExtend, cursor.End, "Alias of extend-end"},
	"extend-goto-start-of-line": {kindExtend, cursor.LineStart, "Alias of extend-start-of-line"},
	"extend-goto-end-of-line":   {kindExtend, cursor.LineEnd, "Alias of extend-end-of-line"},
}

// Handler implements the motion commands.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// Actions lists the motion commands.
func (h *Handler) Actions() []handler.ActionInfo {
	return sortedInfo(motions, func(m motion) string { return m.description })
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	_, ok := motions[actionName]
	return ok
}

// HandleAction applies the motion to every selection of the active view.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	m, ok := motions[action.Name]
	if !ok {
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	err := ctx.MapSelections(func(sel cursor.Selection, buf *buffer.Buffer) cursor.Selection {
		switch m.kind {
		case kindExtend:
			return cursor.Extend(sel, buf, m.fn)
		case kindGoto:
			return cursor.Goto(sel, buf, m.fn)
		default:
			return cursor.Move(sel, buf, m.fn)
		}
	})
	return handler.FromError(err)
}
