package editor

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/input"
)

// Action names for kill ring operations.
const (
	ActionYank        = "yank"
	ActionPaste       = "paste"
	ActionPasteBefore = "paste-before"
	ActionRotate      = "rotate-kill-ring"
)

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// YankHandler handles yank and paste through a kill ring.
type YankHandler struct {
	ring *KillRing

	// clip mirrors the newest entry when set.
	clip Clipboard
}

// NewYankHandler creates a yank handler over ring. A nil clip keeps the
// kill ring private to the editor.
func NewYankHandler(ring *KillRing, clip Clipboard) *YankHandler {
	if ring == nil {
		ring = NewKillRing(DefaultKillRingSize)
	}
	return &YankHandler{ring: ring, clip: clip}
}

// Ring returns the kill ring.
func (h *YankHandler) Ring() *KillRing {
	return h.ring
}

// Namespace returns the editor namespace.
func (h *YankHandler) Namespace() string {
	return "editor"
}

// Actions lists the kill ring commands.
func (h *YankHandler) Actions() []handler.ActionInfo {
	return []handler.ActionInfo{
		{Name: ActionPaste, Description: "Paste the newest kill ring entry after every selection"},
		{Name: ActionPasteBefore, Description: "Paste the newest kill ring entry before every selection"},
		{Name: ActionRotate, Description: "Rotate the kill ring"},
		{Name: ActionYank, Description: "Copy the text of every selection to the kill ring"},
	}
}

// CanHandle returns true if this handler can process the action.
func (h *YankHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionYank, ActionPaste, ActionPasteBefore, ActionRotate:
		return true
	}
	return false
}

// HandleAction processes a kill ring action.
func (h *YankHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionYank:
		return h.yank(ctx)
	case ActionPaste:
		return h.paste(ctx, true)
	case ActionPasteBefore:
		return h.paste(ctx, false)
	case ActionRotate:
		if h.ring.Len() < 2 {
			return handler.NoOp()
		}
		h.ring.RotateForward()
		return handler.Success()
	default:
		return handler.Errorf("unknown yank action: %s", action.Name)
	}
}

// yank stores the effective text of each selection, in selection order.
func (h *YankHandler) yank(ctx *execctx.ExecutionContext) handler.Result {
	_, buf, sels, err := ctx.Selections()
	if err != nil {
		return handler.Error(err)
	}
	n := buf.Len()
	texts := make([]string, len(sels))
	for i, sel := range sels {
		r := sel.Range(n)
		texts[i] = buf.TextRange(r.Start, r.End)
	}
	h.ring.Push(texts)

	if h.clip != nil {
		if err := h.clip.WriteAll(strings.Join(texts, "\n")); err != nil {
			return handler.SuccessWithMessage(fmt.Sprintf("clipboard: %v", err))
		}
	}
	return handler.Success()
}

// paste inserts entry text i at selection i, after the effective range
// or before it.
func (h *YankHandler) paste(ctx *execctx.ExecutionContext, after bool) handler.Result {
	texts, ok := h.ring.Top()
	if !ok && h.clip != nil {
		if text, err := h.clip.ReadAll(); err == nil && text != "" {
			texts, ok = []string{text}, true
		}
	}
	if !ok {
		return handler.NoOpWithMessage("kill ring is empty")
	}

	_, buf, sels, err := ctx.Selections()
	if err != nil {
		return handler.Error(err)
	}
	n := buf.Len()
	texts = ForCursors(texts, len(sels))
	edits := make([]buffer.Edit, 0, len(sels))
	for i, sel := range sels {
		r := sel.Range(n)
		at := r.Start
		if after {
			at = r.End
		}
		edits = append(edits, buffer.NewInsert(at, texts[i]))
	}
	return handler.FromError(ctx.Engine.Apply(buf.ID(), ActionPaste, edits))
}
