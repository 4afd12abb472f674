package history

import (
	"errors"

	"github.com/dshills/spiral/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// History manages undo/redo state for one buffer.
type History struct {
	undoStack []*Transaction
	redoStack []*Transaction

	groupDepth int
	group      *Transaction

	maxEntries int
}

// New creates a history keeping at most maxEntries undo units.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an applied transaction and clears the redo stack.
// While a group is open the transaction is merged into it.
func (h *History) Push(tx *Transaction) {
	h.redoStack = nil
	if h.groupDepth > 0 {
		if h.group == nil {
			h.group = tx
		} else {
			h.group.merge(tx)
		}
		return
	}
	h.push(tx)
}

func (h *History) push(tx *Transaction) {
	h.undoStack = append(h.undoStack, tx)
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// flush moves the edits of an open group onto the undo stack. Edits made
// later in the same group start a new unit.
func (h *History) flush() {
	if h.group != nil {
		h.push(h.group)
		h.group = nil
	}
}

// Undo reverts the latest transaction on buf and returns it so the caller
// can restore Before. Edits already recorded in an open group form the
// latest transaction.
func (h *History) Undo(buf *buffer.Buffer) (*Transaction, error) {
	h.flush()
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	tx := h.undoStack[len(h.undoStack)-1]
	if err := tx.undo(buf); err != nil {
		return nil, err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, tx)
	return tx, nil
}

// Redo replays the latest undone transaction on buf and returns it so
// the caller can restore After.
func (h *History) Redo(buf *buffer.Buffer) (*Transaction, error) {
	h.flush()
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	tx := h.redoStack[len(h.redoStack)-1]
	if err := tx.redo(buf); err != nil {
		return nil, err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, tx)
	return tx, nil
}

// BeginGroup opens an undo group. Groups nest; only the outermost
// EndGroup records the combined transaction.
func (h *History) BeginGroup() {
	h.groupDepth++
}

// EndGroup closes an undo group.
func (h *History) EndGroup() {
	if h.groupDepth == 0 {
		return
	}
	h.groupDepth--
	if h.groupDepth == 0 {
		h.flush()
	}
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo units available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo units available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear drops all history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.group = nil
	h.groupDepth = 0
}
