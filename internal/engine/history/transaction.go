package history

import (
	"time"

	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/engine/view"
)

// Selections records the selections of each view over a buffer.
type Selections map[view.ID][]cursor.Selection

// Clone returns a deep copy.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for id, sels := range s {
		out[id] = append([]cursor.Selection(nil), sels...)
	}
	return out
}

// Step is one applied edit batch and its inverse.
type Step struct {
	Edits   []buffer.Edit
	Inverse []buffer.Edit
}

// Transaction is one undo unit.
type Transaction struct {
	Name      string
	Steps     []Step
	Before    Selections
	After     Selections
	Timestamp time.Time

	// RevBefore and RevAfter are the buffer revisions around the unit.
	RevBefore uint64
	RevAfter  uint64
}

// NewTransaction creates a single-step transaction.
func NewTransaction(name string, edits, inverse []buffer.Edit, before, after Selections) *Transaction {
	return &Transaction{
		Name:      name,
		Steps:     []Step{{Edits: edits, Inverse: inverse}},
		Before:    before,
		After:     after,
		Timestamp: time.Now(),
	}
}

// undo applies the inverse steps in reverse order.
func (t *Transaction) undo(buf *buffer.Buffer) error {
	for i := len(t.Steps) - 1; i >= 0; i-- {
		if _, err := buf.Apply(t.Steps[i].Inverse); err != nil {
			return err
		}
	}
	buf.SetRevision(t.RevBefore)
	return nil
}

// redo replays the forward steps in order.
func (t *Transaction) redo(buf *buffer.Buffer) error {
	for _, step := range t.Steps {
		if _, err := buf.Apply(step.Edits); err != nil {
			return err
		}
	}
	buf.SetRevision(t.RevAfter)
	return nil
}

// merge folds other into t. t keeps its Before; other's After wins.
func (t *Transaction) merge(other *Transaction) {
	t.Steps = append(t.Steps, other.Steps...)
	if t.Before == nil {
		t.Before = make(Selections, len(other.Before))
	}
	for id, sels := range other.Before {
		if _, ok := t.Before[id]; !ok {
			t.Before[id] = sels
		}
	}
	t.After = other.After
	t.RevAfter = other.RevAfter
}
