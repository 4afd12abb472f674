// Package view provides the View type: an ordered set of selections over
// one buffer plus the view's current mode.
package view

import (
	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
)

// ID identifies a view for the lifetime of the process.
type ID uint64

// View references one buffer and owns its selections.
// A view always has at least one selection.
type View struct {
	id         ID
	buffer     buffer.ID
	selections []cursor.Selection
	mode       string
	scroll     int
}

// New creates a view over buf with a single cursor at 0.
func New(id ID, buf buffer.ID, mode string) *View {
	return &View{
		id:         id,
		buffer:     buf,
		selections: []cursor.Selection{cursor.NewCursor(0)},
		mode:       mode,
	}
}

// ID returns the view's identity.
func (v *View) ID() ID { return v.id }

// Buffer returns the id of the viewed buffer.
func (v *View) Buffer() buffer.ID { return v.buffer }

// Mode returns the view's current mode name.
func (v *View) Mode() string { return v.mode }

// SetMode sets the view's current mode name.
func (v *View) SetMode(mode string) { v.mode = mode }

// Scroll returns the first visible line.
func (v *View) Scroll() int { return v.scroll }

// SetScroll sets the first visible line.
func (v *View) SetScroll(line int) { v.scroll = max(line, 0) }

// Selections returns a copy of the view's selections.
func (v *View) Selections() []cursor.Selection {
	return append([]cursor.Selection(nil), v.selections...)
}

// Primary returns the first selection.
func (v *View) Primary() cursor.Selection {
	return v.selections[0]
}

// SetSelections replaces the selections with a copy of sels clamped to
// [0, n]. An empty slice leaves a single cursor at 0.
func (v *View) SetSelections(sels []cursor.Selection, n int) {
	if len(sels) == 0 {
		v.selections = []cursor.Selection{cursor.NewCursor(0)}
		return
	}
	out := make([]cursor.Selection, len(sels))
	for i, s := range sels {
		out[i] = s.Clamp(n)
	}
	v.selections = out
}

// AddSelection appends a selection clamped to [0, n].
func (v *View) AddSelection(s cursor.Selection, n int) {
	v.selections = append(v.selections, s.Clamp(n))
}
