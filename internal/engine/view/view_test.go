package view

import (
	"testing"

	"github.com/dshills/spiral/internal/engine/cursor"
)

func TestNew(t *testing.T) {
	v := New(3, 1, "normal")
	if v.ID() != 3 || v.Buffer() != 1 || v.Mode() != "normal" {
		t.Errorf("New = id %d buffer %d mode %q", v.ID(), v.Buffer(), v.Mode())
	}
	if got := v.Selections(); len(got) != 1 || got[0] != cursor.NewCursor(0) {
		t.Errorf("Selections() = %v, want one cursor at 0", got)
	}
}

func TestSelectionsAreCopies(t *testing.T) {
	v := New(1, 1, "normal")
	v.SetSelections([]cursor.Selection{cursor.NewSelection(1, 2)}, 10)

	got := v.Selections()
	got[0].Start = 7
	if v.Primary().Start != 1 {
		t.Errorf("mutating a snapshot changed the view: %v", v.Primary())
	}
}

func TestSetSelectionsClamps(t *testing.T) {
	v := New(1, 1, "normal")
	v.SetSelections([]cursor.Selection{{Start: -4, End: 99, Direction: cursor.Back}}, 5)

	want := cursor.Selection{Start: 0, End: 5, Direction: cursor.Back}
	if got := v.Primary(); got != want {
		t.Errorf("Primary() = %v, want %v", got, want)
	}

	v.SetSelections(nil, 5)
	if got := v.Selections(); len(got) != 1 || got[0] != cursor.NewCursor(0) {
		t.Errorf("empty SetSelections = %v, want one cursor at 0", got)
	}
}
