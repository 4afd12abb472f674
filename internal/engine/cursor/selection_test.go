package cursor

import (
	"testing"

	"github.com/dshills/spiral/internal/engine/buffer"
)

func TestHeadAnchor(t *testing.T) {
	tests := []struct {
		sel          Selection
		head, anchor int
	}{
		{Selection{Start: 2, End: 5}, 5, 2},
		{Selection{Start: 2, End: 5, Direction: Back}, 2, 5},
		{Selection{Start: 7, End: 3}, 3, 7},
		{FromAnchorHead(4, 1), 1, 4},
		{FromAnchorHead(1, 4), 4, 1},
	}
	for _, tt := range tests {
		if got := tt.sel.Head(); got != tt.head {
			t.Errorf("%v Head() = %d, want %d", tt.sel, got, tt.head)
		}
		if got := tt.sel.Anchor(); got != tt.anchor {
			t.Errorf("%v Anchor() = %d, want %d", tt.sel, got, tt.anchor)
		}
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		sel  Selection
		n    int
		want buffer.Range
	}{
		{NewCursor(1), 5, buffer.Range{Start: 1, End: 2}},
		{NewCursor(5), 5, buffer.Range{Start: 5, End: 5}},
		{NewSelection(1, 3), 5, buffer.Range{Start: 1, End: 4}},
		{Selection{Start: 3, End: 1}, 5, buffer.Range{Start: 1, End: 4}},
		{NewSelection(2, 9), 5, buffer.Range{Start: 2, End: 5}},
	}
	for _, tt := range tests {
		if got := tt.sel.Range(tt.n); got != tt.want {
			t.Errorf("%v Range(%d) = %v, want %v", tt.sel, tt.n, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	got := Selection{Start: -3, End: 40, Direction: Back}.Clamp(10)
	want := Selection{Start: 0, End: 10, Direction: Back}
	if got != want {
		t.Errorf("Clamp = %v, want %v", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"forward", "back"} {
		d, ok := ParseDirection(s)
		if !ok || d.String() != s {
			t.Errorf("ParseDirection(%q) = %v, %v", s, d, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestMapOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		edits  []Edit
		want   int
	}{
		{"before insert", 1, []Edit{buffer.NewInsert(3, "xy")}, 1},
		{"at insert", 3, []Edit{buffer.NewInsert(3, "xy")}, 5},
		{"after delete", 6, []Edit{buffer.NewDelete(1, 3)}, 4},
		{"inside delete", 2, []Edit{buffer.NewDelete(1, 3)}, 1},
		{"inside replace", 3, []Edit{buffer.NewEdit(buffer.NewRange(1, 5), "abc")}, 3},
		{"inside replace capped", 4, []Edit{buffer.NewEdit(buffer.NewRange(1, 5), "a")}, 2},
		{"batch", 9, []Edit{buffer.NewDelete(0, 1), buffer.NewInsert(4, "zz"), buffer.NewDelete(6, 8)}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapOffset(tt.offset, tt.edits); got != tt.want {
				t.Errorf("MapOffset(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestMoveRightLeftRestores(t *testing.T) {
	buf := buffer.New(1, "hello\nworld")
	n := buf.Len()

	for start := 0; start < n; start++ {
		for end := start; end < n; end++ {
			for _, dir := range []Direction{Forward, Back} {
				sel := Selection{Start: start, End: end, Direction: dir}
				got := Move(Move(sel, buf, Right), buf, Left)
				if got != sel {
					t.Fatalf("right/left from %v = %v", sel, got)
				}
			}
		}
	}
}

func TestMoveClampsAtBounds(t *testing.T) {
	buf := buffer.New(1, "abc")

	if got := Move(NewCursor(0), buf, Left); got != NewCursor(0) {
		t.Errorf("move left at 0 = %v, want cursor at 0", got)
	}
	if got := Move(NewCursor(3), buf, Right); got != NewCursor(3) {
		t.Errorf("move right at end = %v, want cursor at 3", got)
	}
	wide := NewSelection(1, 3)
	if got := Move(wide, buf, Right); got != wide {
		t.Errorf("move right with end at length = %v, want unchanged %v", got, wide)
	}
}

func TestExtendTouchesOnlyHead(t *testing.T) {
	buf := buffer.New(1, "abcdefgh")

	for start := 0; start <= buf.Len(); start++ {
		for end := start; end <= buf.Len(); end++ {
			fwd := Selection{Start: start, End: end}
			got := Extend(fwd, buf, Right)
			if got.Start != start {
				t.Fatalf("extend right changed start: %v -> %v", fwd, got)
			}
			if want := min(end+1, buf.Len()); got.End != want {
				t.Fatalf("extend right end = %d, want %d", got.End, want)
			}

			back := Selection{Start: start, End: end, Direction: Back}
			got = Extend(back, buf, Left)
			if got.End != end {
				t.Fatalf("extend left changed end: %v -> %v", back, got)
			}
			if want := max(start-1, 0); got.Start != want {
				t.Fatalf("extend left start = %d, want %d", got.Start, want)
			}
		}
	}
}

func TestVerticalMotion(t *testing.T) {
	buf := buffer.New(1, "abcdef\nxy\nlonger line")

	tests := []struct {
		name   string
		head   int
		motion Motion
		want   int
	}{
		{"down clamps column", 5, Down, 9},
		{"down keeps column", 1, Down, 8},
		{"up from second line", 8, Up, 1},
		{"up on first line stays", 3, Up, 3},
		{"down on last line stays", 12, Down, 12},
		{"line start", 12, LineStart, 10},
		{"line end", 11, LineEnd, 21},
		{"line end of first", 2, LineEnd, 6},
	}
	for _, tt := range tests {
		if got := tt.motion(buf, tt.head); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGotoCollapses(t *testing.T) {
	buf := buffer.New(1, "one\ntwo")
	sel := Selection{Start: 1, End: 5, Direction: Back}

	if got := Goto(sel, buf, End); got.Start != 7 || got.End != 7 {
		t.Errorf("Goto(End) = %v, want collapsed at 7", got)
	}
	if got := Extend(sel, buf, LineStart); got.Start != 0 || got.End != 5 {
		t.Errorf("Extend(LineStart) = %v, want {0 5}", got)
	}
}

func TestToLines(t *testing.T) {
	buf := buffer.New(1, "first line\nsecond line\nthird")

	sel := Selection{Start: 4, End: 15, Direction: Back}
	got := ToLines(sel, buf)
	want := Selection{Start: 0, End: 22, Direction: Forward}
	if got != want {
		t.Errorf("ToLines(%v) = %v, want %v", sel, got, want)
	}

	last := ToLines(NewCursor(25), buf)
	if last.Start != 23 || last.End != 28 {
		t.Errorf("ToLines on last line = %v, want {23 28}", last)
	}
}

func TestWithAnchor(t *testing.T) {
	tests := []struct {
		sel    Selection
		anchor int
		want   Selection
	}{
		{NewSelection(2, 5), 0, Selection{Start: 0, End: 5}},
		{NewSelection(2, 5), 7, Selection{Start: 5, End: 7, Direction: Back}},
		{Selection{Start: 2, End: 5, Direction: Back}, 1, Selection{Start: 1, End: 2}},
		{NewCursor(3), 3, NewCursor(3)},
	}
	for _, tt := range tests {
		if got := tt.sel.WithAnchor(tt.anchor); got != tt.want {
			t.Errorf("%v WithAnchor(%d) = %v, want %v", tt.sel, tt.anchor, got, tt.want)
		}
	}
}
