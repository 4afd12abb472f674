package cursor

import (
	"fmt"

	"github.com/dshills/spiral/internal/engine/buffer"
)

// Direction names which end of a selection moves.
type Direction uint8

const (
	// Forward selections move End.
	Forward Direction = iota
	// Back selections move Start.
	Back
)

// String returns the script-facing name of the direction.
func (d Direction) String() string {
	if d == Back {
		return "back"
	}
	return "forward"
}

// ParseDirection parses "forward" or "back".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward", "fwd":
		return Forward, true
	case "back", "backward":
		return Back, true
	default:
		return Forward, false
	}
}

// Selection is a value-type range into a buffer.
type Selection struct {
	Start     int
	End       int
	Direction Direction
}

// NewCursor creates a zero-width forward selection at offset.
func NewCursor(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// NewSelection creates a forward selection from start to end.
func NewSelection(start, end int) Selection {
	return Selection{Start: start, End: end}
}

// FromAnchorHead creates a selection with the given anchor and head.
func FromAnchorHead(anchor, head int) Selection {
	if head < anchor {
		return Selection{Start: head, End: anchor, Direction: Back}
	}
	return Selection{Start: anchor, End: head}
}

// Head returns the moving end.
func (s Selection) Head() int {
	if s.Direction == Back {
		return s.Start
	}
	return s.End
}

// Anchor returns the fixed end.
func (s Selection) Anchor() int {
	if s.Direction == Back {
		return s.End
	}
	return s.Start
}

// WithHead returns the selection with its moving end set to offset.
func (s Selection) WithHead(offset int) Selection {
	if s.Direction == Back {
		s.Start = offset
	} else {
		s.End = offset
	}
	return s
}

// WithAnchor returns the selection with its fixed end set to offset. The
// head stays put; the direction follows whichever side the head is on.
func (s Selection) WithAnchor(offset int) Selection {
	return FromAnchorHead(offset, s.Head())
}

// Min returns the lower of the two offsets.
func (s Selection) Min() int {
	return min(s.Start, s.End)
}

// Max returns the higher of the two offsets.
func (s Selection) Max() int {
	return max(s.Start, s.End)
}

// IsCollapsed returns true if both ends are at the same offset.
func (s Selection) IsCollapsed() bool {
	return s.Start == s.End
}

// Range returns the effective half-open range for a buffer of length n:
// [Min, Max+1) clamped to n.
func (s Selection) Range(n int) buffer.Range {
	lo := min(max(s.Min(), 0), n)
	hi := min(s.Max()+1, n)
	return buffer.Range{Start: lo, End: max(hi, lo)}
}

// Collapse collapses the selection onto its head.
func (s Selection) Collapse() Selection {
	h := s.Head()
	s.Start, s.End = h, h
	return s
}

// Flip swaps the roles of head and anchor.
func (s Selection) Flip() Selection {
	if s.Direction == Back {
		s.Direction = Forward
	} else {
		s.Direction = Back
	}
	return s
}

// Clamp returns the selection with both offsets in [0, n].
func (s Selection) Clamp(n int) Selection {
	s.Start = min(max(s.Start, 0), n)
	s.End = min(max(s.End, 0), n)
	return s
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("{start:%d, end:%d, direction:%s}", s.Start, s.End, s.Direction)
}

// ClampAll clamps every selection to [0, n] in place.
func ClampAll(sels []Selection, n int) {
	for i := range sels {
		sels[i] = sels[i].Clamp(n)
	}
}
