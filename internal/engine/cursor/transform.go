package cursor

import "github.com/dshills/spiral/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// MapOffset maps an offset through a batch of non-overlapping edits given
// in ascending order in pre-edit coordinates.
//
//   - before an edit: unchanged by it
//   - at or after its end: shifted by the edit's delta
//   - inside a replaced range: kept at the same distance from the start,
//     capped at the end of the replacement
//
// A pure insertion at the offset pushes the offset forward.
func MapOffset(offset int, edits []Edit) int {
	delta := 0
	for _, e := range edits {
		switch {
		case offset >= e.Range.End:
			delta += e.Delta()
		case offset < e.Range.Start:
			return offset + delta
		default:
			return e.Range.Start + delta + min(offset-e.Range.Start, e.NewLen())
		}
	}
	return offset + delta
}

// MapSelection maps both ends of s through edits and clamps to n, the
// post-edit buffer length.
func MapSelection(s Selection, edits []Edit, n int) Selection {
	s.Start = MapOffset(s.Start, edits)
	s.End = MapOffset(s.End, edits)
	return s.Clamp(n)
}

// MapSelections maps every selection through edits.
func MapSelections(sels []Selection, edits []Edit, n int) []Selection {
	out := make([]Selection, len(sels))
	for i, s := range sels {
		out[i] = MapSelection(s, edits, n)
	}
	return out
}
