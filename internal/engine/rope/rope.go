package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope of text indexed by rune offset.
// Operations return new Rope values; the original is never modified.
type Rope struct {
	root *Node
}

// Point is a 0-indexed line/column position. Column counts runes.
type Point struct {
	Line   int
	Column int
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from everything readable from r.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// buildFromChunks builds a balanced rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		nodes = append(nodes, newLeafNodeWithChunks(leafChunks))
	}

	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}
	return Rope{root: nodes[0]}
}

// Len returns the rune length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// ByteLen returns the UTF-8 byte length.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// String returns the full text.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in the rune range [start, end).
// The range is clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clampRange(start, end)
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// RuneAt returns the rune at offset.
func (r Rope) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	s := r.Slice(offset, offset+1)
	for _, c := range s {
		return c, true
	}
	return 0, false
}

// Insert inserts text at the given rune offset.
func (r Rope) Insert(offset int, text string) Rope {
	return r.Replace(offset, offset, text)
}

// Delete removes the rune range [start, end).
func (r Rope) Delete(start, end int) Rope {
	return r.Replace(start, end, "")
}

// Replace replaces the rune range [start, end) with text.
func (r Rope) Replace(start, end int, text string) Rope {
	start, end = r.clampRange(start, end)
	if start == end && text == "" {
		return r
	}
	if r.root == nil {
		return FromString(text)
	}

	left, rest := r.root.split(start)
	_, right := rest.split(end - start)
	if text != "" {
		left = concat(left, FromString(text).root)
	}
	return Rope{root: concat(left, right)}.balanced()
}

// Split splits the rope at offset.
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil {
		return New(), New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates another rope to this one.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: concat(r.root, other.root)}.balanced()
}

// LineStartOffset returns the rune offset of the start of line.
// Lines past the end map to Len.
func (r Rope) LineStartOffset(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.newlineOffset(line-1) + 1
}

// LineEndOffset returns the rune offset of the end of line, which is the
// offset of its newline or Len for the last line.
func (r Rope) LineEndOffset(line int) int {
	if r.root == nil {
		return 0
	}
	if line < 0 {
		line = 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.root.newlineOffset(line)
}

// LineText returns the text of line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// LineOf returns the line containing offset.
func (r Rope) LineOf(offset int) int {
	if r.root == nil {
		return 0
	}
	offset, _ = r.clampRange(offset, offset)
	return r.root.newlinesBefore(offset)
}

// OffsetToPoint converts a rune offset to a line/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	offset, _ = r.clampRange(offset, offset)
	line := r.LineOf(offset)
	return Point{Line: line, Column: offset - r.LineStartOffset(line)}
}

// PointToOffset converts a line/column position to a rune offset.
// The column is clamped to the line's length.
func (r Rope) PointToOffset(p Point) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= r.LineCount() {
		return r.Len()
	}
	start := r.LineStartOffset(p.Line)
	end := r.LineEndOffset(p.Line)
	return start + min(max(p.Column, 0), end-start)
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height)
}

// Equals reports whether both ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Summary() != other.Summary() {
		return false
	}
	return r.String() == other.String()
}

func (r Rope) clampRange(start, end int) (int, int) {
	n := r.Len()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return start, end
}

// balanced rebuilds the tree when repeated edits have left it much
// taller than a freshly built tree of the same size.
func (r Rope) balanced() Rope {
	if r.root == nil || r.root.height < 4 {
		return r
	}
	leaves := r.root.summary.Bytes/(TargetChunkSize*MaxChunksPerLeaf) + 1
	ideal := 1
	for n := MaxChildren; n < leaves; n *= MaxChildren {
		ideal++
	}
	if int(r.root.height) <= 2*ideal+2 {
		return r
	}
	return buildFromChunks(r.root.collectChunks(nil))
}
