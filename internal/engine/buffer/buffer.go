package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/spiral/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid = errors.New("invalid range")
	ErrEditsOverlap = errors.New("edits overlap or are not in ascending order")
)

// ID identifies a buffer for the lifetime of the process.
type ID uint64

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer wraps a Rope with editor metadata.
// Buffers are owned by the session and mutated from a single goroutine.
type Buffer struct {
	id         ID
	name       string
	path       string
	rope       rope.Rope
	lineEnding LineEnding
	revision   uint64
	saved      uint64
	clock      uint64
}

// New creates a buffer holding text.
func New(id ID, text string, opts ...Option) *Buffer {
	b := &Buffer{id: id}
	for _, opt := range opts {
		opt(b)
	}
	b.rope = rope.FromString(NormalizeLineEndings(text))
	return b
}

// NewFromReader creates a buffer from r, detecting its line ending.
func NewFromReader(id ID, r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read buffer: %w", err)
	}
	text := string(data)
	opts = append([]Option{WithLineEnding(DetectLineEnding(text))}, opts...)
	return New(id, text, opts...), nil
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ID returns the buffer's identity.
func (b *Buffer) ID() ID { return b.id }

// Name returns the display name, falling back to the path or a scratch label.
func (b *Buffer) Name() string {
	switch {
	case b.name != "":
		return b.name
	case b.path != "":
		return b.path
	default:
		return fmt.Sprintf("[scratch %d]", b.id)
	}
}

// Path returns the associated file path, if any.
func (b *Buffer) Path() string { return b.path }

// SetPath associates the buffer with a file path.
func (b *Buffer) SetPath(path string) { b.path = path }

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// Contents returns the text with the buffer's line ending restored,
// suitable for writing to disk.
func (b *Buffer) Contents() string {
	text := b.rope.String()
	if b.lineEnding == LineEndingLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", b.lineEnding.Sequence())
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextRange(start, end int) string {
	return b.rope.Slice(start, end)
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return b.rope.Len()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// LineText returns line without its newline.
func (b *Buffer) LineText(line int) string {
	return b.rope.LineText(line)
}

// LineOf returns the line containing offset.
func (b *Buffer) LineOf(offset int) int {
	return b.rope.LineOf(offset)
}

// LineStartOffset returns the offset of the first rune of line.
func (b *Buffer) LineStartOffset(line int) int {
	return b.rope.LineStartOffset(line)
}

// LineEndOffset returns the offset of line's newline, or Len on the last line.
func (b *Buffer) LineEndOffset(line int) int {
	return b.rope.LineEndOffset(line)
}

// RuneAt returns the rune at offset.
func (b *Buffer) RuneAt(offset int) (rune, bool) {
	return b.rope.RuneAt(offset)
}

// Rope returns the current immutable text.
func (b *Buffer) Rope() rope.Rope {
	return b.rope
}

// Revision identifies the buffer's content. Every applied batch gets a
// revision never used before; SetRevision moves back to an earlier one.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// SetRevision labels the current content with a revision it had before.
// Undo uses it so returning to saved text clears Modified.
func (b *Buffer) SetRevision(rev uint64) {
	b.revision = rev
}

// Modified reports whether the buffer's revision differs from the one
// recorded by MarkSaved.
func (b *Buffer) Modified() bool {
	return b.revision != b.saved
}

// MarkSaved records the current revision as persisted.
func (b *Buffer) MarkSaved() {
	b.saved = b.revision
}

// Apply applies edits atomically. Edits must be non-overlapping and in
// ascending order of offset, expressed in pre-edit coordinates.
// It returns the inverse batch, also ascending, in post-edit coordinates.
func (b *Buffer) Apply(edits []Edit) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	n := b.rope.Len()
	for i, edit := range edits {
		if edit.Range.Start < 0 || !edit.Range.IsValid() || edit.Range.End > n {
			return nil, fmt.Errorf("%w: %s", ErrRangeInvalid, edit.Range)
		}
		if i > 0 && edit.Range.Start < edits[i-1].Range.End {
			return nil, ErrEditsOverlap
		}
	}

	inverse := make([]Edit, len(edits))
	delta := 0
	for i, edit := range edits {
		text := NormalizeLineEndings(edit.NewText)
		start := edit.Range.Start + delta
		newLen := Edit{NewText: text}.NewLen()
		inverse[i] = Edit{
			Range:   Range{Start: start, End: start + newLen},
			NewText: b.rope.Slice(edit.Range.Start, edit.Range.End),
		}
		delta += newLen - edit.Range.Len()
	}

	r := b.rope
	for i := len(edits) - 1; i >= 0; i-- {
		edit := edits[i]
		r = r.Replace(edit.Range.Start, edit.Range.End, NormalizeLineEndings(edit.NewText))
	}
	b.rope = r
	b.clock++
	b.revision = b.clock
	return inverse, nil
}

// Replace replaces [start, end) with text.
func (b *Buffer) Replace(start, end int, text string) error {
	_, err := b.Apply([]Edit{NewEdit(Range{Start: start, End: end}, text)})
	return err
}
