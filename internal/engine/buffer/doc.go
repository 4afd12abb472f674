// Package buffer provides the text buffer used by the editor engine.
//
// A Buffer wraps a rope with an identity, a display name, an optional
// file path and a dirty flag. All offsets are rune offsets. Text is held
// with "\n" line endings internally; the line ending detected on load is
// restored by Contents when the buffer is written back out.
//
// Multi-cursor edits are applied as a batch through Apply, which takes
// non-overlapping edits in ascending order and returns the inverse batch
// so callers can record it for undo.
package buffer
