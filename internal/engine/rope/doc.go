// Package rope provides an immutable rope for buffer text storage.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache per-child summaries (rune, byte and newline counts).
// All public offsets are rune offsets, so callers index text by character
// rather than by byte.
//
// Edits return a new Rope and never modify the receiver, which makes
// snapshots free:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")   // "hello, world"
//	r = r.Delete(0, 7)     // "world"
//
// Insert, Delete, Slice and line lookups are O(log n).
package rope
