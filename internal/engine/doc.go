// Package engine is the editing core: it owns every buffer and view and
// is the only place buffer text changes.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope for text storage (O(log n) operations)
//   - buffer: identity, metadata and batch edits over a rope
//   - cursor: the Selection value type and motions
//   - history: transaction-based undo/redo with selection restore
//   - view: selections and mode for one buffer
//
// # Edits
//
// Apply takes a batch of edits for one buffer. Afterwards the selections
// of every view over that buffer are mapped through the batch and clamped
// to the new length, and the batch is recorded for undo together with
// the selections from before and after it. Undo and Redo restore those
// selections as well as the text.
//
//	e := engine.New()
//	buf := e.CreateBuffer("ab\ncd")
//	v, _ := e.CreateView(buf.ID())
//	e.SetSelections(v.ID(), []cursor.Selection{cursor.NewCursor(1)})
//	e.Apply(buf.ID(), "delete", []buffer.Edit{buffer.NewDelete(1, 2)})
//	e.Undo(buf.ID()) // text and selection restored
//
// # Concurrency
//
// The engine is not safe for concurrent use. The session drives it from a
// single goroutine.
package engine
