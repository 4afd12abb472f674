// Package history provides undo/redo for a buffer.
//
// Every applied edit batch is recorded as a Transaction holding the
// forward edits, their inverse, and the selections of every view over
// the buffer immediately before and after the batch. Undo applies the
// inverse and hands back the transaction so the caller can restore the
// before-selections; redo replays the forward edits and restores the
// after-selections.
//
// Pushing a new transaction clears the redo stack.
//
// Several batches can be recorded as one undo unit:
//
//	h.BeginGroup("script")
//	// ... edits ...
//	h.EndGroup()
package history
