package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrBufferNotFound indicates no buffer has the requested id.
	ErrBufferNotFound = errors.New("buffer not found")

	// ErrViewNotFound indicates no view has the requested id.
	ErrViewNotFound = errors.New("view not found")

	// ErrNoActiveView indicates an operation needs an active view and there is none.
	ErrNoActiveView = errors.New("no active view")

	// ErrEditsOverlap indicates a batch contains overlapping replacements.
	ErrEditsOverlap = errors.New("edits overlap")
)
