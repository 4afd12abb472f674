package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrCommandNotFound indicates no command is registered under a name.
	ErrCommandNotFound = errors.New("command not found")

	// ErrRecursionLimit indicates dispatch nested deeper than Config.MaxDepth.
	ErrRecursionLimit = errors.New("command recursion limit reached")

	// ErrActionCancelled indicates the action was cancelled by a hook.
	ErrActionCancelled = errors.New("action cancelled by hook")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("handler panic")

	// ErrInvalidCommand indicates an empty or malformed command name.
	ErrInvalidCommand = errors.New("invalid command")
)
