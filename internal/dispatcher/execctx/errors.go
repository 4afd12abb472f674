package execctx

import (
	"errors"

	"github.com/dshills/spiral/internal/engine"
)

// Context validation errors.
var (
	// ErrMissingEngine indicates the engine is required but not set.
	ErrMissingEngine = errors.New("execution context: engine is required")

	// ErrMissingModeManager indicates the mode manager is required but not set.
	ErrMissingModeManager = errors.New("execution context: mode manager is required")

	// ErrMissingSession indicates the session is required but not set.
	ErrMissingSession = errors.New("execution context: session is required")

	// ErrNoActiveView indicates a command needs a view but none is active.
	ErrNoActiveView = engine.ErrNoActiveView

	// ErrNoSelections indicates the active view has no selections.
	ErrNoSelections = errors.New("execution context: no selections")

	// ErrMissingArgument indicates a command was called without a required argument.
	ErrMissingArgument = errors.New("execution context: missing argument")
)
