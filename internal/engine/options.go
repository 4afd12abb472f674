package engine

import "github.com/dshills/spiral/internal/engine/history"

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultMode           = "normal"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxUndoEntries sets the maximum number of undo units per buffer.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithDefaultMode sets the mode new views start in.
func WithDefaultMode(mode string) Option {
	return func(e *Engine) {
		if mode != "" {
			e.defaultMode = mode
		}
	}
}
