package input

import "github.com/dshills/spiral/internal/input/key"

// Hook allows interception of input handling.
type Hook interface {
	// PreKeyEvent is called before a key event is processed.
	// Return true to consume the event.
	PreKeyEvent(event key.Event, mode string) bool

	// PostKeyEvent is called with the outcome of a processed event.
	PostKeyEvent(event key.Event, outcome Outcome)
}

// FuncHook adapts functions to the Hook interface. Nil functions are
// skipped.
type FuncHook struct {
	PreKeyEventFunc  func(event key.Event, mode string) bool
	PostKeyEventFunc func(event key.Event, outcome Outcome)
}

// PreKeyEvent calls PreKeyEventFunc if set.
func (h FuncHook) PreKeyEvent(event key.Event, mode string) bool {
	if h.PreKeyEventFunc != nil {
		return h.PreKeyEventFunc(event, mode)
	}
	return false
}

// PostKeyEvent calls PostKeyEventFunc if set.
func (h FuncHook) PostKeyEvent(event key.Event, outcome Outcome) {
	if h.PostKeyEventFunc != nil {
		h.PostKeyEventFunc(event, outcome)
	}
}

// LoggingHook logs input events and the actions they produce.
type LoggingHook struct {
	Logger func(format string, args ...any)
}

// PreKeyEvent logs the key event.
func (h LoggingHook) PreKeyEvent(event key.Event, mode string) bool {
	if h.Logger != nil {
		h.Logger("key event: %s (mode=%s)", event, mode)
	}
	return false
}

// PostKeyEvent logs the resulting actions.
func (h LoggingHook) PostKeyEvent(event key.Event, outcome Outcome) {
	if h.Logger == nil {
		return
	}
	for _, a := range outcome.Actions {
		h.Logger("-> action: %s (source=%s)", a, a.Source)
	}
}
