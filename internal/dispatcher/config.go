package dispatcher

// DefaultMaxDepth is the default limit on nested dispatch.
const DefaultMaxDepth = 64

// Config holds dispatcher configuration options.
type Config struct {
	// MaxDepth limits nested dispatch. Zero means DefaultMaxDepth.
	MaxDepth int

	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         DefaultMaxDepth,
		EnableMetrics:    false,
		RecoverFromPanic: true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithMaxDepth returns a copy of the config with the depth limit set.
func (c Config) WithMaxDepth(depth int) Config {
	c.MaxDepth = depth
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}
