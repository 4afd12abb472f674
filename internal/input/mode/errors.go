package mode

import "errors"

var (
	// ErrInvalidName is returned for an empty mode name or one
	// containing whitespace.
	ErrInvalidName = errors.New("invalid mode name")

	// ErrStackEmpty is returned when popping with nothing pushed.
	ErrStackEmpty = errors.New("mode stack is empty")
)
