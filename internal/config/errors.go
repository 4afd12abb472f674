package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrParse indicates a settings file that is not valid TOML or has
	// keys the editor does not know.
	ErrParse = errors.New("parse error")

	// ErrInvalidSetting indicates a setting with an out-of-range value.
	ErrInvalidSetting = errors.New("invalid setting")
)

// ParseError represents an error while parsing a settings file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrParse for every parse error.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
