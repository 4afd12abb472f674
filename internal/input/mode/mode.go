package mode

import (
	"fmt"
	"strings"
)

// Built-in mode names.
const (
	ModeNormal   = "normal"
	ModeInsert   = "insert"
	ModeCommand  = "command"
	ModeFileTree = "file-tree"
)

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Info describes how a mode is displayed.
type Info struct {
	Name        string
	DisplayName string
	CursorStyle CursorStyle
}

var builtins = map[string]Info{
	ModeNormal:   {Name: ModeNormal, DisplayName: "NORMAL", CursorStyle: CursorBlock},
	ModeInsert:   {Name: ModeInsert, DisplayName: "INSERT", CursorStyle: CursorBar},
	ModeCommand:  {Name: ModeCommand, DisplayName: "COMMAND", CursorStyle: CursorUnderline},
	ModeFileTree: {Name: ModeFileTree, DisplayName: "FILES", CursorStyle: CursorHidden},
}

// Lookup returns display info for name. Unknown modes display their
// upper-cased name with a block cursor.
func Lookup(name string) Info {
	if info, ok := builtins[name]; ok {
		return info
	}
	return Info{Name: name, DisplayName: strings.ToUpper(name), CursorStyle: CursorBlock}
}

// Validate checks that name can be used as a mode.
func Validate(name string) error {
	if name == "" || strings.ContainsFunc(name, isSpace) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
