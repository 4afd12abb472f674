package key

import (
	"strings"
	"unicode"
)

// Event is a single key press. Events are comparable and normalized, so
// they can be used directly as map keys.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a normalized event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize()
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Normalize folds Shift into the character for letter keys, so "S-a",
// "A" and a terminal's shifted 'A' compare equal.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	if e.Modifiers.Has(ModShift) && unicode.IsLetter(e.Rune) {
		e.Rune = unicode.ToUpper(e.Rune)
		e.Modifiers = e.Modifiers.Without(ModShift)
	}
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true for an unmodified printable character, the kind
// of key that can be typed into text.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) &&
		!e.Modifiers.Has(ModCtrl|ModAlt|ModMeta|ModSuper|ModHyper)
}

// IsEscape returns true for a plain escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// String returns the event in chord token form, e.g. "C-r", "spc", "G".
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Modifiers.String())
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		sb.WriteString("spc")
	case e.Key == KeyRune:
		sb.WriteRune(e.Rune)
	default:
		sb.WriteString(e.Key.String())
	}
	return sb.String()
}
