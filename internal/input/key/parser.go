package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidKeyChord is returned for malformed chord strings.
var ErrInvalidKeyChord = errors.New("invalid key chord")

// Parse parses a single chord token such as "a", "C-r", "spc" or "<C-s>".
func Parse(token string) (Event, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Event{}, fmt.Errorf("%w: empty key", ErrInvalidKeyChord)
	}
	rest := token
	bracketed := len(token) > 2 && strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">")
	if bracketed {
		rest = token[1 : len(token)-1]
	}

	var mods Modifier
	for {
		idx := strings.IndexByte(rest, '-')
		if idx <= 0 || idx == len(rest)-1 {
			break
		}
		mod, ok := lookupModifier(rest[:idx], bracketed)
		if !ok {
			break
		}
		mods = mods.With(mod)
		rest = rest[idx+1:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		return NewRuneEvent(r, mods), nil
	}

	name := strings.ToLower(rest)
	if name == "spc" || name == "space" {
		return NewRuneEvent(' ', mods), nil
	}
	if k, ok := KeyFromName(name); ok {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKeyChord, rest, token)
}

// ParseSequence parses a whitespace-separated chord string.
func ParseSequence(chord string) (Sequence, error) {
	fields := strings.Fields(chord)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty chord", ErrInvalidKeyChord)
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, ev)
	}
	return seq, nil
}

// MustParseSequence is like ParseSequence but panics on error.
// Intended for tests and static tables.
func MustParseSequence(chord string) Sequence {
	seq, err := ParseSequence(chord)
	if err != nil {
		panic(err)
	}
	return seq
}
