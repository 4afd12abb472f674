package key

import "strings"

// Sequence is an ordered series of key events forming a chord.
type Sequence []Event

// String returns the sequence in chord notation, e.g. "g g".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if both sequences hold the same events.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if prefix is a prefix of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return len(prefix) <= len(s) && s[:len(prefix)].Equals(prefix)
}

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	return append(Sequence(nil), s...)
}
