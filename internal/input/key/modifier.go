package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key.
	ModMeta

	// ModSuper indicates the Super key (Cmd on macOS, Win on Windows).
	ModSuper

	// ModHyper indicates the Hyper key.
	ModHyper
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// modifierOrder fixes the order prefixes are written in.
var modifierOrder = []struct {
	mod    Modifier
	prefix string
}{
	{ModCtrl, "C"},
	{ModAlt, "A"},
	{ModMeta, "M"},
	{ModSuper, "Su"},
	{ModHyper, "H"},
	{ModShift, "S"},
}

// modifierPrefixes maps chord prefixes to modifiers.
// Prefixes are case-sensitive outside Vim-style brackets.
var modifierPrefixes = map[string]Modifier{
	"C":  ModCtrl,
	"A":  ModAlt,
	"S":  ModShift,
	"M":  ModMeta,
	"Su": ModSuper,
	"H":  ModHyper,
}

func lookupModifier(prefix string, bracketed bool) (Modifier, bool) {
	if mod, ok := modifierPrefixes[prefix]; ok {
		return mod, true
	}
	if !bracketed {
		return ModNone, false
	}
	switch strings.ToLower(prefix) {
	case "c":
		return ModCtrl, true
	case "a":
		return ModAlt, true
	case "s":
		return ModShift, true
	case "m":
		return ModMeta, true
	case "d", "su":
		return ModSuper, true
	case "h":
		return ModHyper, true
	}
	return ModNone, false
}

// String returns the modifiers in chord prefix form, like "C-A-".
func (m Modifier) String() string {
	var sb strings.Builder
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			sb.WriteString(o.prefix)
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
