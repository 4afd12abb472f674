// Package key provides key events and the chord notation used in bindings.
//
// A chord string is a whitespace-separated list of tokens. Each token is
// one key, optionally prefixed by modifiers:
//
//	"g g"        two plain keys
//	"spc f s"    leader-style prefix
//	"C-r"        control + r
//	"A-S-x"      alt + shift + x (the same as "A-X")
//	"<C-s>"      Vim-style brackets are accepted too
//
// Modifier prefixes are C- (control), A- (alt), S- (shift), M- (meta),
// Su- (super) and H- (hyper). Named keys include enter, tab, backtab,
// bspc, spc, esc, del, ins, home, end, pgup, pgdn, the arrows and f1-f12.
//
// Malformed chords fail with ErrInvalidKeyChord.
package key
