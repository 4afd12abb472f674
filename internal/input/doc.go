// Package input turns key presses into actions for the dispatcher.
//
// A Handler routes each key event to one of two places. While the command
// line has focus, keys edit that line and enter yields an exec action for
// the typed text. Otherwise keys feed the chord resolver of the keymap
// package, and a completed chord yields the invocations bound to it. A
// single printable key that matches nothing yields the mode's fallback
// command, if one is set.
//
// Hooks observe key events and the resulting actions, and may consume
// events before they are resolved.
package input
