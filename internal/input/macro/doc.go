// Package macro records key events into named registers and replays
// them.
//
// A Recorder is an input hook: while recording it captures every key
// the input handler sees. A stop typed at the keyboard drops the chord
// or command line that asked for it, so a macro never replays its own
// stop command. Registers are the letters a-z and the digits 0-9; an
// upper case letter appends to its lower case register.
//
// Replay feeds the recorded keys back through a caller supplied
// function, normally the session's key handler, so a replayed macro
// resolves against the bindings in effect when it is played.
package macro
