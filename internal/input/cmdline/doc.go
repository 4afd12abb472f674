// Package cmdline implements the one-line editor used by command mode.
//
// The editor holds a rune buffer and a cursor. Executed lines are kept in
// a bounded history that up/down walk through; the line being typed is
// restored when walking past the newest entry.
package cmdline
