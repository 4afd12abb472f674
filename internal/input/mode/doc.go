// Package mode tracks editing modes.
//
// A mode is an open-ended name that scopes which key bindings are
// active. The built-in names are normal, insert, command and file-tree;
// scripts may switch to any other name. Modes carry no behavior of their
// own beyond display hints such as the cursor style.
//
// The Manager switches the mode of a Holder (normally the active view),
// keeps a per-holder stack for push/pop, and notifies callbacks with the
// old and new names on every change.
package mode
