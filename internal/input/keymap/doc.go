// Package keymap maps key sequences to command invocations, scoped by mode.
//
// Each mode owns a trie keyed by key events. Bindings registered under
// the global scope ("") are visible in every mode unless a mode-specific
// binding exists on the same prefix.
//
// # Resolution
//
// A Resolver accumulates key presses into a pending chord:
//
//	r := keymap.NewResolver(table)
//	res := r.Feed(ev, "normal")
//	switch res.Status {
//	case keymap.StatusMatched:
//	    // run res.Binding.Invocations
//	case keymap.StatusPending:
//	    // wait for more keys
//	case keymap.StatusNoMatch:
//	    // res.Fallback may name a command to run with the key
//	}
//
// An exact match clears the pending chord. A strict prefix waits. Anything
// else clears the chord silently.
package keymap
