// Package lua provides the sandboxed Lua runtime the config script runs in.
//
// State wraps a gopher-lua LState with the safe standard libraries
// only, a whitelisted require, and a per-call execution timeout:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoString(script, "config.lua"); err != nil {
//	    return err
//	}
//
// Every error raised by Lua code is returned wrapping ErrScriptError, so
// callers can tell script failures from editor failures with errors.Is.
//
// A State is not safe for concurrent use. The session touches it only
// from its own goroutine, and calls may nest: a Go function called from
// Lua may call back into Lua on the same State.
package lua
