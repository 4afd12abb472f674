// Package dispatcher registers commands and executes them by name.
//
// Built-in commands (Go handlers) and script commands (Lua functions
// wrapped in a handler) share one registry and one invocation contract:
// a command receives an input.Action carrying its raw argument string and
// an ExecutionContext, and returns a handler.Result.
//
// # Execution
//
// Execute is synchronous and re-entrant. A command may call back into the
// dispatcher through its context (composite commands, exec, scripts).
// Nesting is capped by Config.MaxDepth so a self-recursive command fails
// with ErrRecursionLimit instead of exhausting the stack.
//
// ExecuteList runs a list of actions with a fire-and-continue policy:
// every failure is reported and the remaining actions still run.
//
// # Hooks
//
// Pre-dispatch hooks may cancel an action; post-dispatch hooks observe the
// result. The AuditHook logs every dispatch.
package dispatcher
