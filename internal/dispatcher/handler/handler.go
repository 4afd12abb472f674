// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"sort"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/input"
)

// Handler processes a command invocation.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle implements Handler.Handle.
func (f HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}

// ActionInfo names and describes one action of a namespace handler.
type ActionInfo struct {
	Name        string
	Description string
}

// NamespaceHandler handles a family of related built-in commands.
type NamespaceHandler interface {
	// Namespace returns the family name, e.g. "cursor".
	Namespace() string

	// Actions lists the commands this handler implements.
	Actions() []ActionInfo

	// HandleAction handles one of the listed commands.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
}

// BaseNamespaceHandler provides a table-driven NamespaceHandler.
type BaseNamespaceHandler struct {
	namespace string
	actions   map[string]HandlerFunc
	info      map[string]string
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]HandlerFunc),
		info:      make(map[string]string),
	}
}

// Register registers a handler function for an action name.
func (h *BaseNamespaceHandler) Register(name, description string, fn HandlerFunc) {
	h.actions[name] = fn
	h.info[name] = description
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// Actions implements NamespaceHandler.Actions. Actions are sorted by name.
func (h *BaseNamespaceHandler) Actions() []ActionInfo {
	out := make([]ActionInfo, 0, len(h.actions))
	for name := range h.actions {
		out = append(out, ActionInfo{Name: name, Description: h.info[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CanHandle returns true if the action is registered.
func (h *BaseNamespaceHandler) CanHandle(name string) bool {
	_, ok := h.actions[name]
	return ok
}

// HandleAction implements NamespaceHandler.HandleAction.
func (h *BaseNamespaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(action, ctx)
}
