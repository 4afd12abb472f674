package dispatcher

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/mode"
)

// Reporter receives every error ExecuteList reports.
type Reporter func(err error)

// Dispatcher executes commands by name.
type Dispatcher struct {
	registry *Registry

	engine  *engine.Engine
	modes   *mode.Manager
	session execctx.SessionInterface

	config   Config
	metrics  *Metrics
	reporter Reporter

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook

	depth int
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the text engine.
func (d *Dispatcher) SetEngine(e *engine.Engine) { d.engine = e }

// SetModeManager sets the mode manager.
func (d *Dispatcher) SetModeManager(m *mode.Manager) { d.modes = m }

// SetSession sets the session surface handed to commands.
func (d *Dispatcher) SetSession(s execctx.SessionInterface) { d.session = s }

// SetReporter sets the function ExecuteList reports failures to.
func (d *Dispatcher) SetReporter(r Reporter) { d.reporter = r }

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics { return d.metrics }

// Depth returns the current dispatch nesting depth.
func (d *Dispatcher) Depth() int { return d.depth }

// Register registers a command.
func (d *Dispatcher) Register(cmd Command) error {
	return d.registry.Register(cmd)
}

// RegisterFunc registers a built-in command implemented by fn.
func (d *Dispatcher) RegisterFunc(name, description string, fn handler.HandlerFunc) error {
	return d.registry.Register(Command{
		Name:        name,
		Description: description,
		Source:      SourceBuiltin,
		Handler:     fn,
	})
}

// RegisterNamespace registers every action of a namespace handler as a
// built-in command.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) error {
	for _, info := range h.Actions() {
		err := d.registry.Register(Command{
			Name:        info.Name,
			Description: info.Description,
			Source:      SourceBuiltin,
			Handler:     handler.HandlerFunc(h.HandleAction),
		})
		if err != nil {
			return fmt.Errorf("namespace %s: %w", h.Namespace(), err)
		}
	}
	return nil
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.postHooks = append(d.postHooks, hook)
}

// Execute runs a single action synchronously. An unknown name fails with
// ErrCommandNotFound and has no other effect.
func (d *Dispatcher) Execute(action input.Action) error {
	result := d.Dispatch(action)
	if result.IsError() {
		return result.Error
	}
	return nil
}

// Dispatch runs a single action and returns its full result.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	cmd, ok := d.registry.Lookup(action.Name)
	if !ok {
		return handler.Error(fmt.Errorf("%w: %s", ErrCommandNotFound, action.Name))
	}
	if d.depth >= d.config.MaxDepth {
		return handler.Error(fmt.Errorf("%w: %s at depth %d", ErrRecursionLimit, action.Name, d.depth))
	}

	d.depth++
	defer func() { d.depth-- }()

	startTime := time.Now()
	ctx := d.buildContext()

	for _, hook := range d.preHooks {
		if !hook.PreDispatch(&action, ctx) {
			return handler.Error(fmt.Errorf("%w: %s", ErrActionCancelled, action.Name))
		}
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(cmd.Handler, action, ctx)
	} else {
		result = cmd.Handler.Handle(action, ctx)
	}
	if result.IsError() && result.Error == nil {
		result.Error = fmt.Errorf("%s failed", action.Name)
	}
	if result.IsError() && !errors.Is(result.Error, ErrRecursionLimit) {
		result.Error = fmt.Errorf("%s: %w", action.Name, result.Error)
	}

	for _, hook := range d.postHooks {
		hook.PostDispatch(&action, ctx, &result)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result.Status)
	}
	if result.Message != "" && d.session != nil {
		d.session.Message(result.Message)
	}
	return result
}

// ExecuteList runs actions in order. Each failure is reported and the
// remaining actions still run. The returned error joins all failures.
func (d *Dispatcher) ExecuteList(actions []input.Action) error {
	var errs []error
	for _, action := range actions {
		if err := d.Execute(action); err != nil {
			d.report(err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExecuteLine parses a command line ("name args...") and runs it.
func (d *Dispatcher) ExecuteLine(line string) error {
	action, err := ParseLine(line)
	if err != nil {
		return err
	}
	return d.Execute(action)
}

// ParseLine splits a command line into an action with raw arguments.
// Quoted arguments are checked for valid escapes.
func ParseLine(line string) (input.Action, error) {
	name, args := handler.SplitCommand(line)
	if name == "" {
		return input.Action{}, fmt.Errorf("%w: empty command line", ErrInvalidCommand)
	}
	if _, err := handler.ParseArgs(args); err != nil {
		return input.Action{}, fmt.Errorf("%s: %w", name, err)
	}
	return input.NewAction(name, args, input.SourceCommandLine), nil
}

func (d *Dispatcher) report(err error) {
	if d.reporter != nil {
		d.reporter(err)
	}
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			result = handler.Error(fmt.Errorf("%w: %v\n%s", ErrPanic, r, stack[:n]))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()
	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	ctx := execctx.New()
	ctx.Engine = d.engine
	ctx.Modes = d.modes
	ctx.Session = d.session
	ctx.Dispatcher = d
	ctx.Depth = d.depth
	return ctx
}
