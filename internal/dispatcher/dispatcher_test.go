package dispatcher

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handler"
	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/input"
)

type fakeSession struct {
	messages []string
}

func (s *fakeSession) Message(text string) { s.messages = append(s.messages, text) }
func (s *fakeSession) FocusCommandLine()   {}
func (s *fakeSession) ReloadConfig() error { return nil }
func (s *fakeSession) Quit()               {}

func newTestDispatcher(t *testing.T, text string) (*Dispatcher, *engine.Engine) {
	t.Helper()
	e := engine.New()
	buf := e.CreateBuffer(text)
	if _, err := e.CreateView(buf.ID()); err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	d := New(DefaultConfig().WithMetrics())
	d.SetEngine(e)
	return d, e
}

// appendHandler appends its arguments to the buffer end.
func appendHandler(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		return handler.Error(err)
	}
	n := buf.Len()
	return handler.FromError(ctx.Engine.Replace(buf.ID(), n, n, action.Args))
}

func mustRegister(t *testing.T, d *Dispatcher, name string, fn handler.HandlerFunc) {
	t.Helper()
	if err := d.RegisterFunc(name, "", fn); err != nil {
		t.Fatalf("RegisterFunc(%q): %v", name, err)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	d, e := newTestDispatcher(t, "abc")
	buf := e.Buffers()[0]
	rev := buf.Revision()

	err := d.Execute(input.NewAction("frobnicate", "", input.SourceAPI))
	if !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("Execute(unknown) = %v, want ErrCommandNotFound", err)
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error %q should name the command", err)
	}
	if buf.Revision() != rev || buf.Text() != "abc" {
		t.Error("unknown command must not touch the buffer")
	}
}

func TestExecuteListContinuesAfterFailure(t *testing.T) {
	d, e := newTestDispatcher(t, "")
	mustRegister(t, d, "append", appendHandler)

	var reported []error
	d.SetReporter(func(err error) { reported = append(reported, err) })

	err := d.ExecuteList([]input.Action{
		input.NewAction("append", "a", input.SourceAPI),
		input.NewAction("missing", "", input.SourceAPI),
		input.NewAction("append", "b", input.SourceAPI),
	})
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("ExecuteList() = %v, want joined ErrCommandNotFound", err)
	}
	if len(reported) != 1 {
		t.Errorf("reported %d errors, want 1", len(reported))
	}
	if got := e.Buffers()[0].Text(); got != "ab" {
		t.Errorf("Text() = %q, want %q", got, "ab")
	}
}

func TestExecuteLine(t *testing.T) {
	d, e := newTestDispatcher(t, "")
	mustRegister(t, d, "append", appendHandler)

	tests := []struct {
		line    string
		wantErr error
	}{
		{"append xy", nil},
		{"  append   z", nil},
		{"", ErrInvalidCommand},
		{`append "open`, handler.ErrUnterminatedString},
		{`append "\q"`, handler.ErrInvalidEscape},
	}
	for _, tt := range tests {
		err := d.ExecuteLine(tt.line)
		if tt.wantErr == nil && err != nil {
			t.Errorf("ExecuteLine(%q) = %v, want nil", tt.line, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("ExecuteLine(%q) = %v, want %v", tt.line, err, tt.wantErr)
		}
	}
	if got := e.Buffers()[0].Text(); got != "xyz" {
		t.Errorf("Text() = %q, want %q", got, "xyz")
	}
}

func TestRecursionLimit(t *testing.T) {
	d := New(DefaultConfig().WithMaxDepth(8))
	calls := 0
	mustRegister(t, d, "loop", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		calls++
		return handler.FromError(ctx.Dispatcher.Execute(action))
	})

	err := d.Execute(input.NewAction("loop", "", input.SourceAPI))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("Execute(loop) = %v, want ErrRecursionLimit", err)
	}
	if calls != 8 {
		t.Errorf("calls = %d, want 8", calls)
	}
	if d.Depth() != 0 {
		t.Errorf("Depth() = %d after return, want 0", d.Depth())
	}
}

func TestPanicRecovery(t *testing.T) {
	d := New(DefaultConfig().WithMetrics())
	mustRegister(t, d, "boom", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	err := d.Execute(input.NewAction("boom", "", input.SourceAPI))
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("Execute(boom) = %v, want ErrPanic", err)
	}
	if d.Metrics().TotalPanics() != 1 {
		t.Errorf("TotalPanics() = %d, want 1", d.Metrics().TotalPanics())
	}
}

func TestHooksAndMessages(t *testing.T) {
	d := NewWithDefaults()
	session := &fakeSession{}
	d.SetSession(session)
	mustRegister(t, d, "greet", func(action input.Action, _ *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("hello " + action.Args)
	})

	d.RegisterPreHook(PreDispatchFunc(func(action *input.Action, _ *execctx.ExecutionContext) bool {
		return action.Args != "blocked"
	}))
	var statuses []handler.ResultStatus
	d.RegisterPostHook(PostDispatchFunc(func(_ *input.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		statuses = append(statuses, r.Status)
	}))

	if err := d.Execute(input.NewAction("greet", "world", input.SourceAPI)); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := d.Execute(input.NewAction("greet", "blocked", input.SourceAPI)); !errors.Is(err, ErrActionCancelled) {
		t.Errorf("blocked Execute = %v, want ErrActionCancelled", err)
	}
	if len(session.messages) != 1 || session.messages[0] != "hello world" {
		t.Errorf("messages = %q", session.messages)
	}
	if len(statuses) != 1 || statuses[0] != handler.StatusOK {
		t.Errorf("post hook statuses = %v", statuses)
	}
}

func TestRegisterNamespace(t *testing.T) {
	d, e := newTestDispatcher(t, "")
	ns := handler.NewBaseNamespaceHandler("test")
	ns.Register("append", "append text", appendHandler)
	ns.Register("noop", "do nothing", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})
	if err := d.RegisterNamespace(ns); err != nil {
		t.Fatalf("RegisterNamespace: %v", err)
	}

	cmd, ok := d.Registry().Lookup("append")
	if !ok || cmd.Description != "append text" || cmd.Source != SourceBuiltin {
		t.Fatalf("Lookup(append) = %+v, %v", cmd, ok)
	}
	if err := d.Execute(input.NewAction("append", "q", input.SourceAPI)); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := e.Buffers()[0].Text(); got != "q" {
		t.Errorf("Text() = %q, want q", got)
	}
	if got := d.Metrics().ActionStats("append"); got == nil || got.DispatchCount != 1 {
		t.Errorf("ActionStats(append) = %+v", got)
	}
}
