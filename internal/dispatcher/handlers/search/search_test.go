package search_test

import (
	"errors"
	"testing"

	"github.com/dshills/spiral/internal/dispatcher/execctx"
	"github.com/dshills/spiral/internal/dispatcher/handlers/search"
	"github.com/dshills/spiral/internal/engine"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/input"
)

func newContext(t *testing.T, text string) *execctx.ExecutionContext {
	t.Helper()
	e := engine.New()
	if _, err := e.CreateView(e.CreateBuffer(text).ID()); err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	ctx := execctx.New()
	ctx.Engine = e
	return ctx
}

func run(h *search.Handler, ctx *execctx.ExecutionContext, name, args string) error {
	return h.HandleAction(input.NewAction(name, args, input.SourceCommandLine), ctx).Error
}

type span struct{ min, max int }

func spans(t *testing.T, ctx *execctx.ExecutionContext) []span {
	t.Helper()
	v, err := ctx.ActiveView()
	if err != nil {
		t.Fatalf("ActiveView: %v", err)
	}
	var out []span
	for _, sel := range v.Selections() {
		out = append(out, span{sel.Min(), sel.Max()})
	}
	return out
}

func text(t *testing.T, ctx *execctx.ExecutionContext) string {
	t.Helper()
	_, buf, err := ctx.ActiveBuffer()
	if err != nil {
		t.Fatalf("ActiveBuffer: %v", err)
	}
	return buf.Text()
}

func TestSearchCycles(t *testing.T) {
	ctx := newContext(t, "föo bar foo\nFOO")
	h := search.NewHandler()

	steps := []struct {
		name, args string
		want       span
	}{
		{search.ActionSearch, "fo+", span{8, 10}},
		{search.ActionSearchNext, "", span{12, 14}},
		{search.ActionSearchNext, "", span{8, 10}},
		{search.ActionSearchPrev, "", span{12, 14}},
		{search.ActionSearchPrev, "", span{8, 10}},
	}
	for i, st := range steps {
		if err := run(h, ctx, st.name, st.args); err != nil {
			t.Fatalf("step %d %s: %v", i, st.name, err)
		}
		if got := spans(t, ctx); len(got) != 1 || got[0] != st.want {
			t.Errorf("step %d %s selections = %v, want %v", i, st.name, got, st.want)
		}
	}
	if h.LastPattern() != "(?i)fo+" {
		t.Errorf("LastPattern() = %q", h.LastPattern())
	}
}

func TestSearchSelectsMatchAtCursor(t *testing.T) {
	ctx := newContext(t, "foo foo")
	h := search.NewHandler()
	if err := run(h, ctx, search.ActionSearch, "foo"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := spans(t, ctx); got[0] != (span{0, 2}) {
		t.Errorf("selections = %v, want [{0 2}]", got)
	}
}

func TestSearchCaseSensitiveWithUpper(t *testing.T) {
	ctx := newContext(t, "foo Foo")
	h := search.NewHandler()
	if err := run(h, ctx, search.ActionSearch, "Foo"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := spans(t, ctx); got[0] != (span{4, 6}) {
		t.Errorf("selections = %v, want [{4 6}]", got)
	}
}

func TestSearchErrors(t *testing.T) {
	ctx := newContext(t, "abc")
	h := search.NewHandler()

	if err := run(h, ctx, search.ActionSearchNext, ""); !errors.Is(err, search.ErrNoPattern) {
		t.Errorf("search-next without pattern = %v, want ErrNoPattern", err)
	}
	if err := run(h, ctx, search.ActionSearch, "xyz"); !errors.Is(err, search.ErrNoMatch) {
		t.Errorf("search xyz = %v, want ErrNoMatch", err)
	}
	if err := run(h, ctx, search.ActionSearch, "a("); err == nil {
		t.Error("search with a bad pattern succeeded")
	}
	if err := run(h, ctx, search.ActionSearch, " "); !errors.Is(err, execctx.ErrMissingArgument) {
		t.Errorf("search without pattern = %v, want ErrMissingArgument", err)
	}
}

func TestSelectMatches(t *testing.T) {
	ctx := newContext(t, "a1 b22 c333")
	h := search.NewHandler()

	if err := run(h, ctx, search.ActionSelectMatches, `\d+`); err != nil {
		t.Fatalf("select-matches: %v", err)
	}
	want := []span{{1, 1}, {4, 5}, {8, 10}}
	got := spans(t, ctx)
	if len(got) != len(want) {
		t.Fatalf("selections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelectMatchesInsideSelections(t *testing.T) {
	ctx := newContext(t, "ab ab ab")
	v, _ := ctx.ActiveView()
	ctx.Engine.SetSelections(v.ID(), []cursor.Selection{cursor.NewSelection(2, 5)})
	h := search.NewHandler()

	if err := run(h, ctx, search.ActionSelectMatches, "ab"); err != nil {
		t.Fatalf("select-matches: %v", err)
	}
	if got := spans(t, ctx); len(got) != 1 || got[0] != (span{3, 4}) {
		t.Errorf("selections = %v, want [{3 4}]", got)
	}
	if err := run(h, ctx, search.ActionSelectMatches, "zz"); !errors.Is(err, search.ErrNoMatch) {
		t.Errorf("select-matches zz = %v, want ErrNoMatch", err)
	}
}

func TestReplaceAll(t *testing.T) {
	ctx := newContext(t, "key=1 kéy=2")
	h := search.NewHandler()

	if err := run(h, ctx, search.ActionReplaceAll, `"([^ =]+)=(\\d)" "${2}:$1"`); err != nil {
		t.Fatalf("replace-all: %v", err)
	}
	if got := text(t, ctx); got != "1:key 2:kéy" {
		t.Errorf("text = %q, want %q", got, "1:key 2:kéy")
	}

	_, buf, _ := ctx.ActiveBuffer()
	if err := ctx.Engine.Undo(buf.ID()); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := text(t, ctx); got != "key=1 kéy=2" {
		t.Errorf("text after one undo = %q, want the original", got)
	}

	if err := run(h, ctx, search.ActionReplaceAll, "onlyone"); !errors.Is(err, execctx.ErrMissingArgument) {
		t.Errorf("replace-all with one arg = %v, want ErrMissingArgument", err)
	}
}
