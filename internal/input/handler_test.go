package input

import (
	"testing"

	"github.com/dshills/spiral/internal/input/key"
	"github.com/dshills/spiral/internal/input/keymap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	table := keymap.NewTable()
	binds := []struct {
		chord, mode string
		invs        []keymap.Invocation
	}{
		{"g g", "normal", []keymap.Invocation{{Name: "goto-start"}}},
		{"i", "normal", []keymap.Invocation{{Name: "enter-mode", Args: "insert"}}},
		{"x", "normal", []keymap.Invocation{{Name: "extend-selection-to-lines"}, {Name: "delete"}}},
		{"esc", "insert", []keymap.Invocation{{Name: "enter-mode", Args: "normal"}}},
	}
	for _, b := range binds {
		if _, err := table.Bind(b.chord, b.mode, b.invs...); err != nil {
			t.Fatalf("Bind(%q): %v", b.chord, err)
		}
	}
	table.SetFallback("insert", "insert")
	return NewHandler(table)
}

func press(h *Handler, mode, chord string) []Outcome {
	var out []Outcome
	for _, ev := range key.MustParseSequence(chord) {
		out = append(out, h.HandleKey(ev, mode))
	}
	return out
}

func TestHandleKeyBinding(t *testing.T) {
	h := newTestHandler(t)

	out := press(h, "normal", "g g")
	if len(out[0].Actions) != 0 || out[0].Status != keymap.StatusPending {
		t.Errorf("first g = %+v, want pending", out[0])
	}
	if got := out[1].Actions; len(got) != 1 || got[0].Name != "goto-start" {
		t.Errorf("g g actions = %v, want goto-start", got)
	}

	out = press(h, "normal", "x")
	if got := out[0].Actions; len(got) != 2 || got[1].Name != "delete" || got[0].Source != SourceKeyboard {
		t.Errorf("x actions = %v", got)
	}
}

func TestHandleKeyFallback(t *testing.T) {
	h := newTestHandler(t)

	out := press(h, "insert", "h spc")
	want := []Action{
		{Name: "insert", Args: "h", Source: SourceFallback},
		{Name: "insert", Args: " ", Source: SourceFallback},
	}
	for i, o := range out {
		if len(o.Actions) != 1 || o.Actions[0] != want[i] {
			t.Errorf("key %d actions = %v, want %v", i, o.Actions, want[i])
		}
	}
	if out := press(h, "normal", "z"); len(out[0].Actions) != 0 {
		t.Errorf("unbound key in normal = %v, want nothing", out[0].Actions)
	}
}

func TestCommandLineFocus(t *testing.T) {
	h := newTestHandler(t)
	press(h, "normal", "g")
	h.FocusCommandLine()
	if len(h.Pending()) != 0 {
		t.Error("focusing the command line should clear the pending chord")
	}

	out := press(h, "normal", "u n d o")
	for _, o := range out {
		if !o.CommandLine || len(o.Actions) != 0 {
			t.Fatalf("typing into the command line produced %+v", o)
		}
	}
	if h.CommandLine().Text() != "undo" {
		t.Errorf("line = %q, want undo", h.CommandLine().Text())
	}

	out = press(h, "normal", "enter")
	if got := out[0].Actions; len(got) != 1 || got[0] != (Action{Name: ExecCommand, Args: "undo", Source: SourceCommandLine}) {
		t.Errorf("enter actions = %v", got)
	}
	if h.CommandLineActive() {
		t.Error("enter should release the command line")
	}
}

func TestCommandLineCancel(t *testing.T) {
	h := newTestHandler(t)
	h.FocusCommandLine()
	press(h, "normal", "q")
	out := press(h, "normal", "esc")
	if len(out[0].Actions) != 0 || h.CommandLineActive() {
		t.Errorf("esc = %+v, active=%v", out[0], h.CommandLineActive())
	}
	if out := press(h, "normal", "i"); len(out[0].Actions) != 1 {
		t.Error("keys should reach the resolver after cancel")
	}
}

func TestHooks(t *testing.T) {
	h := newTestHandler(t)
	var seen []string
	h.AddHook(FuncHook{
		PreKeyEventFunc: func(ev key.Event, mode string) bool {
			return ev.Rune == 'q'
		},
		PostKeyEventFunc: func(ev key.Event, o Outcome) {
			for _, a := range o.Actions {
				seen = append(seen, a.String())
			}
		},
	})

	if out := press(h, "normal", "q"); !out[0].Consumed {
		t.Error("hook should consume q")
	}
	press(h, "normal", "i")
	if len(seen) != 1 || seen[0] != "enter-mode insert" {
		t.Errorf("post hook saw %q", seen)
	}
}
