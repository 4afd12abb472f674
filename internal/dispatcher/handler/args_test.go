package handler_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/spiral/internal/dispatcher/handler"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"  one   two ", []string{"one", "two"}},
		{`"a b" c`, []string{"a b", "c"}},
		{`"line\nbreak" "tab\t" "q\"uote" "back\\slash" "cr\r"`, []string{"line\nbreak", "tab\t", `q"uote`, `back\slash`, "cr\r"}},
		{`""`, []string{""}},
		{`wo"rd`, []string{`wo"rd`}},
		{`"enter-mode insert" "insert x"`, []string{"enter-mode insert", "insert x"}},
	}
	for _, tt := range tests {
		got, err := handler.ParseArgs(tt.input)
		if err != nil {
			t.Errorf("ParseArgs(%q) error: %v", tt.input, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseArgs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{`"open`, handler.ErrUnterminatedString},
		{`"trailing\`, handler.ErrUnterminatedString},
		{`"bad\q"`, handler.ErrInvalidEscape},
	}
	for _, tt := range tests {
		if _, err := handler.ParseArgs(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("ParseArgs(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestSplitCommand(t *testing.T) {
	name, args := handler.SplitCommand("  insert  hello world ")
	if name != "insert" || args != "hello world" {
		t.Errorf("SplitCommand = %q, %q", name, args)
	}
	if name, args := handler.SplitCommand("undo"); name != "undo" || args != "" {
		t.Errorf("SplitCommand(undo) = %q, %q", name, args)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`a\nb`, "a\nb"},
		{`x\ty`, "x\ty"},
		{`keep\q`, `keep\q`},
		{`"quoted \"text\""`, `quoted "text"`},
		{" ", " "},
		{`\`, `\`},
	}
	for _, tt := range tests {
		got, err := handler.Literal(tt.input)
		if err != nil {
			t.Errorf("Literal(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Literal(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResultHelpers(t *testing.T) {
	if r := handler.FromError(nil); !r.IsOK() {
		t.Errorf("FromError(nil) = %v, want ok", r.Status)
	}
	err := errors.New("boom")
	r := handler.FromError(err)
	if !r.IsError() || !errors.Is(r.Error, err) {
		t.Errorf("FromError(err) = %+v", r)
	}
	if r := handler.NoOp().WithMessage("nothing"); r.Status != handler.StatusNoOp || r.Message != "nothing" {
		t.Errorf("NoOp().WithMessage = %+v", r)
	}
	if handler.ResultStatus(99).String() != "unknown" {
		t.Error("unknown status should print unknown")
	}
}
