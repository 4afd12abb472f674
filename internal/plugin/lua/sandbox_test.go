package lua

import (
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestSandboxRemovesUnsafeGlobals(t *testing.T) {
	state := newState(t)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, v)
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	state := newState(t)

	tests := []struct {
		code    string
		wantErr bool
	}{
		{`local s = require("string")`, false},
		{`local m = require("math")`, false},
		{`local o = require("os")`, true},
		{`local x = require("some.module")`, true},
	}
	for _, tt := range tests {
		err := state.DoString(tt.code, "require")
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
	}

	state.L.PreloadModule("mine", func(L *glua.LState) int {
		L.Push(L.NewTable())
		return 1
	})
	if err := state.DoString(`local m = require("mine")`, "require"); err != nil {
		t.Errorf("require of preloaded module = %v", err)
	}
}

func TestSandboxPrint(t *testing.T) {
	var got []string
	state := newState(t, WithPrint(func(s string) { got = append(got, s) }))

	if err := state.DoString(`print("a", 1, true)`, "print"); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if len(got) != 1 || got[0] != "a\t1\ttrue" {
		t.Errorf("printed %q, want [\"a\\t1\\ttrue\"]", got)
	}
}
