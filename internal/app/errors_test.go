package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestOperationError(t *testing.T) {
	tests := []struct {
		err  *OperationError
		want string
	}{
		{NewOperationError("open", "/tmp/a.txt", fs.ErrPermission), "open /tmp/a.txt: permission denied"},
		{NewOperationError("reload", "", errors.New("bad")), "reload: bad"},
		{NewOperationError("open", "a", nil), "open a"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(tests[0].err, fs.ErrPermission) {
		t.Error("OperationError does not unwrap to its cause")
	}
}

func TestComponentError(t *testing.T) {
	tests := []struct {
		err  *ComponentError
		want string
	}{
		{NewComponentError("lua", "create state", errors.New("oom")), "lua: create state: oom"},
		{NewComponentError("lua", "", errors.New("oom")), "lua: oom"},
		{NewComponentError("dispatcher", "register", nil), "dispatcher: register"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	cause := errors.New("dup")
	var ce *ComponentError
	wrapped := error(NewComponentError("dispatcher", "register", cause))
	if !errors.Is(wrapped, cause) || !errors.As(wrapped, &ce) {
		t.Error("ComponentError does not unwrap")
	}
}

func TestLoadError(t *testing.T) {
	var e LoadError
	if e.orNil() != nil {
		t.Fatal("empty LoadError is not nil")
	}

	boom := errors.New("boom")
	e.add("a.lua", boom)
	if got := e.Error(); got != "load a.lua: boom" {
		t.Errorf("Error() = %q", got)
	}

	e.add("b.lua", errors.New("nope"))
	err := e.orNil()
	if !strings.Contains(err.Error(), "2 scripts failed (a.lua, b.lua)") {
		t.Errorf("Error() = %q", err)
	}
	if !errors.Is(err, boom) {
		t.Error("LoadError does not unwrap to the script errors")
	}
	var se *ScriptError
	if !errors.As(err, &se) || se.Script != "a.lua" {
		t.Errorf("errors.As found %+v, want a.lua", se)
	}
}
