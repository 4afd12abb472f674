package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// safeModules are the modules require may load.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L     *lua.LState
	print func(string)
}

// NewSandbox creates a new sandbox for the Lua state. print receives
// the output of the Lua print function; nil discards it.
func NewSandbox(L *lua.LState, print func(string)) *Sandbox {
	return &Sandbox{L: L, print: print}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	s.installSafeRequire()
}

// installPrint replaces print so script output never reaches the
// terminal the editor is drawing on.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if s.print != nil {
			s.print(strings.Join(parts, "\t"))
		}
		return 0
	}))
}

// installSafeRequire clears the package search paths and replaces
// require with one that only loads whitelisted and preloaded modules.
func (s *Sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	preload := func(name string) bool {
		pkg, ok := s.L.GetGlobal("package").(*lua.LTable)
		if !ok {
			return false
		}
		tbl, ok := s.L.GetField(pkg, "preload").(*lua.LTable)
		return ok && tbl.RawGetString(name) != lua.LNil
	}

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] && !preload(modName) {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
