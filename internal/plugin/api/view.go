package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/engine/view"
)

const viewTypeName = "spiral.View"

// viewRef is a reference to a live view.
type viewRef struct {
	id view.ID
}

func (m *EditorModule) registerViewType(L *lua.LState) {
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get_selections": m.viewGetSelections,
		"set_selections": m.viewSetSelections,
		"add_selection":  m.viewAddSelection,
		"scroll":         m.viewScroll,
	})

	mt := L.NewTypeMetatable(viewTypeName)
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		ref := checkView(L, 1)
		key := L.CheckString(2)
		if fn := methods.RawGetString(key); fn != lua.LNil {
			L.Push(fn)
			return 1
		}
		v := m.view(L, ref.id)
		switch key {
		case "id":
			L.Push(lua.LNumber(v.ID()))
		case "buffer":
			L.Push(newBuffer(L, v.Buffer()))
		case "mode":
			L.Push(lua.LString(v.Mode()))
		case "scroll_line":
			L.Push(lua.LNumber(v.Scroll()))
		default:
			L.Push(lua.LNil)
		}
		return 1
	}))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		ref := checkView(L, 1)
		key := L.CheckString(2)
		v := m.view(L, ref.id)
		switch key {
		case "mode":
			name := L.CheckString(3)
			if m.ctx.Modes == nil {
				v.SetMode(name)
				return 0
			}
			if err := m.ctx.Modes.Switch(v, name); err != nil {
				L.RaiseError("%v", err)
			}
		case "scroll_line":
			if _, err := m.ctx.Engine.ScrollView(v.ID(), L.CheckInt(3)-v.Scroll()); err != nil {
				L.RaiseError("%v", err)
			}
		default:
			L.RaiseError("view field %q is not writable", key)
		}
		return 0
	}))
	L.SetField(mt, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkView(L, 1).id == checkView(L, 2).id))
		return 1
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("View(" + lua.LNumber(checkView(L, 1).id).String() + ")"))
		return 1
	}))
}

func newView(L *lua.LState, id view.ID) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = &viewRef{id: id}
	L.SetMetatable(ud, L.GetTypeMetatable(viewTypeName))
	return ud
}

func checkView(L *lua.LState, n int) *viewRef {
	ud := L.CheckUserData(n)
	ref, ok := ud.Value.(*viewRef)
	if !ok {
		L.ArgError(n, "view expected")
		return nil
	}
	return ref
}

// view resolves a view id, raising a Lua error when it is gone.
func (m *EditorModule) view(L *lua.LState, id view.ID) *view.View {
	v, err := m.ctx.Engine.View(id)
	if err != nil {
		L.RaiseError("%v", err)
	}
	return v
}

// view:get_selections() -> {selection...}
// Returns copies of the view's selections.
func (m *EditorModule) viewGetSelections(L *lua.LState) int {
	v := m.view(L, checkView(L, 1).id)
	tbl := L.NewTable()
	for i, sel := range v.Selections() {
		tbl.RawSetInt(i+1, newSelection(L, v.ID(), sel))
	}
	L.Push(tbl)
	return 1
}

// view:set_selections({selection...})
// Replaces the view's selections with the given values, clamped to the
// buffer. Selections may be Selection values or tables.
func (m *EditorModule) viewSetSelections(L *lua.LState) int {
	v := m.view(L, checkView(L, 1).id)
	list := L.CheckTable(2)
	n := list.Len()
	if n == 0 {
		L.ArgError(2, "at least one selection is required")
		return 0
	}
	sels := make([]cursor.Selection, 0, n)
	for i := 1; i <= n; i++ {
		sel, err := toSelection(list.RawGetInt(i))
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		sels = append(sels, sel)
	}
	if err := m.ctx.Engine.SetSelections(v.ID(), sels); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// view:add_selection(selection)
// Appends a selection, clamped to the buffer.
func (m *EditorModule) viewAddSelection(L *lua.LState) int {
	v := m.view(L, checkView(L, 1).id)
	sel, err := toSelection(L.Get(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if err := m.ctx.Engine.AddSelection(v.ID(), sel); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// view:scroll(lines) -> number
// Scrolls by lines (negative scrolls up) and returns the first visible line.
func (m *EditorModule) viewScroll(L *lua.LState) int {
	v := m.view(L, checkView(L, 1).id)
	line, err := m.ctx.Engine.ScrollView(v.ID(), L.CheckInt(2))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(line))
	return 1
}
