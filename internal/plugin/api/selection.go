package api

import (
	"errors"
	"fmt"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spiral/internal/engine/buffer"
	"github.com/dshills/spiral/internal/engine/cursor"
	"github.com/dshills/spiral/internal/engine/view"
)

const selectionTypeName = "spiral.Selection"

// selectionValue is a script-owned copy of a selection. It remembers the
// view it was read from so get_text and set_text can find the buffer.
type selectionValue struct {
	view view.ID
	sel  cursor.Selection
}

func (m *EditorModule) registerSelectionType(L *lua.LState) {
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get_text": m.selectionGetText,
		"set_text": m.selectionSetText,
	})

	mt := L.NewTypeMetatable(selectionTypeName)
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		v := checkSelection(L, 1)
		key := L.CheckString(2)
		if fn := methods.RawGetString(key); fn != lua.LNil {
			L.Push(fn)
			return 1
		}
		switch key {
		case "start":
			L.Push(lua.LNumber(v.sel.Start))
		case "end":
			L.Push(lua.LNumber(v.sel.End))
		case "direction":
			L.Push(lua.LString(v.sel.Direction.String()))
		case "head":
			L.Push(lua.LNumber(v.sel.Head()))
		case "anchor":
			L.Push(lua.LNumber(v.sel.Anchor()))
		default:
			L.Push(lua.LNil)
		}
		return 1
	}))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		v := checkSelection(L, 1)
		key := L.CheckString(2)
		switch key {
		case "start":
			v.sel.Start = L.CheckInt(3)
		case "end":
			v.sel.End = L.CheckInt(3)
		case "direction":
			dir, ok := cursor.ParseDirection(L.CheckString(3))
			if !ok {
				L.ArgError(3, `direction must be "forward" or "back"`)
				return 0
			}
			v.sel.Direction = dir
		case "head":
			v.sel = cursor.FromAnchorHead(v.sel.Anchor(), L.CheckInt(3))
		case "anchor":
			v.sel = v.sel.WithAnchor(L.CheckInt(3))
		default:
			L.RaiseError("selection field %q is not writable", key)
		}
		return 0
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(checkSelection(L, 1).sel.String()))
		return 1
	}))
}

func newSelection(L *lua.LState, id view.ID, sel cursor.Selection) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = &selectionValue{view: id, sel: sel}
	L.SetMetatable(ud, L.GetTypeMetatable(selectionTypeName))
	return ud
}

func checkSelection(L *lua.LState, n int) *selectionValue {
	ud := L.CheckUserData(n)
	v, ok := ud.Value.(*selectionValue)
	if !ok {
		L.ArgError(n, "selection expected")
		return nil
	}
	return v
}

// toSelection reads a Selection value, a {start, end, direction} table or
// an {anchor, head} table.
func toSelection(lv lua.LValue) (cursor.Selection, error) {
	switch v := lv.(type) {
	case *lua.LUserData:
		if s, ok := v.Value.(*selectionValue); ok {
			return s.sel, nil
		}
	case *lua.LTable:
		if anchor, ok := v.RawGetString("anchor").(lua.LNumber); ok {
			head, ok := v.RawGetString("head").(lua.LNumber)
			if !ok {
				return cursor.Selection{}, errors.New("selection table with anchor needs head")
			}
			return cursor.FromAnchorHead(int(anchor), int(head)), nil
		}
		start, ok1 := v.RawGetString("start").(lua.LNumber)
		end, ok2 := v.RawGetString("end").(lua.LNumber)
		if !ok1 || !ok2 {
			return cursor.Selection{}, errors.New("selection table needs start and end")
		}
		sel := cursor.NewSelection(int(start), int(end))
		if d, ok := v.RawGetString("direction").(lua.LString); ok {
			dir, ok := cursor.ParseDirection(string(d))
			if !ok {
				return cursor.Selection{}, fmt.Errorf("invalid direction %q", string(d))
			}
			sel.Direction = dir
		}
		return sel, nil
	}
	return cursor.Selection{}, fmt.Errorf("selection expected, got %s", lv.Type())
}

// selectionBuffer resolves the buffer behind a selection's view.
func (m *EditorModule) selectionBuffer(L *lua.LState, v *selectionValue) *buffer.Buffer {
	return m.buffer(L, m.view(L, v.view).Buffer())
}

// selection:get_text() -> string
// Reads the selection's effective range from the live buffer.
func (m *EditorModule) selectionGetText(L *lua.LState) int {
	v := checkSelection(L, 1)
	buf := m.selectionBuffer(L, v)
	r := v.sel.Range(buf.Len())
	L.Push(lua.LString(buf.TextRange(r.Start, r.End)))
	return 1
}

// selection:set_text(text)
// Replaces the effective range on the live buffer as one undoable edit
// and makes this copy span the new text. Views over the buffer are
// adjusted like for any other edit; the copy is not written back.
func (m *EditorModule) selectionSetText(L *lua.LState) int {
	v := checkSelection(L, 1)
	text := L.CheckString(2)
	buf := m.selectionBuffer(L, v)

	r := v.sel.Range(buf.Len())
	if err := m.ctx.Engine.Apply(buf.ID(), "set_text", []buffer.Edit{buffer.NewEdit(r, text)}); err != nil {
		L.RaiseError("%v", err)
		return 0
	}

	n := utf8.RuneCountInString(text)
	v.sel.Start = r.Start
	v.sel.End = r.Start + max(n-1, 0)
	return 0
}
