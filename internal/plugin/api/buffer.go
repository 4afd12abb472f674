package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spiral/internal/engine/buffer"
)

const bufferTypeName = "spiral.Buffer"

// bufferRef is a reference to a live buffer.
type bufferRef struct {
	id buffer.ID
}

func (m *EditorModule) registerBufferType(L *lua.LState) {
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"len":        m.bufferLen,
		"text":       m.bufferText,
		"get_text":   m.bufferGetText,
		"line_count": m.bufferLineCount,
		"modified":   m.bufferModified,
	})

	mt := L.NewTypeMetatable(bufferTypeName)
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		ref := checkBuffer(L, 1)
		key := L.CheckString(2)
		if fn := methods.RawGetString(key); fn != lua.LNil {
			L.Push(fn)
			return 1
		}
		buf := m.buffer(L, ref.id)
		switch key {
		case "id":
			L.Push(lua.LNumber(buf.ID()))
		case "name":
			L.Push(lua.LString(buf.Name()))
		case "path":
			L.Push(lua.LString(buf.Path()))
		default:
			L.Push(lua.LNil)
		}
		return 1
	}))
	L.SetField(mt, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkBuffer(L, 1).id == checkBuffer(L, 2).id))
		return 1
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("Buffer(" + lua.LNumber(checkBuffer(L, 1).id).String() + ")"))
		return 1
	}))
}

func newBuffer(L *lua.LState, id buffer.ID) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = &bufferRef{id: id}
	L.SetMetatable(ud, L.GetTypeMetatable(bufferTypeName))
	return ud
}

func checkBuffer(L *lua.LState, n int) *bufferRef {
	ud := L.CheckUserData(n)
	ref, ok := ud.Value.(*bufferRef)
	if !ok {
		L.ArgError(n, "buffer expected")
		return nil
	}
	return ref
}

func (m *EditorModule) buffer(L *lua.LState, id buffer.ID) *buffer.Buffer {
	buf, err := m.ctx.Engine.Buffer(id)
	if err != nil {
		L.RaiseError("%v", err)
	}
	return buf
}

// buffer:len() -> number
// Returns the length in characters.
func (m *EditorModule) bufferLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.buffer(L, checkBuffer(L, 1).id).Len()))
	return 1
}

// buffer:text() -> string
func (m *EditorModule) bufferText(L *lua.LState) int {
	L.Push(lua.LString(m.buffer(L, checkBuffer(L, 1).id).Text()))
	return 1
}

// buffer:get_text(start, end) -> string
// Returns the characters in [start, end), clamped to the buffer.
func (m *EditorModule) bufferGetText(L *lua.LState) int {
	buf := m.buffer(L, checkBuffer(L, 1).id)
	L.Push(lua.LString(buf.TextRange(L.CheckInt(2), L.CheckInt(3))))
	return 1
}

// buffer:line_count() -> number
func (m *EditorModule) bufferLineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.buffer(L, checkBuffer(L, 1).id).LineCount()))
	return 1
}

// buffer:modified() -> boolean
func (m *EditorModule) bufferModified(L *lua.LState) int {
	L.Push(lua.LBool(m.buffer(L, checkBuffer(L, 1).id).Modified()))
	return 1
}
