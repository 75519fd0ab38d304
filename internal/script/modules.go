package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/hexfmt"
)

// bufFuncs returns the buf module bound to eng.
func bufFuncs(eng *engine.Engine) map[string]lua.LGFunction {
	m := &bufModule{eng: eng}
	return map[string]lua.LGFunction{
		"len":        m.bufLen,
		"get":        m.get,
		"set":        m.set,
		"read":       m.read,
		"insert":     m.insert,
		"delete":     m.delete,
		"overwrite":  m.overwrite,
		"splice":     m.splice,
		"find":       m.find,
		"rfind":      m.rfind,
		"undo":       m.undo,
		"can_undo":   m.canUndo,
		"checkpoint": m.checkpoint,
		"rollback":   m.rollback,
	}
}

type bufModule struct {
	eng *engine.Engine
}

func pushRange(L *lua.LState, r engine.Range) int {
	L.Push(lua.LNumber(r.Start))
	L.Push(lua.LNumber(r.End))
	return 2
}

func pushOffset(L *lua.LState, offset int, ok bool) int {
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(offset))
	return 1
}

// len() -> number
func (m *bufModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.Len()))
	return 1
}

// get(i) -> number
func (m *bufModule) get(L *lua.LState) int {
	b, err := m.eng.ByteAt(L.CheckInt(1))
	if err != nil {
		L.RaiseError("get: %v", err)
		return 0
	}
	L.Push(lua.LNumber(b))
	return 1
}

// set(i, b)
func (m *bufModule) set(L *lua.LState) int {
	offset := L.CheckInt(1)
	v := L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, "byte value out of range")
		return 0
	}
	if _, err := m.eng.Overwrite(offset, []byte{byte(v)}); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

// read(start, end) -> string
func (m *bufModule) read(L *lua.LState) int {
	data, err := m.eng.Read(L.CheckInt(1), L.CheckInt(2))
	if err != nil {
		L.RaiseError("read: %v", err)
		return 0
	}
	L.Push(lua.LString(data))
	return 1
}

// insert(i, data) -> start, end
func (m *bufModule) insert(L *lua.LState) int {
	r, err := m.eng.Insert(L.CheckInt(1), []byte(L.CheckString(2)))
	if err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}
	return pushRange(L, r)
}

// delete(start, end) -> start, end
func (m *bufModule) delete(L *lua.LState) int {
	r, err := m.eng.Delete(L.CheckInt(1), L.CheckInt(2))
	if err != nil {
		L.RaiseError("delete: %v", err)
		return 0
	}
	return pushRange(L, r)
}

// overwrite(i, data) -> start, end
func (m *bufModule) overwrite(L *lua.LState) int {
	r, err := m.eng.Overwrite(L.CheckInt(1), []byte(L.CheckString(2)))
	if err != nil {
		L.RaiseError("overwrite: %v", err)
		return 0
	}
	return pushRange(L, r)
}

// splice(start, end, data) -> start, end
func (m *bufModule) splice(L *lua.LState) int {
	r, err := m.eng.Splice(L.CheckInt(1), L.CheckInt(2), []byte(L.CheckString(3)))
	if err != nil {
		L.RaiseError("splice: %v", err)
		return 0
	}
	return pushRange(L, r)
}

// find(needle [, from]) -> offset | nil
func (m *bufModule) find(L *lua.LState) int {
	offset, ok := m.eng.Find([]byte(L.CheckString(1)), L.OptInt(2, 0))
	return pushOffset(L, offset, ok)
}

// rfind(needle [, from]) -> offset | nil
func (m *bufModule) rfind(L *lua.LState) int {
	offset, ok := m.eng.FindBackward([]byte(L.CheckString(1)), L.OptInt(2, m.eng.Len()))
	return pushOffset(L, offset, ok)
}

// undo() -> offset | nil
func (m *bufModule) undo(L *lua.LState) int {
	offset, err := m.eng.Undo()
	if errors.Is(err, engine.ErrNothingToUndo) {
		return pushOffset(L, 0, false)
	}
	if err != nil {
		L.RaiseError("undo: %v", err)
		return 0
	}
	return pushOffset(L, offset, true)
}

// can_undo() -> bool
func (m *bufModule) canUndo(L *lua.LState) int {
	L.Push(lua.LBool(m.eng.CanUndo()))
	return 1
}

// checkpoint() -> userdata
func (m *bufModule) checkpoint(L *lua.LState) int {
	ud := L.NewUserData()
	ud.Value = m.eng.Checkpoint()
	L.Push(ud)
	return 1
}

// rollback(cp) -> offset | nil
func (m *bufModule) rollback(L *lua.LState) int {
	cp, ok := L.CheckUserData(1).Value.(engine.Checkpoint)
	if !ok {
		L.ArgError(1, "checkpoint expected")
		return 0
	}
	offset, err := m.eng.UndoToCheckpoint(cp)
	if errors.Is(err, engine.ErrNothingToUndo) {
		return pushOffset(L, 0, false)
	}
	if err != nil {
		L.RaiseError("rollback: %v", err)
		return 0
	}
	return pushOffset(L, offset, true)
}

func hexFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		// decode(text) -> bytes
		"decode": func(L *lua.LState) int {
			data, err := hexfmt.Decode(L.CheckString(1))
			if err != nil {
				L.RaiseError("hex.decode: %v", err)
				return 0
			}
			L.Push(lua.LString(data))
			return 1
		},
		// encode(bytes) -> text
		"encode": func(L *lua.LState) int {
			L.Push(lua.LString(hexfmt.Encode([]byte(L.CheckString(1)))))
			return 1
		},
	}
}
