package script

import (
	lua "github.com/yuin/gopher-lua"
)

// registerDocModule installs the global doc table.
func registerDocModule(L *lua.LState, s *Session) {
	mod := L.NewTable()

	L.SetField(mod, "text", L.NewFunction(s.docText))
	L.SetField(mod, "set", L.NewFunction(s.docSet))
	L.SetField(mod, "append", L.NewFunction(s.docAppend))
	L.SetField(mod, "insert", L.NewFunction(s.docInsert))
	L.SetField(mod, "delete", L.NewFunction(s.docDelete))
	L.SetField(mod, "len", L.NewFunction(s.docLen))
	L.SetField(mod, "format", L.NewFunction(s.docFormat))

	L.SetGlobal("doc", mod)
}

// registerHistoryModule installs the global history table.
func registerHistoryModule(L *lua.LState, s *Session) {
	mod := L.NewTable()

	L.SetField(mod, "save", L.NewFunction(s.historySave))
	L.SetField(mod, "undo", L.NewFunction(s.historyUndo))
	L.SetField(mod, "redo", L.NewFunction(s.historyRedo))
	L.SetField(mod, "checkpoint", L.NewFunction(s.historyCheckpoint))
	L.SetField(mod, "restore", L.NewFunction(s.historyRestore))
	L.SetField(mod, "delete", L.NewFunction(s.historyDelete))
	L.SetField(mod, "checkpoints", L.NewFunction(s.historyCheckpoints))
	L.SetField(mod, "dump", L.NewFunction(s.historyDump))

	L.SetGlobal("history", mod)
}

// text() -> string
func (s *Session) docText(L *lua.LState) int {
	L.Push(lua.LString(s.doc.Text()))
	return 1
}

// set(text)
func (s *Session) docSet(L *lua.LState) int {
	s.doc.SetText(L.CheckString(1))
	return 0
}

// append(text)
func (s *Session) docAppend(L *lua.LState) int {
	s.doc.Append(L.CheckString(1))
	return 0
}

// insert(pos, text)
func (s *Session) docInsert(L *lua.LState) int {
	pos := L.CheckInt(1)
	text := L.CheckString(2)
	s.doc.Insert(pos, text)
	return 0
}

// delete(start, end)
func (s *Session) docDelete(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	s.doc.Delete(start, end)
	return 0
}

// len() -> int
// Length in characters, not bytes.
func (s *Session) docLen(L *lua.LState) int {
	L.Push(lua.LNumber(s.doc.Len()))
	return 1
}

// format(key, value)
// value may be a string, number or boolean.
func (s *Session) docFormat(L *lua.LState) int {
	key := L.CheckString(1)
	value := L.CheckAny(2)

	if err := s.doc.SetAttribute(key, value.String()); err != nil {
		L.RaiseError("format: %v", err)
	}
	return 0
}

// save()
func (s *Session) historySave(L *lua.LState) int {
	s.history.SaveState(s.doc)
	return 0
}

// undo() -> bool
func (s *Session) historyUndo(L *lua.LState) int {
	L.Push(lua.LBool(s.history.Undo(s.doc)))
	return 1
}

// redo() -> bool
func (s *Session) historyRedo(L *lua.LState) int {
	L.Push(lua.LBool(s.history.Redo(s.doc)))
	return 1
}

// checkpoint(name)
func (s *Session) historyCheckpoint(L *lua.LState) int {
	s.history.CreateCheckpoint(L.CheckString(1), s.doc)
	return 0
}

// restore(name) -> bool
func (s *Session) historyRestore(L *lua.LState) int {
	L.Push(lua.LBool(s.history.RestoreCheckpoint(L.CheckString(1), s.doc)))
	return 1
}

// delete(name) -> bool
func (s *Session) historyDelete(L *lua.LState) int {
	L.Push(lua.LBool(s.history.DeleteCheckpoint(L.CheckString(1))))
	return 1
}

// checkpoints() -> {name, ...}
func (s *Session) historyCheckpoints(L *lua.LState) int {
	tbl := L.NewTable()
	for _, name := range s.history.ListCheckpoints() {
		tbl.Append(lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// dump() -> string
// JSON encoding of the document's current state.
func (s *Session) historyDump(L *lua.LState) int {
	data, err := s.doc.CreateSnapshot().MarshalJSON()
	if err != nil {
		L.RaiseError("dump: %v", err)
		return 0
	}
	L.Push(lua.LString(data))
	return 1
}
