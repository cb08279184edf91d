// Package script runs Lua sessions against a document and its history.
//
// A Session exposes two global tables to Lua:
//
//	doc.text()            doc.set(s)          doc.append(s)
//	doc.insert(pos, s)    doc.delete(a, b)    doc.len()
//	doc.format(key, value)
//
//	history.save()        history.undo()      history.redo()
//	history.checkpoint(name)                  history.restore(name)
//	history.delete(name)  history.checkpoints()
//	history.dump()
//
// undo, redo, restore and delete return booleans. Positions are zero-based
// character indices, the same unit doc.len() counts in. Scripts run in a sandbox without io, os,
// package or the load* functions, and execution stops when the context
// passed to Run is cancelled.
//
//	s := script.NewSession(doc, mgr)
//	defer s.Close()
//	err := s.Run(ctx, "inline", `history.save() doc.set("A") history.undo()`)
package script
