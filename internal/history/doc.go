// Package history provides undo/redo and named checkpoints over document
// snapshots.
//
// The Manager keeps two stacks of immutable snapshots (undo and redo) and a
// map of named checkpoints. It works with any Originator, which is anything
// that can produce a snapshot of itself and restore from one;
// *document.Document is the usual one.
//
// # Undo and Redo
//
//	mgr := history.NewManager()
//	doc := document.New("")
//
//	// Save before each edit so the edit can be undone.
//	mgr.SaveState(doc); doc.SetText("A")
//	mgr.SaveState(doc); doc.SetText("B")
//	mgr.SaveState(doc); doc.SetText("C")
//
//	mgr.Undo(doc) // doc reads "B"
//	mgr.Undo(doc) // doc reads "A"
//	mgr.Redo(doc) // doc reads "B"
//
// Undo and Redo are strict inverses: each one snapshots the current state onto
// the opposite stack before applying the popped entry. Saving a new state or
// restoring a checkpoint clears the redo stack.
//
// # Checkpoints
//
//	mgr.CreateCheckpoint("draft", doc)
//	// ... edits ...
//	mgr.RestoreCheckpoint("draft", doc)
//
// Restoring a checkpoint is itself undoable.
//
// # Failures
//
// Undo, Redo and RestoreCheckpoint report failure with a false result and
// leave all state untouched. They never panic on empty stacks or unknown
// names.
package history
