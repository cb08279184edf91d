// Package document provides a small mutable text document and the immutable
// snapshots taken from it.
//
// A Document holds text plus a Format (bold, italic, font and so on). Calling
// CreateSnapshot copies the observable state into a Snapshot; Restore applies
// a snapshot back. Snapshots never share storage with the document that
// produced them, so later edits cannot leak into history.
//
//	doc := document.New("hello")
//	snap := doc.CreateSnapshot()
//	doc.Append(", world")
//	doc.Restore(snap) // doc.Text() == "hello"
//
// Snapshots can be encoded to JSON with MarshalJSON and read back with
// ParseSnapshot.
package document
