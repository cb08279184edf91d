package document

import (
	"time"

	"github.com/rivo/uniseg"
)

// Document is a mutable text with formatting attributes.
//
// Document is not safe for concurrent use.
type Document struct {
	text   string
	format Format

	// now is used to timestamp snapshots; replaced in tests.
	now func() time.Time
}

// New creates a document with the given text and the default format.
func New(text string) *Document {
	return &Document{
		text:   text,
		format: DefaultFormat(),
		now:    time.Now,
	}
}

// Text returns the document text.
func (d *Document) Text() string {
	return d.text
}

// SetText replaces the document text.
func (d *Document) SetText(text string) {
	d.text = text
}

// Append adds text to the end of the document.
func (d *Document) Append(text string) {
	d.text += text
}

// Insert inserts text before the character at index pos.
// Positions count grapheme clusters, like Len, and are clamped to [0, Len()].
func (d *Document) Insert(pos int, text string) {
	off := d.offset(pos)
	d.text = d.text[:off] + text + d.text[off:]
}

// Delete removes the characters in [start, end).
// Positions are clamped; an empty or reversed range is a no-op.
func (d *Document) Delete(start, end int) {
	if start >= end {
		return
	}
	from, to := d.offset(start), d.offset(end)
	d.text = d.text[:from] + d.text[to:]
}

// Len returns the length of the text in user-perceived characters
// (grapheme clusters).
func (d *Document) Len() int {
	return uniseg.GraphemeClusterCount(d.text)
}

// Format returns the current formatting attributes.
func (d *Document) Format() Format {
	return d.format
}

// SetFormat replaces the formatting attributes.
func (d *Document) SetFormat(f Format) {
	d.format = f
}

// SetAttribute sets a single formatting attribute by name.
// The document is left unchanged on error.
func (d *Document) SetAttribute(key, value string) error {
	f, err := d.format.WithAttribute(key, value)
	if err != nil {
		return err
	}
	d.format = f
	return nil
}

// CreateSnapshot captures the current text and format.
func (d *Document) CreateSnapshot() *Snapshot {
	return newSnapshot(d.text, d.format, d.now())
}

// Restore replaces the document state with the contents of s.
// A nil snapshot is ignored.
func (d *Document) Restore(s *Snapshot) {
	if s == nil {
		return
	}
	d.text = s.text
	d.format = s.format
}

// offset returns the byte offset of character index pos, clamped to the
// text. The result always falls on a grapheme cluster boundary.
func (d *Document) offset(pos int) int {
	if pos <= 0 {
		return 0
	}

	g := uniseg.NewGraphemes(d.text)
	for i := 0; i < pos; i++ {
		if !g.Next() {
			return len(d.text)
		}
	}
	_, end := g.Positions()
	return end
}
