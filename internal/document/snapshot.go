package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// Snapshot is an immutable capture of a document's text and format.
type Snapshot struct {
	id        uuid.UUID
	text      string
	format    Format
	createdAt time.Time
}

func newSnapshot(text string, format Format, at time.Time) *Snapshot {
	return &Snapshot{
		id:        uuid.New(),
		text:      text,
		format:    format,
		createdAt: at,
	}
}

// ID returns the unique snapshot identifier.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// Text returns the captured text.
func (s *Snapshot) Text() string {
	return s.text
}

// Format returns the captured formatting attributes.
func (s *Snapshot) Format() Format {
	return s.format
}

// CreatedAt returns when the snapshot was taken.
func (s *Snapshot) CreatedAt() time.Time {
	return s.createdAt
}

// Preview returns at most n characters of the captured text, with an
// ellipsis when truncated.
func (s *Snapshot) Preview(n int) string {
	if n <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s.text) <= n {
		return s.text
	}

	g := uniseg.NewGraphemes(s.text)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s.text[:end] + "…"
}
