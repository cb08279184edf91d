package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/patternkit/internal/document"
)

// previewLength is the number of characters kept in EntryInfo.Preview.
const previewLength = 32

// EntryInfo describes a history entry without exposing the snapshot.
type EntryInfo struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Preview   string
}

func entryInfo(s *document.Snapshot) EntryInfo {
	return EntryInfo{
		ID:        s.ID(),
		CreatedAt: s.CreatedAt(),
		Preview:   s.Preview(previewLength),
	}
}

// UndoInfo returns info about available undo entries, oldest first.
func (m *Manager) UndoInfo() []EntryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]EntryInfo, len(m.undoStack))
	for i, s := range m.undoStack {
		result[i] = entryInfo(s)
	}
	return result
}

// RedoInfo returns info about available redo entries, oldest first.
func (m *Manager) RedoInfo() []EntryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]EntryInfo, len(m.redoStack))
	for i, s := range m.redoStack {
		result[i] = entryInfo(s)
	}
	return result
}

// PeekUndo returns info about the next undo entry without removing it.
func (m *Manager) PeekUndo() (EntryInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return entryInfo(m.undoStack[len(m.undoStack)-1]), true
}

// PeekRedo returns info about the next redo entry without removing it.
func (m *Manager) PeekRedo() (EntryInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return entryInfo(m.redoStack[len(m.redoStack)-1]), true
}
