package history

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/dshills/patternkit/internal/document"
	"github.com/dshills/patternkit/internal/logging"
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// Originator is something whose state can be captured and restored.
type Originator interface {
	CreateSnapshot() *document.Snapshot
	Restore(s *document.Snapshot)
}

// Manager manages undo/redo state and named checkpoints.
type Manager struct {
	mu sync.Mutex

	undoStack   []*document.Snapshot
	redoStack   []*document.Snapshot
	checkpoints map[string]*document.Snapshot

	// Configuration
	maxEntries int
	logger     *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxEntries bounds the undo stack. Values <= 0 select DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(m *Manager) {
		if n <= 0 {
			n = DefaultMaxEntries
		}
		m.maxEntries = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a new history manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		checkpoints: make(map[string]*document.Snapshot),
		maxEntries:  DefaultMaxEntries,
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SaveState captures the current state of o onto the undo stack.
// Clears the redo stack.
func (m *Manager) SaveState(o Originator) {
	snap := o.CreateSnapshot()

	m.mu.Lock()
	m.pushUndoLocked(snap)
	m.redoStack = nil
	depth := len(m.undoStack)
	m.mu.Unlock()

	m.logger.Debug("state saved", "snapshot", snap.ID(), "undo_depth", depth)
}

// pushUndoLocked appends to the undo stack and enforces maxEntries.
func (m *Manager) pushUndoLocked(snap *document.Snapshot) {
	m.undoStack = append(m.undoStack, snap)

	if len(m.undoStack) > m.maxEntries {
		excess := len(m.undoStack) - m.maxEntries
		m.undoStack = m.undoStack[excess:]
	}
}

// Undo restores the most recently saved state.
// The current state of o is pushed onto the redo stack first.
// Returns false, changing nothing, if there is nothing to undo.
func (m *Manager) Undo(o Originator) bool {
	m.mu.Lock()
	if len(m.undoStack) == 0 {
		m.mu.Unlock()
		return false
	}

	entry := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, o.CreateSnapshot())
	m.mu.Unlock()

	// Apply without holding the lock
	o.Restore(entry)

	m.logger.Debug("undo", "snapshot", entry.ID())
	return true
}

// Redo re-applies the most recently undone state.
// The current state of o is pushed onto the undo stack first.
// Returns false, changing nothing, if there is nothing to redo.
func (m *Manager) Redo(o Originator) bool {
	m.mu.Lock()
	if len(m.redoStack) == 0 {
		m.mu.Unlock()
		return false
	}

	entry := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.pushUndoLocked(o.CreateSnapshot())
	m.mu.Unlock()

	o.Restore(entry)

	m.logger.Debug("redo", "snapshot", entry.ID())
	return true
}

// CanUndo returns true if undo is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (m *Manager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of redo entries available.
func (m *Manager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// Clear removes all undo/redo history. Checkpoints are kept.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undoStack = nil
	m.redoStack = nil
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (m *Manager) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.maxEntries = max

	if len(m.undoStack) > max {
		excess := len(m.undoStack) - max
		m.undoStack = m.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (m *Manager) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}

// CreateCheckpoint stores a snapshot of o under name, replacing any
// existing checkpoint with that name.
func (m *Manager) CreateCheckpoint(name string, o Originator) {
	snap := o.CreateSnapshot()

	m.mu.Lock()
	_, replaced := m.checkpoints[name]
	m.checkpoints[name] = snap
	m.mu.Unlock()

	m.logger.Debug("checkpoint created", "name", name, "snapshot", snap.ID(), "replaced", replaced)
}

// RestoreCheckpoint applies the checkpoint stored under name to o.
// The current state is pushed onto the undo stack and the redo stack is
// cleared, so the restore can itself be undone.
// Returns false, changing nothing, if no such checkpoint exists.
func (m *Manager) RestoreCheckpoint(name string, o Originator) bool {
	m.mu.Lock()
	snap, ok := m.checkpoints[name]
	if !ok {
		m.mu.Unlock()
		m.logger.Debug("checkpoint not found", "name", name)
		return false
	}

	m.pushUndoLocked(o.CreateSnapshot())
	m.redoStack = nil
	m.mu.Unlock()

	o.Restore(snap)

	m.logger.Debug("checkpoint restored", "name", name, "snapshot", snap.ID())
	return true
}

// DeleteCheckpoint removes the named checkpoint.
// Returns true if it existed.
func (m *Manager) DeleteCheckpoint(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.checkpoints[name]; !ok {
		return false
	}
	delete(m.checkpoints, name)
	return true
}

// ListCheckpoints returns the checkpoint names in sorted order.
func (m *Manager) ListCheckpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.checkpoints))
	for name := range m.checkpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checkpoint returns the snapshot stored under name.
func (m *Manager) Checkpoint(name string) (*document.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.checkpoints[name]
	return snap, ok
}
