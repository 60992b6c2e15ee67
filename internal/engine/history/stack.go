package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 100

// OperationInfo describes a recorded command.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{Description: e.command.Description(), Timestamp: e.timestamp}
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	maxEntries int
}

// New creates a history holding at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push adds a command to the undo stack and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, &undoEntry{command: cmd, timestamp: time.Now()})
	h.redoStack = nil

	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last command on st.
func (h *History) Undo(st *State) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	if err := entry.command.Undo(st); err != nil {
		return err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return nil
}

// Redo reapplies the last undone command on st.
func (h *History) Redo(st *State) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	if err := entry.command.Execute(st); err != nil {
		return err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
