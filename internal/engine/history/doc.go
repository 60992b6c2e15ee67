// Package history provides undo/redo for the reference document engine.
//
// Every committed command chain is recorded as one Command holding the
// editing state before and after the commit. Undo restores the earlier
// state, redo the later one, and the selection travels with the document.
//
// # History Stack
//
// The History type manages the undo and redo stacks:
//
//	h := history.New(100) // at most 100 undo entries
//
//	h.Push(history.NewSnapshot("toggle bold", before, after))
//
//	h.Undo(&state)
//	h.Redo(&state)
//
// Pushing clears the redo stack. When the undo stack grows beyond its
// limit the oldest entries are dropped.
package history
