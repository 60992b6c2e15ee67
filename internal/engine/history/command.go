package history

import (
	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/model"
)

// State is the editing state a command transforms.
type State struct {
	Doc       *model.Document
	Selection engine.Selection
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{Selection: s.Selection}
	if s.Doc != nil {
		c.Doc = s.Doc.Clone()
	}
	return c
}

// Command represents an edit that can be executed and undone.
type Command interface {
	// Execute applies the command to st.
	Execute(st *State) error

	// Undo reverses the command on st.
	Undo(st *State) error

	// Description returns a human-readable description of the command.
	Description() string
}

// SnapshotCommand restores whole states. The engine records one per
// committed chain.
type SnapshotCommand struct {
	Name   string
	Before State
	After  State
}

// NewSnapshot creates a snapshot command. The states are copied.
func NewSnapshot(name string, before, after State) *SnapshotCommand {
	return &SnapshotCommand{Name: name, Before: before.Clone(), After: after.Clone()}
}

// Execute moves st to the state after the command.
func (c *SnapshotCommand) Execute(st *State) error {
	*st = c.After.Clone()
	return nil
}

// Undo moves st back to the state before the command.
func (c *SnapshotCommand) Undo(st *State) error {
	*st = c.Before.Clone()
	return nil
}

// Description returns the command name.
func (c *SnapshotCommand) Description() string {
	if c.Name == "" {
		return "edit"
	}
	return c.Name
}
