// Package doc implements the reference document engine.
//
// Editor satisfies engine.Engine on top of the block/cell model in package
// model. It is the engine the rich-text field builds by default and the
// collaborator the toolbar tests run against.
//
// # Modules
//
// Every command checks the capability module it needs. A chain that uses
// a mark, node or attribute whose module was not contributed fails as a
// whole and leaves the document untouched.
//
// # Chains
//
// Commands are queued on a Chain and applied by Run to a copy of the
// editing state. Only when every command succeeds does the copy replace
// the live state, is recorded for undo and are the events emitted:
//
//	ok := ed.Chain().Focus().ToggleMark("bold", nil).Run()
//
// # Events
//
// Handlers registered with On run synchronously after the editor lock is
// released, in the order focus, blur, update, selectionUpdate.
package doc
