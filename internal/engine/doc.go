// Package engine defines the contract between the toolbar framework and the
// rich-text document engine.
//
// The toolbar never owns document content. It constructs an engine once,
// with the union of the capability modules its actions contributed, and
// afterwards only issues commands and queries through the interfaces in
// this package.
//
// # Command Chains
//
// Mutations are queued on a Chain and committed with Run. A chain applies
// atomically: either every queued command succeeds and the document and
// selection are replaced in one step, or nothing changes and Run reports
// false. Commands that need a capability module the engine was not built
// with fail the chain.
//
//	ok := eng.Chain().Focus().ToggleMark("bold", nil).Run()
//
// # Queries
//
// IsActive answers whether formatting applies at the current selection,
// either by name ("bold"), by name and attributes ("heading", level 2) or
// by attributes alone ({"textAlign": "center"}).
//
// # Notifications
//
// Engines emit focus, blur, update and selectionUpdate synchronously from
// within the call that caused them. Handlers run before that call returns.
//
// # Implementations
//
// The doc sub-package provides an in-memory reference engine.
package engine
