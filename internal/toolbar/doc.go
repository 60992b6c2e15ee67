// Package toolbar binds declarative toolbar markup to editing behavior.
//
// # Actions
//
// Every <button richtext-click="identifier"> in the menubar becomes one
// Action. The identifier's category (the part before the first colon)
// selects a Factory from a Registry; "heading:2" resolves to the factory
// registered for "heading", keyed as "HeadingAction". Actions are created
// once, contribute their capability modules into a shared extension.Set
// before the engine exists, and then live for the whole editing session.
//
// # Behaviors
//
// Actions compose the reusable Menu and Dialog behaviors instead of
// inheriting them. A Menu is a dropdown list of items anchored below its
// control. A Dialog is a modal form that ends in save, remove or cancel.
//
// # Sessions
//
// A Session carries the engine and the click-listener table. Clicks, host
// updates and dialog continuations all run under the session lock, so
// action code never races itself.
package toolbar
