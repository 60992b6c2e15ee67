// Package richtext binds a <textarea> inside a .dj-richtext-wrapper to a
// rich-text engine and its toolbar.
//
// The textarea stays the form field: it is moved behind the wrapper,
// classed dj-concealed and kept holding the HTML of the document. When the
// textarea is followed by a <script type="application/json"> the field
// value is the JSON form of the document instead, and the script payload
// is the initial content.
//
// # Events
//
// Engine focus, update and blur are forwarded as field events. Blur also
// clears the toolbar state and marks the wrapper valid or invalid.
package richtext
