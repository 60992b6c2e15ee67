// Package controls provides the toolbar actions a richtext field offers.
//
// Register adds them to a toolbar.Registry under these categories:
//
//	bold italic underline subscript superscript
//	bulletList orderedList blockquote codeBlock
//	hardBreak horizontalRule clearFormat undo redo
//	textIndent:<value> textMargin:increase|decrease|<other>
//	textColor heading[:<level>] textAlign[:<alignment>]
//	link placeholder image
//
// textColor, heading and textAlign read their choices from the menu that
// follows their button; heading and textAlign also work standalone with
// the choice in the identifier. link, placeholder and image open the
// <dialog richtext-opener="..."> of their identifier.
package controls
