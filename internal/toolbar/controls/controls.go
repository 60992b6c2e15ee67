package controls

import (
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// factories maps each category to its action factory.
var factories = map[string]toolbar.Factory{
	"bold":           toggleMark(extension.Bold),
	"italic":         toggleMark(extension.Italic),
	"underline":      toggleMark(extension.Underline),
	"subscript":      exclusiveMark(extension.Subscript, extension.NameSuperscript),
	"superscript":    exclusiveMark(extension.Superscript, extension.NameSubscript),
	"bulletList":     toggleWrap(extension.BulletList, extension.ListItem),
	"orderedList":    toggleWrap(extension.OrderedList, extension.ListItem),
	"blockquote":     toggleWrap(extension.Blockquote),
	"codeBlock":      toggleBlock(extension.CodeBlock),
	"hardBreak":      hardBreak,
	"horizontalRule": horizontalRule,
	"clearFormat":    clearFormat,
	"undo":           historyStep(true),
	"redo":           historyStep(false),
	"textIndent":     newTextIndent,
	"textMargin":     newTextMargin,
	"textColor":      newTextColor,
	"heading":        newHeading,
	"textAlign":      newTextAlign,
	"link":           newLink,
	"placeholder":    newPlaceholder,
	"image":          newImage,
}

// Register adds every control to r.
func Register(r *toolbar.Registry) error {
	for category, f := range factories {
		if err := r.Register(category, f); err != nil {
			return err
		}
	}
	return nil
}

// Registry returns a registry holding every control.
func Registry() *toolbar.Registry {
	r := toolbar.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
