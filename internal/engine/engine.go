package engine

import (
	"maps"

	"github.com/dshills/richtextarea/internal/extension"
)

// Attrs holds node or mark attributes.
type Attrs map[string]string

// Clone returns a copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Matches reports whether every entry of want is present in a.
func (a Attrs) Matches(want Attrs) bool {
	for k, v := range want {
		if got, ok := a[k]; !ok || got != v {
			return false
		}
	}
	return true
}

// Selection is a range of flat document positions. From <= To.
type Selection struct {
	From int
	To   int
}

// Empty reports whether the selection is a collapsed cursor.
func (s Selection) Empty() bool {
	return s.From == s.To
}

// Event identifies an engine notification.
type Event int

const (
	// EventFocus fires when the engine gains focus.
	EventFocus Event = iota
	// EventBlur fires when the engine loses focus.
	EventBlur
	// EventUpdate fires after the document content changed.
	EventUpdate
	// EventSelectionUpdate fires after the selection changed.
	EventSelectionUpdate
)

// String returns the event name as hosts know it.
func (e Event) String() string {
	switch e {
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventUpdate:
		return "update"
	case EventSelectionUpdate:
		return "selectionUpdate"
	default:
		return "unknown"
	}
}

// Content is initial or replacement document content. JSON takes
// precedence over HTML when both are set.
type Content struct {
	HTML string
	JSON []byte
}

// IsZero reports whether c carries no content.
func (c Content) IsZero() bool {
	return c.HTML == "" && len(c.JSON) == 0
}

// Config is what an engine is constructed with.
type Config struct {
	// Modules is the merged set of capability modules.
	Modules *extension.Set

	// Content is the initial document.
	Content Content

	// Editable is false for disabled fields.
	Editable bool

	// MaxUndoEntries bounds the undo history. Zero means the engine default.
	MaxUndoEntries int
}

// Factory constructs an engine.
type Factory func(cfg Config) (Engine, error)

// Engine is the document-editing engine as consumed by the toolbar.
type Engine interface {
	// Chain starts a new command chain.
	Chain() Chain

	// Undo reverts the last committed chain. Requires the history module.
	Undo() bool
	// Redo reapplies the last undone chain. Requires the history module.
	Redo() bool

	// IsActive reports whether formatting applies at the selection. With an
	// empty name only attrs are matched, against marks and blocks alike.
	IsActive(name string, attrs Attrs) bool
	// Attributes returns the attributes of the named mark or node at the
	// selection, or nil when it is absent.
	Attributes(name string) Attrs

	// Selection returns the current selection.
	Selection() Selection
	// SetSelection moves the selection, clamped to the document.
	SetSelection(from, to int)
	// TextBetween returns the text in [from, to) with blockSep between blocks.
	TextBetween(from, to int, blockSep string) string

	// HTML serializes the document as HTML.
	HTML() string
	// JSON serializes the document as structured JSON.
	JSON() []byte
	// Text returns the plain text of the document.
	Text() string
	// IsEmpty reports whether the document holds no content.
	IsEmpty() bool
	// CharacterCount returns the number of user-perceived characters.
	CharacterCount() int

	// Focus and Blur move the input focus and emit the matching event.
	Focus()
	Blur()
	// Focused reports whether the engine has focus.
	Focused() bool
	// Editable reports whether user edits are accepted.
	Editable() bool

	// On registers fn for event e and returns a function that removes it.
	On(e Event, fn func()) (off func())
}

// Chain queues commands for one atomic commit.
type Chain interface {
	// Focus gives the engine focus as part of the commit.
	Focus() Chain

	// ToggleMark adds the mark over the selection, or removes it when the
	// whole selection already carries it.
	ToggleMark(name string, attrs Attrs) Chain
	// SetMark applies the mark with attrs over the selection.
	SetMark(name string, attrs Attrs) Chain
	// UnsetMark removes the mark from the selection.
	UnsetMark(name string) Chain
	// UnsetAllMarks removes every mark from the selection.
	UnsetAllMarks() Chain
	// ExtendMarkRange grows the selection to the contiguous extent of the
	// named mark under it.
	ExtendMarkRange(name string) Chain

	// ToggleWrap wraps the selected blocks in a list or blockquote, or
	// unwraps them when already wrapped by it.
	ToggleWrap(name string) Chain
	// ToggleBlock switches the selected blocks between the named type and
	// paragraphs.
	ToggleBlock(name string, attrs Attrs) Chain
	// SetBlock turns the selected blocks into the named type.
	SetBlock(name string, attrs Attrs) Chain
	// ClearNodes turns the selected blocks into unwrapped paragraphs.
	ClearNodes() Chain

	// SetBlockAttr sets a block attribute on the selected blocks.
	SetBlockAttr(name, value string) Chain
	// UnsetBlockAttr removes a block attribute from the selected blocks.
	UnsetBlockAttr(name string) Chain
	// AdjustBlockAttr steps a numeric block attribute by delta.
	AdjustBlockAttr(name string, delta int) Chain

	// InsertNode inserts a leaf node (hardBreak, horizontalRule, image)
	// replacing the selection.
	InsertNode(name string, attrs Attrs) Chain
	// InsertText inserts text at the selection, replacing it.
	InsertText(text string) Chain
	// InsertContentAt replaces [from, to) with text.
	InsertContentAt(from, to int, text string) Chain

	// ClearContent empties the document.
	ClearContent() Chain
	// InsertContent inserts parsed content at the selection.
	InsertContent(c Content) Chain

	// Run commits every queued command as one operation.
	Run() bool
}
