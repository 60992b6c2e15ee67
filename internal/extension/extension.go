// Package extension defines the capability modules contributed to the
// document engine.
//
// A Module is a named, configurable unit of editing functionality such as
// bold support or heading support with a set of levels. Toolbar actions
// contribute the modules they require into a shared Set before the engine
// is constructed. A Set never holds two modules with the same name:
// identical instances are skipped, mergeable configurations are combined
// and incompatible duplicates are rejected.
package extension

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Errors returned by module sets.
var (
	// ErrDuplicateModule indicates two modules share a name.
	ErrDuplicateModule = errors.New("extension: duplicate module")

	// ErrIncompatibleModule indicates a module of the same name exists with
	// a configuration that cannot be merged.
	ErrIncompatibleModule = errors.New("extension: incompatible module")

	// ErrInvalidOption indicates a module option outside its allowed domain.
	ErrInvalidOption = errors.New("extension: invalid option")
)

// Kind classifies a module the way the document schema uses it.
type Kind int

const (
	// KindExtension is a schema-less behavior (history, alignment).
	KindExtension Kind = iota
	// KindNode contributes a node type (paragraph, heading).
	KindNode
	// KindMark contributes a mark type (bold, link).
	KindMark
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindMark:
		return "mark"
	default:
		return "extension"
	}
}

// Module names.
const (
	NameDocument       = "doc"
	NameParagraph      = "paragraph"
	NameText           = "text"
	NameHardBreak      = "hardBreak"
	NameBold           = "bold"
	NameItalic         = "italic"
	NameUnderline      = "underline"
	NameSubscript      = "subscript"
	NameSuperscript    = "superscript"
	NameBulletList     = "bulletList"
	NameOrderedList    = "orderedList"
	NameListItem       = "listItem"
	NameBlockquote     = "blockquote"
	NameCodeBlock      = "codeBlock"
	NameHorizontalRule = "horizontalRule"
	NameHistory        = "history"
	NameHeading        = "heading"
	NameTextAlign      = "textAlign"
	NameTextIndent     = "textIndent"
	NameTextMargin     = "textMargin"
	NameTextColor      = "textColor"
	NameLink           = "link"
	NameProcurator     = "procurator"
	NameImage          = "image"
	NamePlaceholder    = "placeholder"
	NameCharacterCount = "characterCount"
)

// Module is a named capability unit. Options holds the typed configuration
// (one of the *Options types in this package) or nil.
type Module struct {
	Name    string
	Kind    Kind
	Options any
}

// String returns a short description of the module.
func (m *Module) String() string {
	if m == nil {
		return "<nil module>"
	}
	return fmt.Sprintf("%s(%s)", m.Name, m.Kind)
}

// Shared module instances. Actions that need the same unconfigured module
// contribute the very same pointer, so identity deduplication applies.
var (
	Document       = &Module{Name: NameDocument, Kind: KindNode}
	Paragraph      = &Module{Name: NameParagraph, Kind: KindNode}
	Text           = &Module{Name: NameText, Kind: KindNode}
	HardBreak      = &Module{Name: NameHardBreak, Kind: KindNode}
	Bold           = &Module{Name: NameBold, Kind: KindMark}
	Italic         = &Module{Name: NameItalic, Kind: KindMark}
	Underline      = &Module{Name: NameUnderline, Kind: KindMark}
	Subscript      = &Module{Name: NameSubscript, Kind: KindMark}
	Superscript    = &Module{Name: NameSuperscript, Kind: KindMark}
	BulletList     = &Module{Name: NameBulletList, Kind: KindNode}
	OrderedList    = &Module{Name: NameOrderedList, Kind: KindNode}
	ListItem       = &Module{Name: NameListItem, Kind: KindNode}
	Blockquote     = &Module{Name: NameBlockquote, Kind: KindNode}
	CodeBlock      = &Module{Name: NameCodeBlock, Kind: KindNode}
	HorizontalRule = &Module{Name: NameHorizontalRule, Kind: KindNode}
	History        = &Module{Name: NameHistory, Kind: KindExtension}
)

// Base returns the modules every engine is built with.
func Base() []*Module {
	return []*Module{Document, Paragraph, Text, HardBreak}
}

// Set is an ordered collection of modules with at most one module per name.
// The zero value is ready to use.
type Set struct {
	modules []*Module
}

// NewSet creates a set holding the given modules.
func NewSet(modules ...*Module) (*Set, error) {
	s := &Set{}
	for _, m := range modules {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add contributes m. Adding the same instance twice is a no-op; adding a
// different instance whose name is already taken is ErrDuplicateModule.
// Callers that can merge configuration use Find first.
func (s *Set) Add(m *Module) error {
	if m == nil {
		return nil
	}
	for _, existing := range s.modules {
		if existing == m {
			return nil
		}
		if existing.Name == m.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateModule, m.Name)
		}
	}
	s.modules = append(s.modules, m)
	return nil
}

// AddOnce contributes m unless a module with the same name exists.
// It reports whether m was added.
func (s *Set) AddOnce(m *Module) bool {
	if m == nil || s.Has(m.Name) {
		return false
	}
	s.modules = append(s.modules, m)
	return true
}

// Find returns the module registered under name, or nil.
func (s *Set) Find(name string) *Module {
	for _, m := range s.modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Has reports whether a module named name is registered.
func (s *Set) Has(name string) bool {
	return s.Find(name) != nil
}

// Len returns the number of modules.
func (s *Set) Len() int {
	return len(s.modules)
}

// Modules returns the modules in contribution order.
func (s *Set) Modules() []*Module {
	return slices.Clone(s.modules)
}

// Names returns the sorted module names.
func (s *Set) Names() []string {
	names := make([]string, len(s.modules))
	for i, m := range s.modules {
		names[i] = m.Name
	}
	sort.Strings(names)
	return names
}
