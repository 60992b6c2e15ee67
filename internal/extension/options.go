package extension

import (
	"fmt"
	"slices"
)

// Block types formatting extensions apply to by default.
var defaultTypes = []string{NameHeading, NameParagraph}

// MaxHeadingLevel is the deepest heading level.
const MaxHeadingLevel = 6

// DefaultMaxMarginLevel is the default number of margin steps.
const DefaultMaxMarginLevel = 5

// Alignments lists the accepted text alignment keywords.
var Alignments = []string{"left", "center", "right", "justify"}

// HeadingOptions configures the heading node.
type HeadingOptions struct {
	Levels []int
}

// Merge adds levels, keeping the list sorted and unique.
func (o *HeadingOptions) Merge(levels ...int) {
	for _, l := range levels {
		if !slices.Contains(o.Levels, l) {
			o.Levels = append(o.Levels, l)
		}
	}
	slices.Sort(o.Levels)
}

// TextAlignOptions configures text alignment.
type TextAlignOptions struct {
	Types            []string
	Alignments       []string
	DefaultAlignment string
}

// Merge adds alignments, keeping first-seen order without duplicates.
func (o *TextAlignOptions) Merge(alignments ...string) {
	for _, a := range alignments {
		if !slices.Contains(o.Alignments, a) {
			o.Alignments = append(o.Alignments, a)
		}
	}
}

// TextIndentOptions configures text indentation.
type TextIndentOptions struct {
	Types []string
}

// TextMarginOptions configures stepped left margins.
type TextMarginOptions struct {
	Types          []string
	MaxIndentLevel int
}

// TextColorOptions configures text color. An empty AllowedClasses list
// means colors are inline rgb() styles.
type TextColorOptions struct {
	AllowedClasses []string
}

// LinkOptions configures the link mark.
type LinkOptions struct {
	OpenOnClick bool
}

// ImageOptions configures the image node.
type ImageOptions struct {
	Inline bool
}

// PlaceholderOptions configures the empty-document placeholder.
type PlaceholderOptions struct {
	Placeholder string
}

// CharacterCountOptions configures the character limit.
type CharacterCountOptions struct {
	Limit int
}

// Heading returns a heading module accepting the given levels.
func Heading(levels ...int) (*Module, error) {
	opts := &HeadingOptions{}
	for _, l := range levels {
		if l < 1 || l > MaxHeadingLevel {
			return nil, fmt.Errorf("%w: heading level %d", ErrInvalidOption, l)
		}
	}
	opts.Merge(levels...)
	return &Module{Name: NameHeading, Kind: KindNode, Options: opts}, nil
}

// TextAlign returns a text alignment module accepting the given keywords.
func TextAlign(alignments ...string) (*Module, error) {
	for _, a := range alignments {
		if !slices.Contains(Alignments, a) {
			return nil, fmt.Errorf("%w: alignment %q", ErrInvalidOption, a)
		}
	}
	opts := &TextAlignOptions{Types: slices.Clone(defaultTypes)}
	opts.Merge(alignments...)
	return &Module{Name: NameTextAlign, Kind: KindExtension, Options: opts}, nil
}

// TextIndent returns a text indentation module.
func TextIndent() *Module {
	return &Module{
		Name:    NameTextIndent,
		Kind:    KindExtension,
		Options: &TextIndentOptions{Types: slices.Clone(defaultTypes)},
	}
}

// TextMargin returns a stepped margin module.
func TextMargin(maxLevel int) *Module {
	if maxLevel <= 0 {
		maxLevel = DefaultMaxMarginLevel
	}
	return &Module{
		Name: NameTextMargin,
		Kind: KindExtension,
		Options: &TextMarginOptions{
			Types:          slices.Clone(defaultTypes),
			MaxIndentLevel: maxLevel,
		},
	}
}

// TextColor returns a text color mark module.
func TextColor(allowedClasses ...string) *Module {
	return &Module{
		Name:    NameTextColor,
		Kind:    KindMark,
		Options: &TextColorOptions{AllowedClasses: slices.Clone(allowedClasses)},
	}
}

// Link returns a link mark module.
func Link(openOnClick bool) *Module {
	return &Module{Name: NameLink, Kind: KindMark, Options: &LinkOptions{OpenOnClick: openOnClick}}
}

// Procurator returns the placeholder-variable mark module.
func Procurator() *Module {
	return &Module{Name: NameProcurator, Kind: KindMark}
}

// Image returns an image node module.
func Image(inline bool) *Module {
	return &Module{Name: NameImage, Kind: KindNode, Options: &ImageOptions{Inline: inline}}
}

// Placeholder returns the empty-document placeholder module.
func Placeholder(text string) *Module {
	return &Module{Name: NamePlaceholder, Kind: KindExtension, Options: &PlaceholderOptions{Placeholder: text}}
}

// CharacterCount returns a character limit module.
func CharacterCount(limit int) *Module {
	return &Module{Name: NameCharacterCount, Kind: KindExtension, Options: &CharacterCountOptions{Limit: limit}}
}

// HeadingConfig returns the heading options of m, or nil.
func HeadingConfig(m *Module) *HeadingOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*HeadingOptions)
	return o
}

// TextAlignConfig returns the text alignment options of m, or nil.
func TextAlignConfig(m *Module) *TextAlignOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*TextAlignOptions)
	return o
}

// TextMarginConfig returns the margin options of m, or nil.
func TextMarginConfig(m *Module) *TextMarginOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*TextMarginOptions)
	return o
}

// TextColorConfig returns the text color options of m, or nil.
func TextColorConfig(m *Module) *TextColorOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*TextColorOptions)
	return o
}

// CharacterCountConfig returns the character count options of m, or nil.
func CharacterCountConfig(m *Module) *CharacterCountOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*CharacterCountOptions)
	return o
}

// PlaceholderConfig returns the placeholder options of m, or nil.
func PlaceholderConfig(m *Module) *PlaceholderOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*PlaceholderOptions)
	return o
}

// TextIndentConfig returns the indentation options of m, or nil.
func TextIndentConfig(m *Module) *TextIndentOptions {
	if m == nil {
		return nil
	}
	o, _ := m.Options.(*TextIndentOptions)
	return o
}
