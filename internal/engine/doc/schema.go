package doc

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/model"
	"github.com/dshills/richtextarea/internal/extension"
)

var markNames = []string{
	extension.NameBold, extension.NameItalic, extension.NameUnderline,
	extension.NameSubscript, extension.NameSuperscript, extension.NameLink,
	extension.NameProcurator, extension.NameTextColor,
}

var nodeNames = []string{
	extension.NameParagraph, extension.NameHeading, extension.NameCodeBlock,
	extension.NameHorizontalRule, extension.NameImage, extension.NameHardBreak,
	extension.NameBulletList, extension.NameOrderedList, extension.NameBlockquote,
	extension.NameListItem,
}

func kindOf(name string) extension.Kind {
	switch {
	case slices.Contains(markNames, name):
		return extension.KindMark
	case slices.Contains(nodeNames, name):
		return extension.KindNode
	default:
		return extension.KindExtension
	}
}

func isWrap(name string) bool {
	return name == model.WrapBulletList || name == model.WrapOrderedList || name == model.WrapBlockquote
}

// canonicalAttrs normalizes attribute values compared against the
// document, so "#ff0000" matches a stored "rgb(255, 0, 0)".
func canonicalAttrs(attrs engine.Attrs) engine.Attrs {
	v, ok := attrs[extension.NameTextColor]
	if !ok {
		return attrs
	}
	out := attrs.Clone()
	out[extension.NameTextColor] = model.CanonicalColor(v)
	return out
}

// requires lists the modules a node type or wrap needs.
func requires(name string) []string {
	switch name {
	case model.WrapBulletList, model.WrapOrderedList:
		return []string{name, extension.NameListItem}
	case model.TypeParagraph:
		return nil
	default:
		return []string{name}
	}
}

func hasAll(set *extension.Set, names []string) bool {
	for _, n := range names {
		if !set.Has(n) {
			return false
		}
	}
	return true
}

// checkHeading validates a heading level against the heading module.
func checkHeading(set *extension.Set, attrs engine.Attrs) error {
	opts := extension.HeadingConfig(set.Find(extension.NameHeading))
	level, err := strconv.Atoi(attrs[model.AttrLevel])
	if err != nil {
		return fmt.Errorf("%w: heading level %q", engine.ErrInvalidCommand, attrs[model.AttrLevel])
	}
	if opts != nil && !slices.Contains(opts.Levels, level) {
		return fmt.Errorf("%w: heading level %d not enabled", engine.ErrInvalidCommand, level)
	}
	return nil
}

// checkMark validates mark attributes and returns them in stored form.
func checkMark(set *extension.Set, name string, attrs engine.Attrs) (engine.Attrs, error) {
	switch name {
	case extension.NameTextColor:
		color := attrs[extension.NameTextColor]
		if !colorAllowed(set, color) {
			return nil, fmt.Errorf("%w: text color %q", engine.ErrInvalidCommand, color)
		}
		return engine.Attrs{extension.NameTextColor: model.CanonicalColor(color)}, nil
	case extension.NameLink:
		if attrs["href"] == "" {
			return nil, fmt.Errorf("%w: link without href", engine.ErrInvalidCommand)
		}
	case extension.NameProcurator:
		if attrs["variable"] == "" {
			return nil, fmt.Errorf("%w: placeholder without variable", engine.ErrInvalidCommand)
		}
	}
	return attrs.Clone(), nil
}

func colorAllowed(set *extension.Set, color string) bool {
	opts := extension.TextColorConfig(set.Find(extension.NameTextColor))
	if opts != nil && len(opts.AllowedClasses) > 0 {
		return slices.Contains(opts.AllowedClasses, color)
	}
	_, ok := model.NormalizeColor(color)
	return ok
}

// attrTypes returns the block types a formatting attribute applies to.
func attrTypes(set *extension.Set, name string) []string {
	m := set.Find(name)
	switch name {
	case extension.NameTextAlign:
		if o := extension.TextAlignConfig(m); o != nil {
			return o.Types
		}
	case extension.NameTextIndent:
		if o := extension.TextIndentConfig(m); o != nil {
			return o.Types
		}
	case extension.NameTextMargin:
		if o := extension.TextMarginConfig(m); o != nil {
			return o.Types
		}
	}
	return []string{model.TypeParagraph, model.TypeHeading}
}

// checkBlockAttr validates a block formatting attribute value.
func checkBlockAttr(set *extension.Set, name, value string) error {
	switch name {
	case extension.NameTextAlign:
		opts := extension.TextAlignConfig(set.Find(name))
		if opts != nil && !slices.Contains(opts.Alignments, value) {
			return fmt.Errorf("%w: alignment %q", engine.ErrInvalidCommand, value)
		}
	case extension.NameTextMargin:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > maxLevel(set, name) {
			return fmt.Errorf("%w: margin level %q", engine.ErrInvalidCommand, value)
		}
	}
	return nil
}

func maxLevel(set *extension.Set, name string) int {
	if name == extension.NameTextMargin {
		if o := extension.TextMarginConfig(set.Find(name)); o != nil && o.MaxIndentLevel > 0 {
			return o.MaxIndentLevel
		}
		return extension.DefaultMaxMarginLevel
	}
	return 1 << 16
}

// conform drops what the module set cannot represent: unknown block types
// become paragraphs, unregistered wraps are lifted and unregistered marks
// removed.
func conform(d *model.Document, set *extension.Set) *model.Document {
	var blocks []*model.Block
	for _, b := range d.Blocks {
		if !hasAll(set, requires(b.Type)) ||
			(b.Type == model.TypeHeading && checkHeading(set, b.Attrs) != nil) {
			if !b.IsTextblock() {
				continue
			}
			b.Type = model.TypeParagraph
			b.SetAttr(model.AttrLevel, "")
		}
		if b.Wrap != "" && !hasAll(set, requires(b.Wrap)) {
			b.Wrap = ""
		}
		for _, attr := range []string{model.AttrTextAlign, model.AttrTextIndent, model.AttrTextMargin} {
			v := b.Attr(attr)
			if v == "" {
				continue
			}
			if !set.Has(attr) || !slices.Contains(attrTypes(set, attr), b.Type) || checkBlockAttr(set, attr, v) != nil {
				b.SetAttr(attr, "")
			}
		}
		cells := b.Cells[:0]
		for _, c := range b.Cells {
			c := c // per-iteration copy (pre-go1.22 loop semantics)
			if c.Node != "" && !set.Has(c.Node) {
				continue
			}
			for _, m := range slices.Clone(c.Marks) {
				if !set.Has(m.Name) || b.Type == model.TypeCodeBlock {
					c.RemoveMark(m.Name)
					continue
				}
				if _, err := checkMark(set, m.Name, m.Attrs); err != nil {
					c.RemoveMark(m.Name)
				}
			}
			cells = append(cells, c)
		}
		b.Cells = cells
		blocks = append(blocks, b)
	}
	d.Blocks = blocks
	d.Normalize()
	return d
}
