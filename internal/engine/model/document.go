// Package model is the document model of the reference engine.
//
// A Document is a flat list of blocks. Each text block holds one cell per
// character (or inline leaf such as a hard break), and each cell carries its
// own marks, which keeps mark commands simple range walks. Lists and
// blockquotes are a single level of wrapping recorded on the block.
//
// Positions are flat: block i spans [Start(i), Start(i)+len(cells)] and the
// next block starts one position after that, so a boundary between two
// blocks costs one position.
package model

import (
	"slices"
	"strings"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
)

// Block types and wraps use the module names that enable them.
const (
	TypeParagraph      = extension.NameParagraph
	TypeHeading        = extension.NameHeading
	TypeCodeBlock      = extension.NameCodeBlock
	TypeHorizontalRule = extension.NameHorizontalRule
	TypeImage          = extension.NameImage

	WrapBulletList  = extension.NameBulletList
	WrapOrderedList = extension.NameOrderedList
	WrapBlockquote  = extension.NameBlockquote

	NodeHardBreak = extension.NameHardBreak
)

// Block attribute keys.
const (
	AttrLevel      = "level"
	AttrTextAlign  = extension.NameTextAlign
	AttrTextIndent = extension.NameTextIndent
	AttrTextMargin = extension.NameTextMargin
	AttrSrc        = "src"
	AttrAlt        = "alt"
)

// Cell is one character or inline leaf node.
type Cell struct {
	Char  rune
	Node  string
	Marks []Mark
}

// Text returns the plain text the cell contributes.
func (c Cell) Text() string {
	if c.Node == NodeHardBreak {
		return "\n"
	}
	if c.Node != "" {
		return ""
	}
	return string(c.Char)
}

// Block is a paragraph-level node.
type Block struct {
	Type  string
	Wrap  string
	Attrs engine.Attrs
	Cells []Cell
}

// IsTextblock reports whether the block holds inline content.
func (b *Block) IsTextblock() bool {
	return b.Type != TypeHorizontalRule && b.Type != TypeImage
}

// Attr returns a block attribute or "".
func (b *Block) Attr(key string) string {
	if b.Attrs == nil {
		return ""
	}
	return b.Attrs[key]
}

// SetAttr sets or, with an empty value, removes a block attribute.
func (b *Block) SetAttr(key, value string) {
	if value == "" {
		delete(b.Attrs, key)
		return
	}
	if b.Attrs == nil {
		b.Attrs = engine.Attrs{}
	}
	b.Attrs[key] = value
}

func (b *Block) clone() *Block {
	c := &Block{Type: b.Type, Wrap: b.Wrap, Attrs: b.Attrs.Clone()}
	if len(b.Cells) > 0 {
		c.Cells = make([]Cell, len(b.Cells))
		for i, cell := range b.Cells {
			c.Cells[i] = Cell{Char: cell.Char, Node: cell.Node, Marks: cloneMarks(cell.Marks)}
		}
	}
	return c
}

// Paragraph returns an empty paragraph block.
func Paragraph() *Block {
	return &Block{Type: TypeParagraph}
}

// Document is the content of the reference engine.
type Document struct {
	Blocks []*Block
}

// New returns a document with a single empty paragraph.
func New() *Document {
	return &Document{Blocks: []*Block{Paragraph()}}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := &Document{Blocks: make([]*Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		c.Blocks[i] = b.clone()
	}
	return c
}

// Normalize guarantees at least one block.
func (d *Document) Normalize() {
	if len(d.Blocks) == 0 {
		d.Blocks = []*Block{Paragraph()}
	}
}

// Size returns the largest valid position.
func (d *Document) Size() int {
	size := 0
	for _, b := range d.Blocks {
		size += len(b.Cells)
	}
	return size + len(d.Blocks) - 1
}

// Start returns the position of the first cell of block i.
func (d *Document) Start(i int) int {
	start := 0
	for _, b := range d.Blocks[:i] {
		start += len(b.Cells) + 1
	}
	return start
}

// Pos is a resolved position: a block index and a cell offset.
type Pos struct {
	Block  int
	Offset int
}

// Resolve maps a flat position, clamped to the document, to a block offset.
func (d *Document) Resolve(pos int) Pos {
	if pos < 0 {
		pos = 0
	}
	start := 0
	for i, b := range d.Blocks {
		end := start + len(b.Cells)
		if pos <= end {
			return Pos{Block: i, Offset: pos - start}
		}
		start = end + 1
	}
	last := len(d.Blocks) - 1
	return Pos{Block: last, Offset: len(d.Blocks[last].Cells)}
}

// Clamp limits pos to [0, Size].
func (d *Document) Clamp(pos int) int {
	return min(max(pos, 0), d.Size())
}

// BlockRange returns the indexes of the first and last blocks touched by
// [from, to].
func (d *Document) BlockRange(from, to int) (first, last int) {
	return d.Resolve(from).Block, d.Resolve(to).Block
}

// EachCell calls fn for every cell inside [from, to).
func (d *Document) EachCell(from, to int, fn func(b *Block, c *Cell)) {
	a, z := d.Resolve(from), d.Resolve(to)
	for bi := a.Block; bi <= z.Block; bi++ {
		b := d.Blocks[bi]
		lo, hi := 0, len(b.Cells)
		if bi == a.Block {
			lo = a.Offset
		}
		if bi == z.Block {
			hi = z.Offset
		}
		for i := lo; i < hi; i++ {
			fn(b, &b.Cells[i])
		}
	}
}

// TextBetween returns the text of [from, to) joining blocks with sep.
func (d *Document) TextBetween(from, to int, sep string) string {
	a, z := d.Resolve(from), d.Resolve(to)
	var sb strings.Builder
	for bi := a.Block; bi <= z.Block; bi++ {
		if bi > a.Block {
			sb.WriteString(sep)
		}
		b := d.Blocks[bi]
		lo, hi := 0, len(b.Cells)
		if bi == a.Block {
			lo = a.Offset
		}
		if bi == z.Block {
			hi = z.Offset
		}
		for _, c := range b.Cells[lo:hi] {
			sb.WriteString(c.Text())
		}
	}
	return sb.String()
}

// Text returns the plain text of the document with blank lines between
// blocks.
func (d *Document) Text() string {
	return d.TextBetween(0, d.Size(), "\n\n")
}

// IsEmpty reports whether the document holds nothing but empty text blocks.
func (d *Document) IsEmpty() bool {
	for _, b := range d.Blocks {
		if !b.IsTextblock() || len(b.Cells) > 0 {
			return false
		}
	}
	return len(d.Blocks) <= 1
}

// Delete removes [from, to), joining the blocks at both ends.
func (d *Document) Delete(from, to int) {
	if from >= to {
		return
	}
	a, z := d.Resolve(from), d.Resolve(to)
	if a.Block == z.Block {
		b := d.Blocks[a.Block]
		b.Cells = slices.Delete(b.Cells, a.Offset, z.Offset)
		return
	}
	first, last := d.Blocks[a.Block], d.Blocks[z.Block]
	if !first.IsTextblock() {
		first.Type = TypeParagraph
		first.Attrs = nil
	}
	first.Cells = append(append([]Cell(nil), first.Cells[:a.Offset]...), last.Cells[z.Offset:]...) // slices.Concat needs go1.22
	d.Blocks = slices.Delete(d.Blocks, a.Block+1, z.Block+1)
}

// Insert places cells at pos and returns the position after them. Cells
// inserted at a leaf block go into a new paragraph following it.
func (d *Document) Insert(pos int, cells []Cell) int {
	p := d.Resolve(pos)
	b := d.Blocks[p.Block]
	if !b.IsTextblock() {
		nb := &Block{Type: TypeParagraph, Wrap: b.Wrap, Cells: slices.Clone(cells)}
		d.Blocks = slices.Insert(d.Blocks, p.Block+1, nb)
		return d.Start(p.Block+1) + len(cells)
	}
	b.Cells = slices.Insert(b.Cells, p.Offset, cells...)
	return pos + len(cells)
}

// SplitBlock splits the block at pos. The tail keeps type and attributes.
// It returns the index of the new block.
func (d *Document) SplitBlock(pos int) int {
	p := d.Resolve(pos)
	b := d.Blocks[p.Block]
	tail := &Block{Type: b.Type, Wrap: b.Wrap, Attrs: b.Attrs.Clone()}
	if !b.IsTextblock() {
		tail = &Block{Type: TypeParagraph, Wrap: b.Wrap}
	} else {
		tail.Cells = slices.Clone(b.Cells[p.Offset:])
		b.Cells = b.Cells[:p.Offset:p.Offset]
	}
	d.Blocks = slices.Insert(d.Blocks, p.Block+1, tail)
	return p.Block + 1
}

// InsertBlock inserts a leaf block (rule, image) at pos, splitting the
// surrounding text block, and returns the position just after it.
func (d *Document) InsertBlock(pos int, leaf *Block) int {
	p := d.Resolve(pos)
	b := d.Blocks[p.Block]
	leaf.Wrap = b.Wrap
	switch {
	case b.IsTextblock() && len(b.Cells) == 0:
		d.Blocks[p.Block] = leaf
		d.Blocks = slices.Insert(d.Blocks, p.Block+1, &Block{Type: TypeParagraph, Wrap: b.Wrap})
		return d.Start(p.Block + 1)
	case b.IsTextblock() && p.Offset == 0:
		d.Blocks = slices.Insert(d.Blocks, p.Block, leaf)
		return d.Start(p.Block + 1)
	default:
		idx := d.SplitBlock(pos)
		d.Blocks = slices.Insert(d.Blocks, idx, leaf)
		return d.Start(idx + 1)
	}
}

// TextCells converts text into cells carrying marks. Newlines become hard
// breaks.
func TextCells(text string, marks []Mark) []Cell {
	cells := make([]Cell, 0, len(text))
	for _, r := range text {
		if r == '\n' {
			cells = append(cells, Cell{Node: NodeHardBreak, Marks: cloneMarks(marks)})
			continue
		}
		cells = append(cells, Cell{Char: r, Marks: cloneMarks(marks)})
	}
	return cells
}
