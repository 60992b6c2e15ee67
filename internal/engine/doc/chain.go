package doc

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/history"
	"github.com/dshills/richtextarea/internal/engine/model"
	"github.com/dshills/richtextarea/internal/extension"
)

// tx is the working copy a chain mutates.
type tx struct {
	state     history.State
	stored    []model.Mark
	hasStored bool
	focus     bool
}

func (t *tx) doc() *model.Document {
	return t.state.Doc
}

func (t *tx) sel() engine.Selection {
	return t.state.Selection
}

func (t *tx) collapse(pos int) {
	t.state.Selection = engine.Selection{From: pos, To: pos}
}

// cursorMarks returns the marks an insertion at the cursor carries.
func (t *tx) cursorMarks() []model.Mark {
	if t.hasStored {
		return t.stored
	}
	return marksAt(t.doc(), t.sel().From)
}

func (t *tx) store(marks []model.Mark) {
	t.stored, t.hasStored = marks, true
}

// deleteSelection removes the selected content and collapses the selection.
func (t *tx) deleteSelection() {
	sel := t.sel()
	t.doc().Delete(sel.From, sel.To)
	t.collapse(sel.From)
}

type command struct {
	name    string
	modules []string
	mutates bool
	apply   func(e *Editor, t *tx) error
}

// chain queues commands for Run.
type chain struct {
	e    *Editor
	cmds []command
}

var _ engine.Chain = (*chain)(nil)

func (c *chain) add(cmd command) *chain {
	c.cmds = append(c.cmds, cmd)
	return c
}

// Run applies every queued command to a copy of the state and commits the
// copy only if all of them succeed.
func (c *chain) Run() bool {
	e := c.e
	e.mu.Lock()
	t := &tx{
		state:     e.state.Clone(),
		stored:    slices.Clone(e.stored),
		hasStored: e.hasStored,
	}
	name := ""
	for _, cmd := range c.cmds {
		if err := e.check(cmd); err != nil {
			e.mu.Unlock()
			e.logger.Debug("command rejected", "command", cmd.name, "error", err)
			return false
		}
		if err := cmd.apply(e, t); err != nil {
			e.mu.Unlock()
			e.logger.Debug("command failed", "command", cmd.name, "error", err)
			return false
		}
		if name == "" && cmd.mutates {
			name = cmd.name
		}
	}
	t.state.Selection = clampSelection(t.doc(), t.sel())
	if e.limit > 0 {
		if n := characters(t.doc()); n > e.limit && n > characters(e.state.Doc) {
			e.mu.Unlock()
			e.logger.Debug("command rejected", "command", name, "error", engine.ErrLimitExceeded, "count", n)
			return false
		}
	}
	evs := e.commit(name, t)
	e.mu.Unlock()

	for _, ev := range evs {
		e.events.emit(ev)
	}
	return true
}

func (e *Editor) check(cmd command) error {
	if cmd.mutates && !e.editable {
		return engine.ErrReadOnly
	}
	for _, m := range cmd.modules {
		if !e.modules.Has(m) {
			return fmt.Errorf("%w: %q", engine.ErrMissingModule, m)
		}
	}
	return nil
}

func clampSelection(d *model.Document, s engine.Selection) engine.Selection {
	from, to := d.Clamp(s.From), d.Clamp(s.To)
	if from > to {
		from, to = to, from
	}
	return engine.Selection{From: from, To: to}
}

// Focus gives the editor focus when the chain commits.
func (c *chain) Focus() engine.Chain {
	return c.add(command{name: "focus", apply: func(_ *Editor, t *tx) error {
		t.focus = true
		return nil
	}})
}

// ============================================================================
// Marks
// ============================================================================

func (t *tx) rangeHasMark(name string) bool {
	seen, all := false, true
	sel := t.sel()
	t.doc().EachCell(sel.From, sel.To, func(_ *model.Block, c *model.Cell) {
		if c.Node != "" {
			return
		}
		seen = true
		if !c.HasMark(name) {
			all = false
		}
	})
	return seen && all
}

func (t *tx) eachSelected(fn func(b *model.Block, c *model.Cell)) {
	sel := t.sel()
	t.doc().EachCell(sel.From, sel.To, fn)
}

func (t *tx) addMark(m model.Mark) {
	if t.sel().Empty() {
		c := model.Cell{Marks: slices.Clone(t.cursorMarks())}
		c.AddMark(m)
		t.store(c.Marks)
		return
	}
	t.eachSelected(func(b *model.Block, c *model.Cell) {
		if b.Type != model.TypeCodeBlock {
			c.AddMark(m)
		}
	})
}

func (t *tx) removeMark(name string) {
	if t.sel().Empty() {
		c := model.Cell{Marks: slices.Clone(t.cursorMarks())}
		c.RemoveMark(name)
		t.store(c.Marks)
		return
	}
	t.eachSelected(func(_ *model.Block, c *model.Cell) { c.RemoveMark(name) })
}

// ToggleMark adds the mark, or removes it when the selection carries it.
func (c *chain) ToggleMark(name string, attrs engine.Attrs) engine.Chain {
	return c.add(command{name: "toggle " + name, modules: []string{name}, mutates: true,
		apply: func(e *Editor, t *tx) error {
			attrs, err := checkMark(e.modules, name, attrs)
			if err != nil {
				return err
			}
			active := t.rangeHasMark(name)
			if t.sel().Empty() {
				_, active = findMark(t.cursorMarks(), name)
			}
			if active {
				t.removeMark(name)
			} else {
				t.addMark(model.Mark{Name: name, Attrs: attrs})
			}
			return nil
		}})
}

func findMark(marks []model.Mark, name string) (model.Mark, bool) {
	c := model.Cell{Marks: marks}
	return c.FindMark(name)
}

// SetMark applies the mark over the selection.
func (c *chain) SetMark(name string, attrs engine.Attrs) engine.Chain {
	return c.add(command{name: "set " + name, modules: []string{name}, mutates: true,
		apply: func(e *Editor, t *tx) error {
			attrs, err := checkMark(e.modules, name, attrs)
			if err != nil {
				return err
			}
			t.addMark(model.Mark{Name: name, Attrs: attrs})
			return nil
		}})
}

// UnsetMark removes the mark from the selection.
func (c *chain) UnsetMark(name string) engine.Chain {
	return c.add(command{name: "unset " + name, modules: []string{name}, mutates: true,
		apply: func(_ *Editor, t *tx) error {
			t.removeMark(name)
			return nil
		}})
}

// UnsetAllMarks removes every mark from the selection.
func (c *chain) UnsetAllMarks() engine.Chain {
	return c.add(command{name: "unset marks", mutates: true, apply: func(_ *Editor, t *tx) error {
		if t.sel().Empty() {
			t.store(nil)
			return nil
		}
		t.eachSelected(func(_ *model.Block, c *model.Cell) { c.Marks = nil })
		return nil
	}})
}

// ExtendMarkRange grows the selection over the contiguous run of the mark
// found at its start.
func (c *chain) ExtendMarkRange(name string) engine.Chain {
	return c.add(command{name: "extend " + name, modules: []string{name},
		apply: func(_ *Editor, t *tx) error {
			d := t.doc()
			p := d.Resolve(t.sel().From)
			cells := d.Blocks[p.Block].Cells
			idx := -1
			switch {
			case p.Offset < len(cells) && cells[p.Offset].HasMark(name):
				idx = p.Offset
			case p.Offset > 0 && cells[p.Offset-1].HasMark(name):
				idx = p.Offset - 1
			}
			if idx < 0 {
				return nil
			}
			m, _ := cells[idx].FindMark(name)
			same := func(i int) bool {
				o, ok := cells[i].FindMark(name)
				return ok && o.Equal(m)
			}
			lo, hi := idx, idx+1
			for lo > 0 && same(lo-1) {
				lo--
			}
			for hi < len(cells) && same(hi) {
				hi++
			}
			start := d.Start(p.Block)
			t.state.Selection = engine.Selection{From: start + lo, To: start + hi}
			return nil
		}})
}

// ============================================================================
// Blocks
// ============================================================================

func (t *tx) selectedBlocks() []*model.Block {
	sel := t.sel()
	first, last := t.doc().BlockRange(sel.From, sel.To)
	return t.doc().Blocks[first : last+1]
}

// ToggleWrap wraps or unwraps the selected blocks.
func (c *chain) ToggleWrap(name string) engine.Chain {
	return c.add(command{name: "toggle " + name, modules: requires(name), mutates: true,
		apply: func(_ *Editor, t *tx) error {
			if !isWrap(name) {
				return fmt.Errorf("%w: %q is not a wrapping node", engine.ErrInvalidCommand, name)
			}
			blocks := t.selectedBlocks()
			all := true
			for _, b := range blocks {
				all = all && b.Wrap == name
			}
			for _, b := range blocks {
				if all {
					b.Wrap = ""
				} else {
					b.Wrap = name
				}
			}
			return nil
		}})
}

func setType(b *model.Block, name string, attrs engine.Attrs) {
	if !b.IsTextblock() {
		return
	}
	b.Type = name
	b.SetAttr(model.AttrLevel, attrs[model.AttrLevel])
	if name == model.TypeCodeBlock {
		for i := range b.Cells {
			b.Cells[i].Marks = nil
		}
	}
}

func (e *Editor) checkType(name string, attrs engine.Attrs) error {
	switch name {
	case model.TypeHeading:
		return checkHeading(e.modules, attrs)
	case model.TypeParagraph, model.TypeCodeBlock:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a text block", engine.ErrInvalidCommand, name)
	}
}

// ToggleBlock switches the selected blocks between name and paragraphs.
func (c *chain) ToggleBlock(name string, attrs engine.Attrs) engine.Chain {
	return c.add(command{name: "toggle " + name, modules: requires(name), mutates: true,
		apply: func(e *Editor, t *tx) error {
			if err := e.checkType(name, attrs); err != nil {
				return err
			}
			blocks := t.selectedBlocks()
			all := true
			for _, b := range blocks {
				all = all && b.Type == name && b.Attrs.Matches(attrs)
			}
			for _, b := range blocks {
				if all {
					setType(b, model.TypeParagraph, nil)
				} else {
					setType(b, name, attrs)
				}
			}
			return nil
		}})
}

// SetBlock turns the selected blocks into name.
func (c *chain) SetBlock(name string, attrs engine.Attrs) engine.Chain {
	return c.add(command{name: "set " + name, modules: requires(name), mutates: true,
		apply: func(e *Editor, t *tx) error {
			if err := e.checkType(name, attrs); err != nil {
				return err
			}
			for _, b := range t.selectedBlocks() {
				setType(b, name, attrs)
			}
			return nil
		}})
}

// ClearNodes turns the selected blocks into plain unwrapped paragraphs.
func (c *chain) ClearNodes() engine.Chain {
	return c.add(command{name: "clear nodes", mutates: true, apply: func(_ *Editor, t *tx) error {
		for _, b := range t.selectedBlocks() {
			b.Wrap = ""
			if b.IsTextblock() {
				b.Type = model.TypeParagraph
				b.Attrs = nil
			}
		}
		return nil
	}})
}

func (t *tx) eachFormattable(set *extension.Set, name string, fn func(b *model.Block)) {
	types := attrTypes(set, name)
	for _, b := range t.selectedBlocks() {
		if slices.Contains(types, b.Type) {
			fn(b)
		}
	}
}

// SetBlockAttr sets a formatting attribute on the selected blocks.
func (c *chain) SetBlockAttr(name, value string) engine.Chain {
	return c.add(command{name: "set " + name, modules: []string{name}, mutates: true,
		apply: func(e *Editor, t *tx) error {
			if err := checkBlockAttr(e.modules, name, value); err != nil {
				return err
			}
			t.eachFormattable(e.modules, name, func(b *model.Block) { b.SetAttr(name, value) })
			return nil
		}})
}

// UnsetBlockAttr removes a formatting attribute from the selected blocks.
func (c *chain) UnsetBlockAttr(name string) engine.Chain {
	return c.add(command{name: "unset " + name, modules: []string{name}, mutates: true,
		apply: func(e *Editor, t *tx) error {
			t.eachFormattable(e.modules, name, func(b *model.Block) { b.SetAttr(name, "") })
			return nil
		}})
}

// AdjustBlockAttr steps a numeric attribute by delta within [0, max].
// Level zero removes the attribute.
func (c *chain) AdjustBlockAttr(name string, delta int) engine.Chain {
	return c.add(command{name: "adjust " + name, modules: []string{name}, mutates: true,
		apply: func(e *Editor, t *tx) error {
			limit := maxLevel(e.modules, name)
			t.eachFormattable(e.modules, name, func(b *model.Block) {
				cur, _ := strconv.Atoi(b.Attr(name))
				n := min(max(cur+delta, 0), limit)
				if n == 0 {
					b.SetAttr(name, "")
					return
				}
				b.SetAttr(name, strconv.Itoa(n))
			})
			return nil
		}})
}

// ============================================================================
// Content
// ============================================================================

// InsertNode inserts a leaf node replacing the selection.
func (c *chain) InsertNode(name string, attrs engine.Attrs) engine.Chain {
	return c.add(command{name: "insert " + name, modules: []string{name}, mutates: true,
		apply: func(_ *Editor, t *tx) error {
			switch name {
			case model.NodeHardBreak:
				marks := model.InheritedMarks(t.cursorMarks())
				t.deleteSelection()
				end := t.doc().Insert(t.sel().From, []model.Cell{{Node: model.NodeHardBreak, Marks: marks}})
				t.collapse(end)
			case model.TypeHorizontalRule:
				t.deleteSelection()
				t.collapse(t.doc().InsertBlock(t.sel().From, &model.Block{Type: name}))
			case model.TypeImage:
				if attrs[model.AttrSrc] == "" {
					return fmt.Errorf("%w: image without src", engine.ErrInvalidCommand)
				}
				leaf := &model.Block{Type: name}
				leaf.SetAttr(model.AttrSrc, attrs[model.AttrSrc])
				leaf.SetAttr(model.AttrAlt, attrs[model.AttrAlt])
				t.deleteSelection()
				t.collapse(t.doc().InsertBlock(t.sel().From, leaf))
			default:
				return fmt.Errorf("%w: %q is not a leaf node", engine.ErrInvalidCommand, name)
			}
			return nil
		}})
}

// InsertText inserts text at the selection, replacing it. The cursor ends
// after the text.
func (c *chain) InsertText(text string) engine.Chain {
	return c.add(command{name: "insert text", mutates: true, apply: func(e *Editor, t *tx) error {
		marks := t.cursorMarks()
		if !t.hasStored && !t.sel().Empty() {
			marks = firstMarks(t)
		}
		t.deleteSelection()
		end := t.doc().Insert(t.sel().From, cellsFor(e, text, marks))
		t.collapse(end)
		t.hasStored, t.stored = false, nil
		return nil
	}})
}

// InsertContentAt replaces [from, to) with text and selects the new text.
// The text takes the marks of the first replaced character, or of the
// text before an empty range.
func (c *chain) InsertContentAt(from, to int, text string) engine.Chain {
	return c.add(command{name: "insert text", mutates: true, apply: func(e *Editor, t *tx) error {
		d := t.doc()
		from, to := d.Clamp(from), d.Clamp(to)
		if from > to {
			from, to = to, from
		}
		t.state.Selection = engine.Selection{From: from, To: to}
		marks := marksAt(d, from)
		if from < to {
			marks = firstMarks(t)
		}
		t.deleteSelection()
		cells := cellsFor(e, text, marks)
		end := d.Insert(from, cells)
		t.state.Selection = engine.Selection{From: end - len(cells), To: end}
		return nil
	}})
}

// firstMarks returns the marks of the first selected character.
func firstMarks(t *tx) []model.Mark {
	var marks []model.Mark
	found := false
	t.eachSelected(func(_ *model.Block, c *model.Cell) {
		if !found && c.Node == "" {
			marks, found = slices.Clone(c.Marks), true
		}
	})
	return marks
}

// cellsFor converts text to cells, dropping hard breaks when the module is
// missing.
func cellsFor(e *Editor, text string, marks []model.Mark) []model.Cell {
	cells := model.TextCells(text, marks)
	if e.modules.Has(model.NodeHardBreak) {
		return cells
	}
	return slices.DeleteFunc(cells, func(c model.Cell) bool { return c.Node != "" })
}

// ClearContent empties the document.
func (c *chain) ClearContent() engine.Chain {
	return c.add(command{name: "clear content", mutates: true, apply: func(_ *Editor, t *tx) error {
		t.state.Doc = model.New()
		t.collapse(0)
		return nil
	}})
}

// InsertContent parses c and inserts it at the selection. A single
// paragraph is inserted inline; anything else as blocks.
func (c *chain) InsertContent(content engine.Content) engine.Chain {
	return c.add(command{name: "insert content", mutates: true, apply: func(e *Editor, t *tx) error {
		parsed, err := parseContent(content)
		if err != nil {
			return err
		}
		parsed = conform(parsed, e.modules)
		t.deleteSelection()
		d := t.doc()
		pos := t.sel().From
		if len(parsed.Blocks) == 1 && parsed.Blocks[0].IsTextblock() && parsed.Blocks[0].Wrap == "" &&
			parsed.Blocks[0].Type == model.TypeParagraph {
			t.collapse(d.Insert(pos, parsed.Blocks[0].Cells))
			return nil
		}
		p := d.Resolve(pos)
		cur := d.Blocks[p.Block]
		var last int
		switch {
		case cur.IsTextblock() && len(cur.Cells) == 0:
			d.Blocks = slices.Replace(d.Blocks, p.Block, p.Block+1, parsed.Blocks...)
			last = p.Block + len(parsed.Blocks) - 1
		case cur.IsTextblock() && p.Offset == 0:
			d.Blocks = slices.Insert(d.Blocks, p.Block, parsed.Blocks...)
			last = p.Block + len(parsed.Blocks) - 1
		default:
			if cur.IsTextblock() && p.Offset < len(cur.Cells) {
				d.SplitBlock(pos)
			}
			d.Blocks = slices.Insert(d.Blocks, p.Block+1, parsed.Blocks...)
			last = p.Block + len(parsed.Blocks)
		}
		t.collapse(d.Start(last) + len(d.Blocks[last].Cells))
		return nil
	}})
}
