package doc

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/history"
	"github.com/dshills/richtextarea/internal/engine/model"
	"github.com/dshills/richtextarea/internal/extension"
)

// Editor is the reference in-memory document engine.
type Editor struct {
	mu sync.Mutex

	modules  *extension.Set
	state    history.State
	history  *history.History
	editable bool
	focused  bool
	limit    int

	// stored marks apply to the next insertion at a collapsed selection.
	stored    []model.Mark
	hasStored bool

	events *emitter

	maxUndoEntries int
	logger         *slog.Logger
}

var _ engine.Engine = (*Editor)(nil)

// New creates an editor from cfg. Content that uses nodes or marks the
// configured modules do not provide is reduced to what they do provide.
func New(cfg engine.Config, opts ...Option) (*Editor, error) {
	e := &Editor{
		modules:        cfg.Modules,
		editable:       cfg.Editable,
		events:         newEmitter(),
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if cfg.MaxUndoEntries > 0 {
		e.maxUndoEntries = cfg.MaxUndoEntries
	}
	if e.modules == nil {
		set, err := extension.NewSet(extension.Base()...)
		if err != nil {
			return nil, err
		}
		e.modules = set
	}
	if e.modules.Has(extension.NameHistory) {
		e.history = history.New(e.maxUndoEntries)
	}
	if m := e.modules.Find(extension.NameCharacterCount); m != nil {
		if opts := extension.CharacterCountConfig(m); opts != nil {
			e.limit = opts.Limit
		}
	}

	d, err := parseContent(cfg.Content)
	if err != nil {
		return nil, err
	}
	e.state.Doc = conform(d, e.modules)
	return e, nil
}

// Factory returns an engine.Factory building editors with opts.
func Factory(opts ...Option) engine.Factory {
	return func(cfg engine.Config) (engine.Engine, error) {
		return New(cfg, opts...)
	}
}

func parseContent(c engine.Content) (*model.Document, error) {
	switch {
	case len(c.JSON) > 0:
		return model.ParseJSON(c.JSON)
	case c.HTML != "":
		return model.ParseHTML(c.HTML)
	default:
		return model.New(), nil
	}
}

// Modules returns the module set the editor was built with.
func (e *Editor) Modules() *extension.Set {
	return e.modules
}

// Chain starts a new command chain.
func (e *Editor) Chain() engine.Chain {
	return &chain{e: e}
}

// Undo reverts the last committed chain.
func (e *Editor) Undo() bool {
	return e.step(true)
}

// Redo reapplies the last undone chain.
func (e *Editor) Redo() bool {
	return e.step(false)
}

func (e *Editor) step(undo bool) bool {
	e.mu.Lock()
	if e.history == nil || !e.editable {
		e.mu.Unlock()
		return false
	}
	before := e.state.Selection
	var err error
	if undo {
		err = e.history.Undo(&e.state)
	} else {
		err = e.history.Redo(&e.state)
	}
	if err != nil {
		e.mu.Unlock()
		e.logger.Debug("history step rejected", "undo", undo, "error", err)
		return false
	}
	e.hasStored, e.stored = false, nil
	after := e.state.Selection
	e.mu.Unlock()

	e.events.emit(engine.EventUpdate)
	if before != after {
		e.events.emit(engine.EventSelectionUpdate)
	}
	return true
}

// ============================================================================
// Queries
// ============================================================================

// Selection returns the current selection.
func (e *Editor) Selection() engine.Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Selection
}

// SetSelection moves the selection, clamped to the document.
func (e *Editor) SetSelection(from, to int) {
	e.mu.Lock()
	d := e.state.Doc
	from, to = d.Clamp(from), d.Clamp(to)
	if from > to {
		from, to = to, from
	}
	sel := engine.Selection{From: from, To: to}
	changed := sel != e.state.Selection
	if changed {
		e.state.Selection = sel
		e.hasStored, e.stored = false, nil
	}
	e.mu.Unlock()

	if changed {
		e.events.emit(engine.EventSelectionUpdate)
	}
}

// TextBetween returns the text in [from, to) with blockSep between blocks.
func (e *Editor) TextBetween(from, to int, blockSep string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Doc.TextBetween(from, to, blockSep)
}

// IsActive reports whether formatting applies at the selection.
func (e *Editor) IsActive(name string, attrs engine.Attrs) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	attrs = canonicalAttrs(attrs)
	if name == "" {
		return e.marksActive(func(m model.Mark) bool { return m.Attrs.Matches(attrs) }) ||
			e.blocksActive(func(b *model.Block) bool { return b.Attrs.Matches(attrs) })
	}
	switch kindOf(name) {
	case extension.KindMark:
		return e.marksActive(func(m model.Mark) bool { return m.Name == name && m.Attrs.Matches(attrs) })
	case extension.KindNode:
		if isWrap(name) {
			return e.blocksActive(func(b *model.Block) bool { return b.Wrap == name })
		}
		return e.blocksActive(func(b *model.Block) bool { return b.Type == name && b.Attrs.Matches(attrs) })
	default:
		return e.blocksActive(func(b *model.Block) bool {
			if len(attrs) == 0 {
				return b.Attr(name) != ""
			}
			return b.Attrs.Matches(attrs)
		})
	}
}

// marksActive reports whether some mark matching pred covers every text
// cell of the selection, or the cursor position when it is collapsed.
func (e *Editor) marksActive(pred func(model.Mark) bool) bool {
	has := func(marks []model.Mark) bool {
		for _, m := range marks {
			if pred(m) {
				return true
			}
		}
		return false
	}
	sel := e.state.Selection
	if sel.Empty() {
		return has(e.cursorMarks())
	}
	seen, all := false, true
	e.state.Doc.EachCell(sel.From, sel.To, func(_ *model.Block, c *model.Cell) {
		if c.Node != "" {
			return
		}
		seen = true
		if !has(c.Marks) {
			all = false
		}
	})
	return seen && all
}

// cursorMarks returns the marks text typed at a collapsed selection gets.
func (e *Editor) cursorMarks() []model.Mark {
	if e.hasStored {
		return e.stored
	}
	return marksAt(e.state.Doc, e.state.Selection.From)
}

// marksAt returns the marks of the cell before pos, without the
// non-inclusive marks that end there.
func marksAt(d *model.Document, pos int) []model.Mark {
	p := d.Resolve(pos)
	cells := d.Blocks[p.Block].Cells
	if p.Offset == 0 {
		return nil
	}
	before := cells[p.Offset-1].Marks
	var after []model.Mark
	if p.Offset < len(cells) {
		after = cells[p.Offset].Marks
	}
	var out []model.Mark
	for _, m := range before {
		if model.Inclusive(m.Name) || containsMark(after, m) {
			out = append(out, m)
		}
	}
	return out
}

func containsMark(marks []model.Mark, m model.Mark) bool {
	for _, o := range marks {
		if o.Equal(m) {
			return true
		}
	}
	return false
}

func (e *Editor) blocksActive(pred func(*model.Block) bool) bool {
	d := e.state.Doc
	first, last := d.BlockRange(e.state.Selection.From, e.state.Selection.To)
	for i := first; i <= last; i++ {
		if !pred(d.Blocks[i]) {
			return false
		}
	}
	return true
}

// Attributes returns the attributes of the named mark or node at the
// selection, or nil when it is absent.
func (e *Editor) Attributes(name string) engine.Attrs {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.state.Doc
	sel := e.state.Selection
	if kindOf(name) == extension.KindMark {
		var found *model.Mark
		find := func(marks []model.Mark) {
			for i := range marks {
				if found == nil && marks[i].Name == name {
					found = &marks[i]
				}
			}
		}
		if sel.Empty() {
			find(e.cursorMarks())
		} else {
			d.EachCell(sel.From, sel.To, func(_ *model.Block, c *model.Cell) { find(c.Marks) })
		}
		if found == nil {
			return nil
		}
		if found.Attrs == nil {
			return engine.Attrs{}
		}
		return found.Attrs.Clone()
	}
	b := d.Blocks[d.Resolve(sel.From).Block]
	if b.Type != name && b.Wrap != name {
		return nil
	}
	if b.Attrs == nil {
		return engine.Attrs{}
	}
	return b.Attrs.Clone()
}

// HTML serializes the document as HTML.
func (e *Editor) HTML() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.RenderHTML(e.state.Doc)
}

// JSON serializes the document in its structured form.
func (e *Editor) JSON() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.RenderJSON(e.state.Doc)
}

// Text returns the plain text of the document.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Doc.Text()
}

// IsEmpty reports whether the document holds no content.
func (e *Editor) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Doc.IsEmpty()
}

// CharacterCount returns the number of user-perceived characters.
func (e *Editor) CharacterCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return characters(e.state.Doc)
}

func characters(d *model.Document) int {
	return model.CountCharacters(d.TextBetween(0, d.Size(), ""))
}

// Limit returns the character limit, or zero when there is none.
func (e *Editor) Limit() int {
	return e.limit
}

// ============================================================================
// Focus
// ============================================================================

// Focus gives the editor focus.
func (e *Editor) Focus() {
	e.setFocus(true)
}

// Blur removes focus from the editor.
func (e *Editor) Blur() {
	e.setFocus(false)
}

func (e *Editor) setFocus(on bool) {
	e.mu.Lock()
	changed := e.focused != on
	e.focused = on
	e.mu.Unlock()
	if !changed {
		return
	}
	if on {
		e.events.emit(engine.EventFocus)
	} else {
		e.events.emit(engine.EventBlur)
	}
}

// Focused reports whether the editor has focus.
func (e *Editor) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// Editable reports whether edits are accepted.
func (e *Editor) Editable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editable
}

// SetEditable enables or disables edits.
func (e *Editor) SetEditable(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editable = on
}

// On registers fn for event ev and returns a function removing it.
func (e *Editor) On(ev engine.Event, fn func()) func() {
	return e.events.on(ev, fn)
}

// commit replaces the live state with next and returns the events to emit.
// The caller holds e.mu.
func (e *Editor) commit(name string, next *tx) []engine.Event {
	var evs []engine.Event
	if next.focus && !e.focused {
		e.focused = true
		evs = append(evs, engine.EventFocus)
	}
	prev := e.state
	docChanged := !bytes.Equal(model.RenderJSON(prev.Doc), model.RenderJSON(next.state.Doc))
	selChanged := prev.Selection != next.state.Selection

	if docChanged && e.history != nil {
		e.history.Push(history.NewSnapshot(name, prev, next.state))
	}
	e.state = next.state
	e.stored, e.hasStored = next.stored, next.hasStored
	if selChanged {
		e.stored, e.hasStored = nil, false
	}
	if docChanged {
		evs = append(evs, engine.EventUpdate)
	}
	if selChanged {
		evs = append(evs, engine.EventSelectionUpdate)
	}
	return evs
}
