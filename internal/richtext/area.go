package richtext

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/doc"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/toolbar"
	"github.com/dshills/richtextarea/internal/toolbar/controls"
)

// Wrapper and field classes.
const (
	WrapperClass   = "dj-richtext-wrapper"
	ConcealedClass = "dj-concealed"
	FocusedClass   = "focused"
	ValidClass     = "valid"
	InvalidClass   = "invalid"
	CounterClass   = "character-count"
)

// FieldEvent names an event the textarea dispatches to form listeners.
type FieldEvent string

const (
	FieldInput FieldEvent = "input"
	FieldFocus FieldEvent = "focus"
	FieldBlur  FieldEvent = "blur"
)

// Area is a textarea bound to an engine and a toolbar.
type Area struct {
	wrapper  *html.Node
	textarea *html.Node
	counter  *html.Node
	toolbar  *toolbar.Toolbar
	session  *toolbar.Session
	eng      engine.Engine

	useJSON  bool
	initial  string
	required bool
	limit    int

	registry    *toolbar.Registry
	factory     engine.Factory
	maxUndo     int
	sessionOpts []toolbar.SessionOption
	logger      *slog.Logger

	mu        sync.Mutex
	listeners []func(FieldEvent)
	offs      []func()
}

// New binds the textarea inside wrapper.
func New(wrapper *html.Node, opts ...Option) (*Area, error) {
	if wrapper == nil {
		return nil, ErrNoWrapper
	}
	textarea := markup.Find(wrapper, markup.Tag("textarea"))
	if textarea == nil {
		return nil, ErrNoTextarea
	}

	a := &Area{
		wrapper:  wrapper,
		textarea: textarea,
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = controls.Registry()
	}
	if a.factory == nil {
		a.factory = doc.Factory(doc.WithLogger(a.logger))
	}

	content, err := a.readContent()
	if err != nil {
		return nil, err
	}

	set, err := extension.NewSet(extension.Base()...)
	if err != nil {
		return nil, err
	}
	menubar := markup.Find(wrapper, markup.AttrEquals("role", "menubar"))
	a.toolbar, err = toolbar.Build(wrapper, menubar, a.registry, set, toolbar.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if text, ok := markup.Attr(textarea, "placeholder"); ok {
		set.AddOnce(extension.Placeholder(text))
	}
	if limit, _ := strconv.Atoi(markup.GetAttr(textarea, "maxlength")); limit > 0 {
		a.limit = limit
		set.AddOnce(extension.CharacterCount(limit))
		a.counter = &html.Node{Type: html.ElementNode, Data: "div"}
		markup.AddClass(a.counter, CounterClass)
		wrapper.AppendChild(a.counter)
	}

	a.eng, err = a.factory(engine.Config{
		Modules:        set,
		Content:        content,
		Editable:       !markup.HasAttr(textarea, "disabled"),
		MaxUndoEntries: a.maxUndo,
	})
	if err != nil {
		return nil, fmt.Errorf("richtext: create engine: %w", err)
	}
	a.required = markup.HasAttr(textarea, "required")
	a.initial = a.value()

	a.conceal()
	a.sync()

	a.session = toolbar.NewSession(a.eng, append([]toolbar.SessionOption{toolbar.WithSessionLogger(a.logger)}, a.sessionOpts...)...)
	a.toolbar.Install(a.session)
	a.offs = append(a.offs,
		a.eng.On(engine.EventFocus, a.focused),
		a.eng.On(engine.EventUpdate, a.updated),
		a.eng.On(engine.EventBlur, a.blurred),
	)
	a.logger.Debug("richtext area bound",
		"actions", len(a.toolbar.Actions()),
		"modules", set.Names(),
		"json", a.useJSON,
	)
	return a, nil
}

// readContent takes the initial document from a trailing JSON script, which
// is consumed, or else from the textarea text.
func (a *Area) readContent() (engine.Content, error) {
	script := markup.NextElementSibling(a.textarea)
	if script != nil && markup.IsElement(script, "script") && markup.GetAttr(script, "type") == "application/json" {
		a.useJSON = true
		payload := markup.TextContent(script)
		markup.Detach(script)
		if payload == "" {
			return engine.Content{}, nil
		}
		if !gjson.Valid(payload) {
			return engine.Content{}, ErrInvalidJSON
		}
		return engine.Content{JSON: []byte(payload)}, nil
	}
	return engine.Content{HTML: markup.TextContent(a.textarea)}, nil
}

func (a *Area) conceal() {
	markup.Detach(a.textarea)
	if a.wrapper.Parent != nil {
		markup.InsertAfter(a.wrapper, a.textarea)
	}
	markup.AddClass(a.textarea, ConcealedClass)
}

// sync mirrors the document into the textarea and the counter.
func (a *Area) sync() {
	markup.SetTextContent(a.textarea, a.eng.HTML())
	if a.counter != nil {
		markup.SetTextContent(a.counter, fmt.Sprintf("%d/%d", a.eng.CharacterCount(), a.limit))
	}
}

func (a *Area) focused() {
	markup.AddClass(a.wrapper, FocusedClass)
	a.emit(FieldFocus)
}

func (a *Area) updated() {
	a.sync()
	a.emit(FieldInput)
}

func (a *Area) blurred() {
	markup.RemoveClass(a.wrapper, FocusedClass)
	valid := a.valid()
	markup.ToggleClass(a.wrapper, ValidClass, valid)
	markup.ToggleClass(a.wrapper, InvalidClass, !valid)
	a.emit(FieldBlur)
}

func (a *Area) valid() bool {
	return !a.required || a.eng.Text() != ""
}

func (a *Area) value() string {
	if a.eng.IsEmpty() {
		return ""
	}
	if a.useJSON {
		return string(a.eng.JSON())
	}
	return a.eng.HTML()
}

func (a *Area) emit(ev FieldEvent) {
	a.mu.Lock()
	ls := slices.Clone(a.listeners)
	a.mu.Unlock()
	for _, fn := range ls {
		fn(ev)
	}
}

// OnEvent registers fn for field events. Listeners run while the area is
// busy and must not call back into it.
func (a *Area) OnEvent(fn func(FieldEvent)) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.listeners = append(a.listeners, fn)
	a.mu.Unlock()
}

// Wrapper returns the wrapper element.
func (a *Area) Wrapper() *html.Node { return a.wrapper }

// Textarea returns the concealed field.
func (a *Area) Textarea() *html.Node { return a.textarea }

// Toolbar returns the bound toolbar.
func (a *Area) Toolbar() *toolbar.Toolbar { return a.toolbar }

// Session returns the interaction session.
func (a *Area) Session() *toolbar.Session { return a.session }

// Engine returns the engine. Use Do to touch it while the area is live.
func (a *Area) Engine() engine.Engine { return a.eng }

// JSON reports whether the field value is the JSON document.
func (a *Area) JSON() bool { return a.useJSON }

// Value returns the field value: empty for an empty document, else the
// JSON or HTML serialization.
func (a *Area) Value() string {
	var v string
	_ = a.session.Do(func(engine.Engine) { v = a.value() })
	return v
}

// Initial returns the value captured at construction.
func (a *Area) Initial() string { return a.initial }

// Valid reports whether a required field holds text.
func (a *Area) Valid() bool {
	var ok bool
	_ = a.session.Do(func(engine.Engine) { ok = a.valid() })
	return ok
}

// Do runs fn with exclusive access to the engine.
func (a *Area) Do(fn func(engine.Engine)) error {
	return a.session.Do(fn)
}

// Click dispatches a click on target.
func (a *Area) Click(target *html.Node) error {
	return a.session.Click(target)
}

// Select moves the engine selection.
func (a *Area) Select(from, to int) error {
	return a.session.Do(func(eng engine.Engine) { eng.SetSelection(from, to) })
}

// Type inserts text at the selection.
func (a *Area) Type(text string) error {
	return a.session.Do(func(eng engine.Engine) { eng.Chain().Focus().InsertText(text).Run() })
}

// Focus gives the engine focus.
func (a *Area) Focus() error {
	return a.session.Do(func(eng engine.Engine) { eng.Focus() })
}

// Blur takes focus from the engine.
func (a *Area) Blur() error {
	return a.session.Do(func(eng engine.Engine) { eng.Blur() })
}

// Reset restores the initial value, as a form reset does.
func (a *Area) Reset() error {
	return a.session.Do(func(eng engine.Engine) {
		ch := eng.Chain().ClearContent()
		switch {
		case a.initial == "":
		case a.useJSON:
			ch = ch.InsertContent(engine.Content{JSON: []byte(a.initial)})
		default:
			ch = ch.InsertContent(engine.Content{HTML: a.initial})
		}
		if !ch.Run() {
			a.logger.Debug("richtext reset rejected")
		}
	})
}

// Wait blocks until pending dialog continuations finished.
func (a *Area) Wait() { a.session.Wait() }

// Close cancels open dialogs and detaches every listener.
func (a *Area) Close() {
	a.session.Close()
	a.toolbar.Uninstall()
	for _, off := range a.offs {
		off()
	}
	a.offs = nil
}
