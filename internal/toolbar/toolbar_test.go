package toolbar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/dialog"
	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/doc"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
)

// tally is a minimal action counting its clicks.
type tally struct {
	Base
	clicks int
}

func (p *tally) Clicked(*Session) { p.clicks++ }

func tallyFactory(modules ...*extension.Module) Factory {
	return func(_ *html.Node, name string, control *html.Node) (Action, error) {
		return &tally{Base: NewBase(name, control, modules...)}, nil
	}
}

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	d, err := markup.ParseString(s)
	require.NoError(t, err)
	return d
}

func byID(root *html.Node, id string) *html.Node {
	return markup.Find(root, markup.AttrEquals("id", id))
}

func newEditor(t *testing.T, set *extension.Set, html string) *doc.Editor {
	t.Helper()
	for _, m := range extension.Base() {
		require.NoError(t, set.Add(m))
	}
	e, err := doc.New(engine.Config{Modules: set, Content: engine.Content{HTML: html}, Editable: true})
	require.NoError(t, err)
	return e
}

// ============================================================================
// Registry
// ============================================================================

func TestTypeName(t *testing.T) {
	assert.Equal(t, "BoldAction", TypeName("bold"))
	assert.Equal(t, "TextColorAction", TypeName("textColor"))
	assert.Equal(t, "ÉtéAction", TypeName("été"))
	assert.Equal(t, "Action", TypeName(""))
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("heading", tallyFactory()))

	f, err := r.Resolve("heading:2")
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = r.Resolve("foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.Equal(t, "toolbar: unknown action class 'FooAction'", err.Error())

	assert.True(t, errors.Is(r.Register("heading", tallyFactory()), ErrDuplicateCategory))
	assert.True(t, errors.Is(r.Register("", tallyFactory()), ErrInvalidCategory))
	assert.Equal(t, []string{"HeadingAction"}, r.TypeNames())
	assert.Panics(t, func() { r.MustRegister("heading", tallyFactory()) })
}

// ============================================================================
// Build
// ============================================================================

func TestBuildContributesModulesOnce(t *testing.T) {
	root := parse(t, `<div role="menubar">
		<button richtext-click="bold" id="b1"></button>
		<button richtext-click="bold" id="b2"></button>
		<button richtext-click="list" id="l"></button>
		<button richtext-click="menu"></button>
		<ul role="menu"><li><button richtext-click="menu:x"></button></li></ul>
	</div>`)
	r := NewRegistry()
	r.MustRegister("bold", tallyFactory(extension.Bold))
	r.MustRegister("list", tallyFactory(extension.BulletList, extension.ListItem))
	r.MustRegister("menu", tallyFactory())

	tb, err := Build(root, markup.Find(root, markup.AttrEquals("role", "menubar")), r, nil)
	require.NoError(t, err)
	assert.Len(t, tb.Actions(), 4)
	assert.Equal(t, []string{"bold", "bulletList", "listItem"}, tb.Modules().Names())
	assert.NotNil(t, tb.Action("list"))
	assert.Nil(t, tb.Action("menu:x"))
}

func TestBuildErrors(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("nil", func(*html.Node, string, *html.Node) (Action, error) { return nil, nil })
	r.MustRegister("dup", tallyFactory(&extension.Module{Name: "bold"}))
	r.MustRegister("bold", tallyFactory(extension.Bold))

	tests := []struct {
		name   string
		markup string
		err    error
	}{
		{"empty identifier", `<button richtext-click=""></button>`, ErrMissingAttribute},
		{"unknown", `<button richtext-click="foo"></button>`, ErrUnknownAction},
		{"nil action", `<button richtext-click="nil"></button>`, ErrNotAction},
		{"incompatible", `<button richtext-click="bold"></button><button richtext-click="dup"></button>`, extension.ErrDuplicateModule},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (pre-go1.22 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, `<div role="menubar">`+tt.markup+`</div>`)
			_, err := Build(root, markup.Find(root, markup.AttrEquals("role", "menubar")), r, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())
			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestBuildWithoutMenubar(t *testing.T) {
	tb, err := Build(nil, nil, NewRegistry(), nil)
	require.NoError(t, err)
	assert.Empty(t, tb.Actions())
	assert.Equal(t, 0, tb.Modules().Len())
}

func TestInstallActivatesOnSelection(t *testing.T) {
	root := parse(t, `<div role="menubar"><button richtext-click="bold" id="b"></button></div>`)
	r := NewRegistry()
	r.MustRegister("bold", tallyFactory(extension.Bold))
	tb, err := Build(root, markup.Find(root, markup.AttrEquals("role", "menubar")), r, nil)
	require.NoError(t, err)

	e := newEditor(t, tb.Modules(), "<p><strong>ab</strong>cd</p>")
	s := NewSession(e)
	tb.Install(s)

	btn := byID(root, "b")
	require.NoError(t, s.Click(btn))
	assert.Equal(t, 1, tb.Action("bold").(*tally).clicks)

	require.NoError(t, s.Do(func(eng engine.Engine) { eng.SetSelection(1, 2) }))
	assert.True(t, markup.HasClass(btn, ActiveClass))

	require.NoError(t, s.Do(func(eng engine.Engine) { eng.SetSelection(3, 4) }))
	assert.False(t, markup.HasClass(btn, ActiveClass))

	require.NoError(t, s.Do(func(eng engine.Engine) { eng.SetSelection(1, 2); eng.Focus(); eng.Blur() }))
	assert.False(t, markup.HasClass(btn, ActiveClass))

	tb.Uninstall()
	require.NoError(t, s.Do(func(eng engine.Engine) { eng.SetSelection(0, 2) }))
	assert.False(t, markup.HasClass(btn, ActiveClass))
}

// ============================================================================
// Session
// ============================================================================

func TestClickBubbles(t *testing.T) {
	root := parse(t, `<div id="outer"><span id="inner"><i id="leaf"></i></span></div><p id="other"></p>`)
	s := NewSession(nil)
	var got []string
	s.OnClick(byID(root, "inner"), func(ev *ClickEvent) {
		got = append(got, "inner:"+markup.GetAttr(ev.Target, "id"))
	})
	s.OnClick(byID(root, "outer"), func(ev *ClickEvent) {
		got = append(got, "outer")
		ev.StopPropagation()
	})
	s.OnDocumentClick(func(*ClickEvent) { got = append(got, "document") })

	require.NoError(t, s.Click(byID(root, "leaf")))
	require.NoError(t, s.Click(byID(root, "other")))
	assert.Equal(t, []string{"inner:leaf", "outer", "document"}, got)

	s.Close()
	assert.True(t, errors.Is(s.Click(byID(root, "leaf")), ErrSessionClosed))
	assert.True(t, errors.Is(s.Do(func(engine.Engine) {}), ErrSessionClosed))
}

// ============================================================================
// Menu
// ============================================================================

const menuMarkup = `<div role="menubar">
	<button id="ctl" richtext-click="heading" data-rect="100,0,40,20"></button>
	<ul role="menu" id="menu" data-rect="0,0,60,90">
		<li><button richtext-click="heading:1" id="h1"><span id="h1-label">H1</span></button></li>
		<li><button richtext-click="heading:2" id="h2">H2</button></li>
	</ul>
</div>
<p id="outside"></p>`

func TestMenuTransitions(t *testing.T) {
	root := parse(t, menuMarkup)
	ctl := byID(root, "ctl")
	m, err := FindMenu(ctl, "heading")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Len(t, m.Items(), 2)
	assert.Equal(t, "1", m.Items()[0].Value)

	m.ItemActive = func(_ *Session, it Item) bool { return it.Value == "2" }
	s := NewSession(nil)
	var picked []string
	s.OnClick(ctl, func(*ClickEvent) { m.Toggle(s) })
	m.Install(s, func(_ *Session, it Item) { picked = append(picked, it.Value) })

	require.NoError(t, s.Click(ctl))
	assert.True(t, m.IsOpen())
	assert.Equal(t, "true", markup.GetAttr(ctl, "aria-expanded"))
	assert.Equal(t, "90px", markup.Style(m.List(), "left"))
	assert.Equal(t, "20px", markup.Style(m.List(), "top"))
	assert.True(t, markup.HasClass(byID(root, "h2").Parent, ActiveClass))
	assert.False(t, markup.HasClass(byID(root, "h1").Parent, ActiveClass))

	require.NoError(t, s.Click(byID(root, "h1-label")))
	assert.Equal(t, []string{"1"}, picked)
	assert.False(t, m.IsOpen())
	assert.Equal(t, "false", markup.GetAttr(ctl, "aria-expanded"))

	require.NoError(t, s.Click(ctl))
	require.NoError(t, s.Click(byID(root, "outside")))
	assert.False(t, m.IsOpen())

	require.NoError(t, s.Click(ctl))
	require.NoError(t, s.Click(ctl))
	assert.False(t, m.IsOpen())
}

func TestMenuAbsentOrMalformed(t *testing.T) {
	root := parse(t, `<button id="a" richtext-click="heading:2"></button><p></p>
		<button id="b" richtext-click="heading"></button><ul role="menu"><li><a richtext-click="heading:1:x"></a></li></ul>`)
	m, err := FindMenu(byID(root, "a"), "heading")
	assert.NoError(t, err)
	assert.Nil(t, m)

	_, err = FindMenu(byID(root, "b"), "heading")
	assert.True(t, errors.Is(err, ErrMalformedItem))
}

// ============================================================================
// Dialog
// ============================================================================

const dialogMarkup = `<div id="wrapper">
	<dialog richtext-opener="link">
		<form method="dialog">
			<input name="text" required>
			<input name="url" type="url" required>
			<button name="close" id="close">Close</button>
			<button name="save" id="save">Save</button>
			<button name="remove" id="remove">Remove</button>
		</form>
	</dialog>
</div>`

func openDialog(t *testing.T) (*html.Node, *Dialog, *Session, *[]dialog.Outcome) {
	t.Helper()
	root := parse(t, dialogMarkup)
	d, err := FindDialog(byID(root, "wrapper"), "link", "text", "url")
	require.NoError(t, err)
	assert.True(t, markup.HasAttr(byID(root, "remove"), "hidden"))

	s := NewSession(nil)
	d.Install(s)
	var outcomes []dialog.Outcome
	require.True(t, d.Open(s, func(_ *Session, o dialog.Outcome) { outcomes = append(outcomes, o) }))
	assert.False(t, d.Open(s, nil))
	return root, d, s, &outcomes
}

func TestDialogSave(t *testing.T) {
	root, d, s, outcomes := openDialog(t)
	d.Field("text").SetValue("hello")
	d.Field("url").SetValue("not a url")

	require.NoError(t, s.Click(byID(root, "save")))
	assert.True(t, d.IsOpen())

	d.Field("url").SetValue("https://example.com")
	require.NoError(t, s.Click(byID(root, "save")))
	assert.False(t, d.IsOpen())
	s.Wait()

	assert.Equal(t, []dialog.Outcome{dialog.OutcomeSave}, *outcomes)
	assert.Equal(t, "", d.Value("text"))
	assert.Equal(t, "", d.Value("url"))
}

func TestDialogCancelAndRemove(t *testing.T) {
	root, d, s, outcomes := openDialog(t)
	require.NoError(t, s.Click(byID(root, "remove")))
	assert.True(t, d.IsOpen())

	d.ShowRemove(true)
	assert.False(t, markup.HasAttr(byID(root, "remove"), "hidden"))
	require.NoError(t, s.Click(byID(root, "remove")))
	s.Wait()
	assert.True(t, markup.HasAttr(byID(root, "remove"), "hidden"))

	require.True(t, d.Open(s, func(_ *Session, o dialog.Outcome) { *outcomes = append(*outcomes, o) }))
	require.NoError(t, s.Click(byID(root, "close")))
	s.Wait()
	assert.Equal(t, []dialog.Outcome{dialog.OutcomeRemove, dialog.OutcomeCancel}, *outcomes)
}

func TestOpenDialogSuspendsOutsideClicks(t *testing.T) {
	root := parse(t, `<div id="wrapper"><button id="outside"></button>`+dialogMarkup+`</div>`)
	d, err := FindDialog(byID(root, "wrapper"), "link", "text", "url")
	require.NoError(t, err)
	s := NewSession(nil)
	d.Install(s)
	var clicks, documentClicks int
	s.OnClick(byID(root, "outside"), func(*ClickEvent) { clicks++ })
	s.OnDocumentClick(func(*ClickEvent) { documentClicks++ })

	require.NoError(t, s.Do(func(engine.Engine) {
		require.True(t, d.Open(s, nil))
	}))
	require.NoError(t, s.Click(byID(root, "outside")))
	assert.Equal(t, 0, clicks)
	assert.Equal(t, 0, documentClicks)
	assert.True(t, d.IsOpen())

	require.NoError(t, s.Click(byID(root, "close")))
	assert.Equal(t, 1, documentClicks, "clicks inside the dialog pass")
	s.Wait()

	require.NoError(t, s.Click(byID(root, "outside")))
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 2, documentClicks)
}

func TestDialogCancelledBySessionClose(t *testing.T) {
	_, d, s, outcomes := openDialog(t)
	s.Close()
	assert.False(t, d.IsOpen())
	assert.Equal(t, []dialog.Outcome{dialog.OutcomeCancel}, *outcomes)
}

func TestFindDialogErrors(t *testing.T) {
	root := parse(t, dialogMarkup)
	_, err := FindDialog(root, "link", "text", "variable")
	assert.True(t, errors.Is(err, dialog.ErrMissingField))
	_, err = FindDialog(root, "image", "image")
	assert.True(t, errors.Is(err, dialog.ErrNoDialog))
}
