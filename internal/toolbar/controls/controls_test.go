package controls

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/engine/doc"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/toolbar"
)

type fixture struct {
	root *html.Node
	tb   *toolbar.Toolbar
	ed   *doc.Editor
	s    *toolbar.Session
}

func build(t *testing.T, menubar string, content string, extra ...string) (*html.Node, *toolbar.Toolbar, error) {
	t.Helper()
	src := `<div id="wrapper"><div role="menubar">` + menubar + `</div>`
	for _, e := range extra {
		src += e
	}
	src += `</div><p id="outside"></p>`
	root, err := markup.ParseString(src)
	require.NoError(t, err)
	set, err := extension.NewSet(extension.Base()...)
	require.NoError(t, err)
	wrapper := markup.Find(root, markup.AttrEquals("id", "wrapper"))
	tb, err := toolbar.Build(wrapper, markup.Find(root, markup.AttrEquals("role", "menubar")), Registry(), set)
	return root, tb, err
}

func setup(t *testing.T, menubar, content string, extra ...string) *fixture {
	t.Helper()
	root, tb, err := build(t, menubar, content, extra...)
	require.NoError(t, err)
	ed, err := doc.New(engine.Config{Modules: tb.Modules(), Content: engine.Content{HTML: content}, Editable: true})
	require.NoError(t, err)
	s := toolbar.NewSession(ed)
	tb.Install(s)
	t.Cleanup(s.Close)
	return &fixture{root: root, tb: tb, ed: ed, s: s}
}

func (f *fixture) node(id string) *html.Node {
	return markup.Find(f.root, markup.AttrEquals("id", id))
}

func (f *fixture) click(t *testing.T, id string) {
	t.Helper()
	n := f.node(id)
	require.NotNil(t, n, id)
	require.NoError(t, f.s.Click(n))
}

func (f *fixture) selectRange(t *testing.T, from, to int) {
	t.Helper()
	require.NoError(t, f.s.Do(func(eng engine.Engine) { eng.SetSelection(from, to) }))
}

func active(n *html.Node) bool {
	return markup.HasClass(n, toolbar.ActiveClass)
}

// ============================================================================
// Registry
// ============================================================================

func TestRegistryHoldsEveryControl(t *testing.T) {
	r := Registry()
	assert.Equal(t, len(factories), r.Len())
	for _, name := range []string{"BoldAction", "TextColorAction", "HeadingAction", "TextAlignAction", "LinkAction", "PlaceholderAction", "ImageAction"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}
	assert.True(t, errors.Is(Register(r), toolbar.ErrDuplicateCategory))
}

// ============================================================================
// Commands
// ============================================================================

func TestBoldToggles(t *testing.T) {
	f := setup(t, `<button id="bold" richtext-click="bold"></button>`, "<p>hello world</p>")
	f.selectRange(t, 0, 5)

	f.click(t, "bold")
	assert.Equal(t, "<p><strong>hello</strong> world</p>", f.ed.HTML())
	assert.True(t, active(f.node("bold")))
	assert.True(t, f.ed.Focused())

	f.click(t, "bold")
	assert.Equal(t, "<p>hello world</p>", f.ed.HTML())
	assert.False(t, active(f.node("bold")))
}

func TestSubscriptClearsSuperscript(t *testing.T) {
	f := setup(t, `<button id="sub" richtext-click="subscript"></button><button id="sup" richtext-click="superscript"></button>`, "<p>x2</p>")
	f.selectRange(t, 1, 2)

	f.click(t, "sup")
	assert.Equal(t, "<p>x<sup>2</sup></p>", f.ed.HTML())
	f.click(t, "sub")
	assert.Equal(t, "<p>x<sub>2</sub></p>", f.ed.HTML())
	assert.True(t, active(f.node("sub")))

	f.selectRange(t, 0, 0)
	f.selectRange(t, 1, 2)
	assert.True(t, active(f.node("sub")))
	assert.False(t, active(f.node("sup")))
}

func TestSubscriptAloneWorks(t *testing.T) {
	f := setup(t, `<button id="sub" richtext-click="subscript"></button>`, "<p>x2</p>")
	f.selectRange(t, 1, 2)
	f.click(t, "sub")
	assert.Equal(t, "<p>x<sub>2</sub></p>", f.ed.HTML())
}

func TestListsAndBlocks(t *testing.T) {
	f := setup(t, `<button id="ul" richtext-click="bulletList"></button>
		<button id="ol" richtext-click="orderedList"></button>
		<button id="quote" richtext-click="blockquote"></button>
		<button id="code" richtext-click="codeBlock"></button>
		<button id="clear" richtext-click="clearFormat"></button>`, "<p>a</p>")

	for _, name := range []string{"bulletList", "orderedList", "listItem", "blockquote", "codeBlock"} {
		assert.True(t, f.tb.Modules().Has(name), name)
	}

	f.click(t, "ul")
	assert.Equal(t, "<ul><li><p>a</p></li></ul>", f.ed.HTML())
	assert.True(t, active(f.node("ul")))

	f.click(t, "clear")
	assert.Equal(t, "<p>a</p>", f.ed.HTML())

	f.click(t, "quote")
	assert.Equal(t, "<blockquote><p>a</p></blockquote>", f.ed.HTML())
	f.click(t, "quote")
	f.click(t, "code")
	assert.Equal(t, "<pre><code>a</code></pre>", f.ed.HTML())
	assert.True(t, active(f.node("code")))
}

func TestInsertNodes(t *testing.T) {
	f := setup(t, `<button id="br" richtext-click="hardBreak"></button><button id="hr" richtext-click="horizontalRule"></button>`, "<p>ab</p>")
	f.selectRange(t, 1, 1)
	f.click(t, "br")
	assert.Equal(t, "<p>a<br/>b</p>", f.ed.HTML())

	f.selectRange(t, 0, 0)
	f.click(t, "hr")
	assert.Equal(t, "<hr/><p>a<br/>b</p>", f.ed.HTML())
}

func TestUndoRedo(t *testing.T) {
	f := setup(t, `<button id="bold" richtext-click="bold"></button>
		<button id="undo" richtext-click="undo"></button><button id="redo" richtext-click="redo"></button>`, "<p>ab</p>")
	assert.True(t, f.tb.Modules().Has(extension.NameHistory))

	f.selectRange(t, 0, 2)
	f.click(t, "bold")
	f.click(t, "undo")
	assert.Equal(t, "<p>ab</p>", f.ed.HTML())
	f.click(t, "redo")
	assert.Equal(t, "<p><strong>ab</strong></p>", f.ed.HTML())
}

// ============================================================================
// Indent and margin
// ============================================================================

func TestTextIndentToggles(t *testing.T) {
	f := setup(t, `<button id="in" richtext-click="textIndent:indent"></button><button id="out" richtext-click="textIndent:outdent"></button>`, "<p>a</p>")
	assert.Equal(t, extension.NameTextIndent, f.tb.Modules().Find(extension.NameTextIndent).Name)

	f.click(t, "in")
	assert.Equal(t, `<p data-text-indent="indent">a</p>`, f.ed.HTML())
	assert.True(t, active(f.node("in")))
	assert.False(t, active(f.node("out")))

	f.click(t, "in")
	assert.Equal(t, "<p>a</p>", f.ed.HTML())
	assert.False(t, active(f.node("in")))
}

func TestTextMarginSteps(t *testing.T) {
	f := setup(t, `<button id="inc" richtext-click="textMargin:increase"></button>
		<button id="dec" richtext-click="textMargin:decrease"></button>
		<button id="reset" richtext-click="textMargin:unset"></button>`, "<p>a</p>")
	opts := extension.TextMarginConfig(f.tb.Modules().Find(extension.NameTextMargin))
	require.NotNil(t, opts)
	assert.Equal(t, 5, opts.MaxIndentLevel)

	for i := 0; i < 7; i++ {
		f.click(t, "inc")
	}
	assert.Equal(t, `<p data-text-margin="5">a</p>`, f.ed.HTML())
	assert.False(t, active(f.node("inc")))

	f.click(t, "dec")
	assert.Equal(t, `<p data-text-margin="4">a</p>`, f.ed.HTML())
	f.click(t, "reset")
	assert.Equal(t, "<p>a</p>", f.ed.HTML())
}

// ============================================================================
// Heading and alignment
// ============================================================================

func TestStandaloneHeadingsMergeLevels(t *testing.T) {
	f := setup(t, `<button id="h2" richtext-click="heading:2"></button><button id="h3" richtext-click="heading:3"></button>`, "<p>title</p>")
	opts := extension.HeadingConfig(f.tb.Modules().Find(extension.NameHeading))
	require.NotNil(t, opts)
	assert.Equal(t, []int{2, 3}, opts.Levels)

	f.click(t, "h2")
	assert.Equal(t, "<h2>title</h2>", f.ed.HTML())
	assert.True(t, active(f.node("h2")))
	assert.False(t, active(f.node("h3")))

	f.click(t, "h3")
	assert.Equal(t, "<h3>title</h3>", f.ed.HTML())
	assert.True(t, active(f.node("h3")))

	f.selectRange(t, 1, 1)
	assert.False(t, active(f.node("h2")))
}

func TestHeadingRejectsBadLevel(t *testing.T) {
	_, _, err := build(t, `<button richtext-click="heading:two"></button>`, "")
	assert.True(t, errors.Is(err, toolbar.ErrMalformedItem))

	_, _, err = build(t, `<button richtext-click="heading"></button>`, "")
	assert.True(t, errors.Is(err, toolbar.ErrMalformedItem))

	_, _, err = build(t, `<button richtext-click="heading:7"></button>`, "")
	assert.True(t, errors.Is(err, toolbar.ErrMalformedItem))
}

const headingMenu = `<button id="heading" richtext-click="heading" aria-expanded="false"><svg id="default-icon"></svg></button>
<ul role="menu" id="heading-menu">
	<li id="li1"><button id="item1" richtext-click="heading:1"><svg class="h1-icon"></svg></button></li>
	<li id="li2"><button id="item2" richtext-click="heading:2"><svg class="h2-icon"></svg></button></li>
</ul>`

func TestHeadingMenu(t *testing.T) {
	f := setup(t, headingMenu, "<p>title</p>")
	assert.Equal(t, []int{1, 2}, extension.HeadingConfig(f.tb.Modules().Find(extension.NameHeading)).Levels)

	ctl := f.node("heading")
	f.click(t, "heading")
	assert.Equal(t, "true", markup.GetAttr(ctl, "aria-expanded"))
	assert.Equal(t, "<p>title</p>", f.ed.HTML())

	f.click(t, "item2")
	assert.Equal(t, "<h2>title</h2>", f.ed.HTML())
	assert.Equal(t, "false", markup.GetAttr(ctl, "aria-expanded"))
	assert.True(t, active(ctl))
	assert.True(t, markup.HasClass(markup.Find(ctl, markup.Tag("svg")), "h2-icon"))

	f.click(t, "heading")
	assert.True(t, active(f.node("li2")))
	assert.False(t, active(f.node("li1")))
	f.click(t, "outside")
	assert.Equal(t, "false", markup.GetAttr(ctl, "aria-expanded"))

	require.NoError(t, f.s.Do(func(eng engine.Engine) {
		eng.Chain().SetBlock(extension.NameParagraph, nil).Run()
		eng.SetSelection(1, 1)
	}))
	assert.False(t, active(ctl))
	assert.Equal(t, "default-icon", markup.GetAttr(markup.Find(ctl, markup.Tag("svg")), "id"))
}

func TestTextAlignMenuNeverMarksControl(t *testing.T) {
	f := setup(t, `<button id="align" richtext-click="textAlign"></button>
		<ul role="menu"><li><a id="left" richtext-click="alignment:left"></a></li><li><a id="center" richtext-click="alignment:center"></a></li></ul>
		<button id="right" richtext-click="textAlign:right"></button>`, "<p>a</p>")
	opts := extension.TextAlignConfig(f.tb.Modules().Find(extension.NameTextAlign))
	require.NotNil(t, opts)
	assert.Equal(t, []string{"left", "center", "right"}, opts.Alignments)

	f.click(t, "align")
	f.click(t, "center")
	assert.Equal(t, `<p style="text-align: center;">a</p>`, f.ed.HTML())
	assert.False(t, active(f.node("align")))

	f.click(t, "right")
	assert.Equal(t, `<p style="text-align: right;">a</p>`, f.ed.HTML())
	assert.True(t, active(f.node("right")))
}

func TestTextAlignRejectsUnknown(t *testing.T) {
	_, _, err := build(t, `<button richtext-click="textAlign:middle"></button>`, "")
	assert.True(t, errors.Is(err, toolbar.ErrMalformedItem))
}

// ============================================================================
// Text color
// ============================================================================

const colorMenu = `<button id="color" richtext-click="textColor"><svg><rect id="swatch"></rect></svg></button>
<ul role="menu">
	<li><a id="red" richtext-click="color:rgb(255, 0, 0)"></a></li>
	<li><a id="blue" richtext-click="color:rgb(0, 0, 255)"></a></li>
	<li><a id="none" richtext-click="color:null"></a></li>
</ul>`

func TestTextColorStyles(t *testing.T) {
	f := setup(t, colorMenu, "<p>red</p>")
	assert.Empty(t, extension.TextColorConfig(f.tb.Modules().Find(extension.NameTextColor)).AllowedClasses)
	f.selectRange(t, 0, 3)

	f.click(t, "color")
	f.click(t, "red")
	assert.Equal(t, `<p><span style="color: rgb(255, 0, 0);">red</span></p>`, f.ed.HTML())
	assert.Equal(t, "rgb(255, 0, 0)", markup.GetAttr(f.node("swatch"), "fill"))
	assert.True(t, active(f.node("color")))

	f.click(t, "color")
	f.click(t, "none")
	assert.Equal(t, "<p>red</p>", f.ed.HTML())
	assert.False(t, markup.HasAttr(f.node("swatch"), "fill"))
	assert.False(t, active(f.node("color")))
}

func TestTextColorClasses(t *testing.T) {
	f := setup(t, `<button id="color" richtext-click="textColor"><svg><rect id="swatch" class="stale"></rect></svg></button>
		<ul role="menu"><li><a id="red" richtext-click="color:text-red"></a></li><li><a richtext-click="color:text-blue"></a></li></ul>`, "<p>x</p>")
	assert.Equal(t, []string{"text-red", "text-blue"}, extension.TextColorConfig(f.tb.Modules().Find(extension.NameTextColor)).AllowedClasses)

	f.selectRange(t, 0, 1)
	f.click(t, "color")
	f.click(t, "red")
	assert.Equal(t, `<p><span class="text-red">x</span></p>`, f.ed.HTML())
	assert.Equal(t, []string{"text-red"}, markup.Classes(f.node("swatch")))
}

func TestTextColorConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		menubar string
		err     error
	}{
		{"no menu", `<button richtext-click="textColor"></button>`, toolbar.ErrMissingMenu},
		{"mixed", `<button richtext-click="textColor"></button><ul role="menu"><li><a richtext-click="color:red"></a></li><li><a richtext-click="color:rgb(1, 2, 3)"></a></li></ul>`, ErrMixedColors},
		{"invalid", `<button richtext-click="textColor"></button><ul role="menu"><li><a richtext-click="color:rgb(1,2,3)"></a></li></ul>`, ErrInvalidColor},
		{"two controls", colorMenu + `<button richtext-click="textColor"></button><ul role="menu"><li><a richtext-click="color:null"></a></li></ul>`, ErrSecondColor},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (pre-go1.22 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := build(t, tt.menubar, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())
		})
	}
}

// ============================================================================
// Dialogs
// ============================================================================

const linkDialog = `<dialog richtext-opener="link"><form method="dialog">
	<input name="text" required>
	<input name="url" type="url" required>
	<button id="link-close" name="close">Close</button>
	<button id="link-save" name="save">Save</button>
	<button id="link-remove" name="remove">Remove</button>
</form></dialog>`

func TestLinkRoundTrip(t *testing.T) {
	f := setup(t, `<button id="link" richtext-click="link"></button>`, "<p>hello world</p>", linkDialog)
	d := f.tb.Action("link").(*link).Dialog()

	f.click(t, "link")
	assert.False(t, d.IsOpen(), "no selection, no dialog")

	f.selectRange(t, 0, 5)
	f.click(t, "link")
	require.True(t, d.IsOpen())
	assert.Equal(t, "hello", d.Value("text"))
	assert.Equal(t, "", d.Value("url"))
	assert.True(t, markup.HasAttr(f.node("link-remove"), "hidden"))

	d.Field("url").SetValue("https://example.com")
	f.click(t, "link-save")
	f.s.Wait()
	assert.Equal(t, `<p><a href="https://example.com">hello</a> world</p>`, f.ed.HTML())
	assert.True(t, active(f.node("link")))
	assert.Equal(t, "", d.Value("url"))

	f.click(t, "link")
	require.True(t, d.IsOpen())
	assert.Equal(t, "hello", d.Value("text"))
	assert.Equal(t, "https://example.com", d.Value("url"))
	assert.False(t, markup.HasAttr(f.node("link-remove"), "hidden"))

	f.click(t, "link-remove")
	f.s.Wait()
	assert.Equal(t, "<p>hello world</p>", f.ed.HTML())
	assert.False(t, active(f.node("link")))
}

func TestLinkInvalidSaveKeepsDialogOpen(t *testing.T) {
	f := setup(t, `<button id="link" richtext-click="link"></button>`, "<p>hello</p>", linkDialog)
	d := f.tb.Action("link").(*link).Dialog()
	f.selectRange(t, 0, 5)
	f.click(t, "link")

	d.Field("url").SetValue("example")
	f.click(t, "link-save")
	assert.True(t, d.IsOpen())

	f.click(t, "link-close")
	f.s.Wait()
	assert.False(t, d.IsOpen())
	assert.Equal(t, "<p>hello</p>", f.ed.HTML())
	assert.Equal(t, "", d.Value("text"))
}

func TestOpenLinkDialogSuspendsToolbar(t *testing.T) {
	f := setup(t, `<button id="bold" richtext-click="bold"></button><button id="link" richtext-click="link"></button>`,
		"<p>hello world</p>", linkDialog)
	d := f.tb.Action("link").(*link).Dialog()
	f.selectRange(t, 0, 5)
	f.click(t, "link")
	require.True(t, d.IsOpen())

	f.click(t, "bold")
	assert.Equal(t, "<p>hello world</p>", f.ed.HTML())

	d.Field("text").SetValue("hi")
	d.Field("url").SetValue("https://example.com")
	f.click(t, "link")
	assert.Equal(t, "hi", d.Value("text"))
	assert.Equal(t, "https://example.com", d.Value("url"))

	f.click(t, "link-save")
	f.s.Wait()
	assert.Equal(t, `<p><a href="https://example.com">hi</a> world</p>`, f.ed.HTML())
}

func TestLinkEditsText(t *testing.T) {
	f := setup(t, `<button id="link" richtext-click="link"></button>`, "<p>hello world</p>", linkDialog)
	d := f.tb.Action("link").(*link).Dialog()
	f.selectRange(t, 6, 11)
	f.click(t, "link")
	d.Field("text").SetValue("there")
	d.Field("url").SetValue("https://there.test/")
	f.click(t, "link-save")
	f.s.Wait()
	assert.Equal(t, `<p>hello <a href="https://there.test/">there</a></p>`, f.ed.HTML())
}

func TestLinkDialogRequired(t *testing.T) {
	_, _, err := build(t, `<button richtext-click="link"></button>`, "")
	require.Error(t, err)
	_, _, err = build(t, `<button richtext-click="link"></button>`, "",
		`<dialog richtext-opener="link"><form method="dialog"><input name="text"></form></dialog>`)
	require.Error(t, err)
}

const placeholderDialog = `<dialog richtext-opener="placeholder"><form method="dialog">
	<input name="variable" required pattern="[a-z_]+">
	<input name="sample">
	<button id="ph-save" name="save">Save</button>
	<button id="ph-remove" name="remove">Remove</button>
</form></dialog>`

func TestPlaceholderSampleFallsBackToVariable(t *testing.T) {
	f := setup(t, `<button id="ph" richtext-click="placeholder"></button>`, "<p>Dear X,</p>", placeholderDialog)
	assert.True(t, f.tb.Modules().Has(extension.NameProcurator))
	d := f.tb.Action("placeholder").(*placeholder).Dialog()

	f.selectRange(t, 5, 6)
	f.click(t, "ph")
	require.True(t, d.IsOpen())
	assert.Equal(t, "X", d.Value("sample"))
	d.Field("variable").SetValue("first_name")
	d.Field("sample").SetValue("")
	f.click(t, "ph-save")
	f.s.Wait()
	assert.Equal(t, `<p>Dear <span data-procurator="first_name">first_name</span>,</p>`, f.ed.HTML())
	assert.True(t, active(f.node("ph")))

	f.click(t, "ph")
	require.True(t, d.IsOpen())
	assert.Equal(t, "first_name", d.Value("variable"))
	f.click(t, "ph-remove")
	f.s.Wait()
	assert.Equal(t, "<p>Dear first_name,</p>", f.ed.HTML())
}

const imageDialog = `<dialog richtext-opener="image"><form method="dialog">
	<input name="image" type="url">
	<button id="img-save" name="save">Save</button>
	<button id="img-remove" name="remove">Remove</button>
</form></dialog>`

func TestImageInserts(t *testing.T) {
	f := setup(t, `<button id="img" richtext-click="image"></button>`, "<p>a</p>", imageDialog)
	d := f.tb.Action("image").(*image).Dialog()

	f.click(t, "img")
	require.True(t, d.IsOpen())
	assert.True(t, markup.HasAttr(f.node("img-remove"), "hidden"))
	d.Field("image").SetValue("https://x.test/a.png")
	f.click(t, "img-save")
	f.s.Wait()
	assert.Contains(t, f.ed.HTML(), `<img src="https://x.test/a.png"/>`)
}

func TestImagePrefersDropboxPreview(t *testing.T) {
	dlg := `<dialog richtext-opener="image"><form method="dialog">
		<input name="image" type="file"><div class="dj-dropbox"><img src="/media/up.png"></div>
		<button id="img-save" name="save">Save</button>
	</form></dialog>`
	f := setup(t, `<button id="img" richtext-click="image"></button>`, "<p>a</p>", dlg)
	f.click(t, "img")
	f.click(t, "img-save")
	f.s.Wait()
	assert.Contains(t, f.ed.HTML(), `<img src="/media/up.png"/>`)
}
