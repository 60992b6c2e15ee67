package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

const toolbarHTML = `<div class="dj-richtext-wrapper">
<div role="menubar">
  <button type="button" richtext-click="bold">B</button>
  <button type="button" richtext-click="heading" aria-expanded="false"><svg><path/></svg></button>
  <ul role="menu">
    <li><button richtext-click="heading:1"><svg><rect/></svg>H1</button></li>
    <li><button richtext-click="heading:2">H2</button></li>
  </ul>
</div>
</div>`

func parse(t *testing.T) *html.Node {
	t.Helper()
	doc, err := markup.ParseString(toolbarHTML)
	require.NoError(t, err)
	return doc
}

func TestFindAndAttributes(t *testing.T) {
	doc := parse(t)

	bold := markup.Find(doc, markup.AttrEquals("richtext-click", "bold"))
	require.NotNil(t, bold)
	assert.True(t, markup.IsElement(bold, "button"))
	assert.Equal(t, "button", markup.GetAttr(bold, "type"))

	items := markup.FindAll(doc, markup.AttrPrefix("richtext-click", "heading:"))
	assert.Len(t, items, 2)
}

func TestClassHelpers(t *testing.T) {
	doc := parse(t)
	bold := markup.Find(doc, markup.AttrEquals("richtext-click", "bold"))

	markup.AddClass(bold, "active", "primary")
	markup.AddClass(bold, "active")
	assert.Equal(t, []string{"active", "primary"}, markup.Classes(bold))

	markup.ToggleClass(bold, "active", false)
	assert.False(t, markup.HasClass(bold, "active"))

	markup.RemoveClass(bold, "primary")
	assert.False(t, markup.HasAttr(bold, "class"))
}

func TestNextElementSiblingSkipsText(t *testing.T) {
	doc := parse(t)
	heading := markup.Find(doc, markup.AttrEquals("richtext-click", "heading"))

	menu := markup.NextElementSibling(heading)
	require.NotNil(t, menu)
	assert.Equal(t, "ul", menu.Data)
	assert.Equal(t, "menu", markup.GetAttr(menu, "role"))
}

func TestClosestAndContains(t *testing.T) {
	doc := parse(t)
	rect := markup.Find(doc, markup.Tag("rect"))
	require.NotNil(t, rect)

	item := markup.Closest(rect, markup.Tag("button"))
	require.NotNil(t, item)
	assert.Equal(t, "heading:1", markup.GetAttr(item, "richtext-click"))

	menu := markup.Find(doc, markup.AttrEquals("role", "menu"))
	assert.True(t, markup.Contains(menu, rect))
	assert.False(t, markup.Contains(item, menu))
}

func TestCloneAndReplaceChildren(t *testing.T) {
	doc := parse(t)
	heading := markup.Find(doc, markup.AttrEquals("richtext-click", "heading"))
	item := markup.Find(doc, markup.AttrEquals("richtext-click", "heading:1"))

	icon := markup.Clone(markup.Find(item, markup.Tag("svg")))
	markup.ReplaceChildren(heading, icon)

	assert.Equal(t, `<svg><rect></rect></svg>`, markup.RenderChildren(heading))
	// the original icon stays in the menu item
	assert.NotNil(t, markup.Find(item, markup.Tag("rect")))
}

func TestStyle(t *testing.T) {
	doc := parse(t)
	menu := markup.Find(doc, markup.AttrEquals("role", "menu"))

	markup.SetStyle(menu, "left", "10px")
	markup.SetStyle(menu, "top", "20px")
	markup.SetStyle(menu, "left", "12px")

	assert.Equal(t, "12px", markup.Style(menu, "left"))
	assert.Equal(t, "20px", markup.Style(menu, "top"))
	assert.Equal(t, "left: 12px; top: 20px;", markup.GetAttr(menu, "style"))
}

func TestDescribe(t *testing.T) {
	doc := parse(t)
	bold := markup.Find(doc, markup.AttrEquals("richtext-click", "bold"))
	assert.Equal(t, `<button type="button" richtext-click="bold">`, markup.Describe(bold))
}

func TestInsertAfterAndText(t *testing.T) {
	doc := parse(t)
	wrapper := markup.Find(doc, markup.Tag("div"))
	bold := markup.Find(doc, markup.AttrEquals("richtext-click", "bold"))

	markup.InsertAfter(wrapper, bold)
	assert.Equal(t, wrapper, bold.PrevSibling)
	assert.Equal(t, "B", markup.TextContent(bold))

	markup.SetTextContent(bold, "Bold")
	assert.Equal(t, "Bold", markup.TextContent(bold))
}
