package model

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
)

var whitespace = regexp.MustCompile(`\s+`)

// ============================================================================
// Rendering
// ============================================================================

func element(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// RenderHTML serializes d as HTML.
func RenderHTML(d *Document) string {
	var buf bytes.Buffer
	for _, n := range renderBlocks(d.Blocks) {
		if err := html.Render(&buf, n); err != nil {
			return ""
		}
	}
	return buf.String()
}

func wrapTag(wrap string) string {
	switch wrap {
	case WrapBulletList:
		return "ul"
	case WrapOrderedList:
		return "ol"
	default:
		return "blockquote"
	}
}

func renderBlocks(blocks []*Block) []*html.Node {
	var out []*html.Node
	for i := 0; i < len(blocks); {
		b := blocks[i]
		if b.Wrap == "" {
			out = append(out, renderBlock(b))
			i++
			continue
		}
		container := element(wrapTag(b.Wrap))
		for ; i < len(blocks) && blocks[i].Wrap == b.Wrap; i++ {
			child := renderBlock(blocks[i])
			if b.Wrap == WrapBlockquote {
				container.AppendChild(child)
				continue
			}
			li := element("li")
			li.AppendChild(child)
			container.AppendChild(li)
		}
		out = append(out, container)
	}
	return out
}

func renderBlock(b *Block) *html.Node {
	var el *html.Node
	switch b.Type {
	case TypeHeading:
		el = element("h" + b.Attr(AttrLevel))
	case TypeCodeBlock:
		pre := element("pre")
		code := element("code")
		pre.AppendChild(code)
		renderInline(code, b.Cells)
		return pre
	case TypeHorizontalRule:
		return element("hr")
	case TypeImage:
		el = element("img")
		markup.SetAttr(el, "src", b.Attr(AttrSrc))
		if alt := b.Attr(AttrAlt); alt != "" {
			markup.SetAttr(el, "alt", alt)
		}
		return el
	default:
		el = element("p")
	}
	if align := b.Attr(AttrTextAlign); align != "" {
		markup.SetStyle(el, "text-align", align)
	}
	if indent := b.Attr(AttrTextIndent); indent != "" {
		markup.SetAttr(el, "data-text-indent", indent)
	}
	if margin := b.Attr(AttrTextMargin); margin != "" {
		markup.SetAttr(el, "data-text-margin", margin)
	}
	renderInline(el, b.Cells)
	return el
}

func markElement(m Mark) *html.Node {
	switch m.Name {
	case extension.NameBold:
		return element("strong")
	case extension.NameItalic:
		return element("em")
	case extension.NameUnderline:
		return element("u")
	case extension.NameSubscript:
		return element("sub")
	case extension.NameSuperscript:
		return element("sup")
	case extension.NameLink:
		a := element("a")
		markup.SetAttr(a, "href", m.Attrs["href"])
		return a
	case extension.NameProcurator:
		span := element("span")
		markup.SetAttr(span, "data-procurator", m.Attrs["variable"])
		return span
	case extension.NameTextColor:
		span := element("span")
		color := m.Attrs[extension.NameTextColor]
		if _, ok := NormalizeColor(color); ok {
			markup.SetStyle(span, "color", color)
		} else {
			markup.SetAttr(span, "class", color)
		}
		return span
	default:
		span := element("span")
		markup.SetAttr(span, "data-mark", m.Name)
		return span
	}
}

// renderInline nests mark elements so that runs sharing their outer marks
// share the elements.
func renderInline(parent *html.Node, cells []Cell) {
	type open struct {
		mark Mark
		el   *html.Node
	}
	var stack []open
	top := func() *html.Node {
		if len(stack) == 0 {
			return parent
		}
		return stack[len(stack)-1].el
	}
	var run strings.Builder
	var runMarks []Mark
	flush := func() {
		if run.Len() > 0 {
			top().AppendChild(text(run.String()))
			run.Reset()
		}
	}
	for i, c := range cells {
		if i == 0 || !SameMarks(c.Marks, runMarks) {
			flush()
			keep := 0
			for keep < len(stack) && keep < len(c.Marks) && stack[keep].mark.Equal(c.Marks[keep]) {
				keep++
			}
			stack = stack[:keep]
			for _, m := range c.Marks[keep:] {
				el := markElement(m)
				top().AppendChild(el)
				stack = append(stack, open{mark: m, el: el})
			}
			runMarks = c.Marks
		}
		if c.Node == NodeHardBreak {
			flush()
			top().AppendChild(element("br"))
			continue
		}
		run.WriteRune(c.Char)
	}
	flush()
}

// ============================================================================
// Parsing
// ============================================================================

// ParseHTML builds a document from an HTML fragment.
func ParseHTML(s string) (*Document, error) {
	nodes, err := markup.ParseFragment(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrInvalidContent, err)
	}
	p := &htmlParser{doc: &Document{}}
	for _, n := range nodes {
		p.block(n, "")
	}
	p.closePending()
	p.doc.Normalize()
	return p.doc, nil
}

type htmlParser struct {
	doc     *Document
	pending *Block
}

func (p *htmlParser) closePending() {
	if p.pending != nil {
		p.doc.Blocks = append(p.doc.Blocks, p.pending)
		p.pending = nil
	}
}

func (p *htmlParser) block(n *html.Node, wrap string) {
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		if p.pending == nil {
			p.pending = &Block{Type: TypeParagraph, Wrap: wrap}
		}
		p.inline(p.pending, n, nil, false)
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	switch n.Data {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		p.closePending()
		b := &Block{Type: TypeParagraph, Wrap: wrap}
		if level, ok := strings.CutPrefix(n.Data, "h"); ok {
			b.Type = TypeHeading
			b.SetAttr(AttrLevel, level)
		}
		p.blockAttrs(b, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.inline(b, c, nil, false)
		}
		trimCells(b)
		p.doc.Blocks = append(p.doc.Blocks, b)
	case "pre":
		p.closePending()
		b := &Block{Type: TypeCodeBlock, Wrap: wrap}
		b.Cells = TextCells(markup.TextContent(n), nil)
		p.doc.Blocks = append(p.doc.Blocks, b)
	case "hr":
		p.closePending()
		p.doc.Blocks = append(p.doc.Blocks, &Block{Type: TypeHorizontalRule, Wrap: wrap})
	case "img":
		p.closePending()
		b := &Block{Type: TypeImage, Wrap: wrap}
		b.SetAttr(AttrSrc, markup.GetAttr(n, "src"))
		b.SetAttr(AttrAlt, markup.GetAttr(n, "alt"))
		p.doc.Blocks = append(p.doc.Blocks, b)
	case "ul", "ol":
		p.closePending()
		w := WrapBulletList
		if n.Data == "ol" {
			w = WrapOrderedList
		}
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if !markup.IsElement(li, "li") {
				continue
			}
			for c := li.FirstChild; c != nil; c = c.NextSibling {
				p.block(c, w)
			}
			p.closePending()
		}
	case "blockquote":
		p.closePending()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.block(c, WrapBlockquote)
		}
		p.closePending()
	case "div", "section", "article", "body":
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.block(c, wrap)
		}
	default:
		if p.pending == nil {
			p.pending = &Block{Type: TypeParagraph, Wrap: wrap}
		}
		p.inline(p.pending, n, nil, false)
	}
}

func (p *htmlParser) blockAttrs(b *Block, n *html.Node) {
	if align := markup.Style(n, "text-align"); align != "" {
		b.SetAttr(AttrTextAlign, align)
	}
	b.SetAttr(AttrTextIndent, markup.GetAttr(n, "data-text-indent"))
	if margin := markup.GetAttr(n, "data-text-margin"); margin != "" {
		if _, err := strconv.Atoi(margin); err == nil {
			b.SetAttr(AttrTextMargin, margin)
		}
	}
}

func (p *htmlParser) inline(b *Block, n *html.Node, marks []Mark, pre bool) {
	switch n.Type {
	case html.TextNode:
		s := n.Data
		if !pre {
			s = whitespace.ReplaceAllString(s, " ")
		}
		b.Cells = append(b.Cells, TextCells(s, marks)...)
		return
	case html.ElementNode:
	default:
		return
	}
	var m *Mark
	switch n.Data {
	case "br":
		b.Cells = append(b.Cells, Cell{Node: NodeHardBreak, Marks: cloneMarks(marks)})
		return
	case "strong", "b":
		m = &Mark{Name: extension.NameBold}
	case "em", "i":
		m = &Mark{Name: extension.NameItalic}
	case "u":
		m = &Mark{Name: extension.NameUnderline}
	case "sub":
		m = &Mark{Name: extension.NameSubscript}
	case "sup":
		m = &Mark{Name: extension.NameSuperscript}
	case "a":
		m = &Mark{Name: extension.NameLink, Attrs: engine.Attrs{"href": markup.GetAttr(n, "href")}}
	case "span":
		if v, ok := markup.Attr(n, "data-procurator"); ok {
			m = &Mark{Name: extension.NameProcurator, Attrs: engine.Attrs{"variable": v}}
		} else if color := markup.Style(n, "color"); color != "" {
			m = &Mark{Name: extension.NameTextColor, Attrs: engine.Attrs{extension.NameTextColor: CanonicalColor(color)}}
		} else if cls := markup.Classes(n); len(cls) == 1 && IsColorClass(cls[0]) {
			m = &Mark{Name: extension.NameTextColor, Attrs: engine.Attrs{extension.NameTextColor: cls[0]}}
		}
	}
	next := marks
	if m != nil {
		c := Cell{Marks: cloneMarks(marks)}
		c.AddMark(*m)
		next = c.Marks
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.inline(b, c, next, pre)
	}
}

// trimCells drops the leading and trailing spaces whitespace collapsing
// leaves behind from source formatting.
func trimCells(b *Block) {
	for len(b.Cells) > 0 && b.Cells[0].Node == "" && b.Cells[0].Char == ' ' {
		b.Cells = b.Cells[1:]
	}
	for n := len(b.Cells); n > 0 && b.Cells[n-1].Node == "" && b.Cells[n-1].Char == ' '; n = len(b.Cells) {
		b.Cells = b.Cells[:n-1]
	}
}
