package model

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
)

// numericAttrs are stored as JSON numbers.
var numericAttrs = map[string]bool{AttrLevel: true, AttrTextMargin: true}

func jsonNode(typ string, attrs engine.Attrs, content []string) string {
	s, _ := sjson.Set("", "type", typ)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		path := "attrs." + k
		if n, err := strconv.Atoi(attrs[k]); err == nil && numericAttrs[k] {
			s, _ = sjson.Set(s, path, n)
			continue
		}
		s, _ = sjson.Set(s, path, attrs[k])
	}
	if len(content) > 0 {
		s, _ = sjson.SetRaw(s, "content", "[]")
	}
	for _, c := range content {
		s, _ = sjson.SetRaw(s, "content.-1", c)
	}
	return s
}

// RenderJSON serializes d as a structured document tree.
func RenderJSON(d *Document) []byte {
	var content []string
	for i := 0; i < len(d.Blocks); {
		b := d.Blocks[i]
		if b.Wrap == "" {
			content = append(content, blockJSON(b))
			i++
			continue
		}
		var children []string
		for ; i < len(d.Blocks) && d.Blocks[i].Wrap == b.Wrap; i++ {
			child := blockJSON(d.Blocks[i])
			if b.Wrap != WrapBlockquote {
				child = jsonNode(extension.NameListItem, nil, []string{child})
			}
			children = append(children, child)
		}
		content = append(content, jsonNode(b.Wrap, nil, children))
	}
	return []byte(jsonNode(extension.NameDocument, nil, content))
}

func blockJSON(b *Block) string {
	if !b.IsTextblock() {
		return jsonNode(b.Type, b.Attrs, nil)
	}
	var inline []string
	for i := 0; i < len(b.Cells); {
		c := b.Cells[i]
		if c.Node != "" {
			inline = append(inline, withMarks(jsonNode(c.Node, nil, nil), c.Marks))
			i++
			continue
		}
		j := i
		var run []rune
		for ; j < len(b.Cells) && b.Cells[j].Node == "" && SameMarks(b.Cells[j].Marks, c.Marks); j++ {
			run = append(run, b.Cells[j].Char)
		}
		s, _ := sjson.Set("", "type", extension.NameText)
		s, _ = sjson.Set(s, "text", string(run))
		inline = append(inline, withMarks(s, c.Marks))
		i = j
	}
	return jsonNode(b.Type, b.Attrs, inline)
}

func withMarks(node string, marks []Mark) string {
	for _, m := range marks {
		node, _ = sjson.SetRaw(node, "marks.-1", jsonNode(m.Name, m.Attrs, nil))
	}
	return node
}

// ParseJSON builds a document from its structured form.
func ParseJSON(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", engine.ErrInvalidContent)
	}
	root := gjson.ParseBytes(data)
	if t := root.Get("type").String(); t != extension.NameDocument {
		return nil, fmt.Errorf("%w: root type %q", engine.ErrInvalidContent, t)
	}
	d := &Document{}
	var err error
	root.Get("content").ForEach(func(_, n gjson.Result) bool {
		err = parseJSONBlock(d, n, "")
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	d.Normalize()
	return d, nil
}

func jsonAttrs(n gjson.Result) engine.Attrs {
	var attrs engine.Attrs
	n.Get("attrs").ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.Null || v.String() == "" {
			return true
		}
		if attrs == nil {
			attrs = engine.Attrs{}
		}
		attrs[k.String()] = v.String()
		return true
	})
	return attrs
}

func parseJSONBlock(d *Document, n gjson.Result, wrap string) error {
	typ := n.Get("type").String()
	switch typ {
	case WrapBulletList, WrapOrderedList:
		var err error
		n.Get("content").ForEach(func(_, item gjson.Result) bool {
			item.Get("content").ForEach(func(_, c gjson.Result) bool {
				err = parseJSONBlock(d, c, typ)
				return err == nil
			})
			return err == nil
		})
		return err
	case WrapBlockquote:
		var err error
		n.Get("content").ForEach(func(_, c gjson.Result) bool {
			err = parseJSONBlock(d, c, WrapBlockquote)
			return err == nil
		})
		return err
	case TypeParagraph, TypeHeading, TypeCodeBlock, TypeHorizontalRule, TypeImage:
	default:
		return fmt.Errorf("%w: unknown node type %q", engine.ErrInvalidContent, typ)
	}
	b := &Block{Type: typ, Wrap: wrap, Attrs: jsonAttrs(n)}
	var err error
	n.Get("content").ForEach(func(_, c gjson.Result) bool {
		var marks []Mark
		c.Get("marks").ForEach(func(_, m gjson.Result) bool {
			cell := Cell{Marks: marks}
			cell.AddMark(Mark{Name: m.Get("type").String(), Attrs: jsonAttrs(m)})
			marks = cell.Marks
			return true
		})
		switch t := c.Get("type").String(); t {
		case extension.NameText:
			b.Cells = append(b.Cells, TextCells(c.Get("text").String(), marks)...)
		case NodeHardBreak:
			b.Cells = append(b.Cells, Cell{Node: NodeHardBreak, Marks: marks})
		default:
			err = fmt.Errorf("%w: unknown inline type %q", engine.ErrInvalidContent, t)
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	d.Blocks = append(d.Blocks, b)
	return nil
}
