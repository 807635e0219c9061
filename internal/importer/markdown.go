package importer

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownImporter handles Markdown outlines using goldmark. Headings nest by
// level and link to their anchors; bullet lists nest under the heading they
// follow, and a list item's first link supplies its target.
type MarkdownImporter struct {
	Config navtree.ParseConfig
}

func (p *MarkdownImporter) Import(r io.Reader, filename string) (*navtree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	doc := md.Parser().Parse(text.NewReader(src))

	var out outline
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			item := &navtree.NavNode{Label: inlineText(node, src)}
			if id, ok := node.AttributeString("id"); ok {
				if b, ok := id.([]byte); ok && len(b) > 0 {
					anchor := "#" + string(b)
					item.Target = &anchor
				}
			}
			out.add(node.Level, item)
		case *ast.List:
			out.attach(markdownList(node, src)...)
		}
	}

	return validated(single(filename, out.roots), p.Config)
}

func markdownList(list *ast.List, src []byte) []*navtree.NavNode {
	var nodes []*navtree.NavNode
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		li, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		item := &navtree.NavNode{}
		labelled := false
		for part := li.FirstChild(); part != nil; part = part.NextSibling() {
			if sub, ok := part.(*ast.List); ok {
				item.Children = append(item.Children, markdownList(sub, src)...)
				continue
			}
			if labelled {
				continue
			}
			labelled = true
			item.Label = inlineText(part, src)
			if dest := firstLink(part); dest != "" {
				item.Target = &dest
			}
		}
		nodes = append(nodes, item)
	}
	return nodes
}

// inlineText gets the visible text of a goldmark node, links included.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(buf.String()), " ")
}

func firstLink(n ast.Node) string {
	var dest string
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := c.(*ast.Link); ok && entering {
			dest = string(link.Destination)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return dest
}
