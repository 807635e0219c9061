package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
	"golang.org/x/net/html"
)

// HTMLImporter handles HTML tables of contents. The first <ul> or <ol>
// (inside <nav> when there is one) becomes the forest; each <li> takes its
// label and target from its first <a href>. Pages without a list fall back to
// their heading outline.
type HTMLImporter struct {
	Config navtree.ParseConfig
}

func (p *HTMLImporter) Import(r io.Reader, filename string) (*navtree.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	scope := findElement(doc, "nav")
	if scope == nil {
		scope = findElement(doc, "body")
	}
	if scope == nil {
		scope = doc
	}

	if list := findList(scope); list != nil {
		return validated(single(filename, htmlList(list)), p.Config)
	}
	return validated(single(filename, headingOutline(scope)), p.Config)
}

func htmlList(list *html.Node) []*navtree.NavNode {
	var nodes []*navtree.NavNode
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			nodes = append(nodes, htmlItem(c))
		}
	}
	return nodes
}

func htmlItem(li *html.Node) *navtree.NavNode {
	node := &navtree.NavNode{}
	var text strings.Builder
	anchor := ""
	found := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.ElementNode && isList(c.Data):
				node.Children = append(node.Children, htmlList(c)...)
			case c.Type == html.ElementNode && c.Data == "a" && !found:
				found = true
				if href, ok := attr(c, "href"); ok {
					node.Target = &href
				}
				anchor = textContent(c)
				text.WriteString(anchor)
			case c.Type == html.TextNode:
				text.WriteString(c.Data)
			case c.Type == html.ElementNode:
				walk(c)
			}
		}
	}
	walk(li)

	node.Label = anchor
	if node.Label == "" {
		node.Label = strings.Join(strings.Fields(text.String()), " ")
	}
	return node
}

// headingOutline nests h1-h6 elements by level; an id attribute becomes the
// target anchor.
func headingOutline(scope *html.Node) []*navtree.NavNode {
	var out outline
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				node := &navtree.NavNode{Label: textContent(n)}
				if id, ok := attr(n, "id"); ok && id != "" {
					anchor := "#" + id
					node.Target = &anchor
				}
				out.add(level, node)
				return
			}
			switch n.Data {
			case "script", "style", "footer", "header":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(scope)
	return out.roots
}

func isList(tag string) bool {
	return tag == "ul" || tag == "ol"
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findList(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && isList(n.Data) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findList(c); found != nil {
			return found
		}
	}
	return nil
}
