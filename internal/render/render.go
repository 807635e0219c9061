// Package render writes navigation forests in presentation and interchange
// formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatOutline  Format = "outline"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatJS       Format = "js"
)

// Formats lists every supported format.
var Formats = []Format{FormatOutline, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML, FormatJS}

// ParseFormat resolves a format name, accepting a few common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outline", "text", "txt":
		return FormatOutline, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "js", "javascript", "exchange":
		return FormatJS, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// ContentType is the MIME type served for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatJS:
		return "text/javascript; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Render writes forest to w in the given format.
func Render(w io.Writer, forest *navtree.Forest, format Format) error {
	switch format {
	case FormatOutline:
		return outline(w, forest)
	case FormatMarkdown:
		return markdown(w, forest)
	case FormatHTML:
		return html.Render(w, htmlList(forest.Roots))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(forest)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(forest); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJS:
		_, err := w.Write(forest.Serialize())
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

// outline writes one node per line, indented two spaces per level.
func outline(w io.Writer, forest *navtree.Forest) error {
	for _, e := range forest.Flatten() {
		line := strings.Repeat("  ", e.Depth) + e.Label
		if e.Target != nil {
			line += " -> " + *e.Target
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

func markdown(w io.Writer, forest *navtree.Forest) error {
	for _, e := range forest.Flatten() {
		label := markdownEscaper.Replace(e.Label)
		item := label
		if e.Target != nil {
			item = fmt.Sprintf("[%s](%s)", label, strings.ReplaceAll(*e.Target, " ", "%20"))
		}
		if _, err := fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", e.Depth), item); err != nil {
			return err
		}
	}
	return nil
}

func htmlList(nodes []*navtree.NavNode) *html.Node {
	ul := &html.Node{Type: html.ElementNode, Data: "ul", DataAtom: atom.Ul}
	for _, n := range nodes {
		li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
		label := &html.Node{Type: html.TextNode, Data: n.Label}
		if t, ok := n.Link(); ok {
			a := &html.Node{
				Type:     html.ElementNode,
				Data:     "a",
				DataAtom: atom.A,
				Attr:     []html.Attribute{{Key: "href", Val: t}},
			}
			a.AppendChild(label)
			li.AppendChild(a)
		} else {
			li.AppendChild(label)
		}
		if len(n.Children) > 0 {
			li.AppendChild(htmlList(n.Children))
		}
		ul.AppendChild(li)
	}
	return ul
}
