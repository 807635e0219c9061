package navtree

import (
	"bytes"
	"fmt"
	"strings"
)

// Entries are indented the way documentation generators write them: four
// spaces for roots, two more per nesting level.
const (
	baseIndent  = 4
	levelIndent = 2
)

// Serialize writes a document back to exchange format, declarations in order.
func Serialize(doc *Document) []byte {
	var buf bytes.Buffer
	for i, decl := range doc.Decls {
		if i > 0 {
			buf.WriteByte('\n')
		}
		switch decl.Kind {
		case KindForest:
			var roots []*NavNode
			if decl.Forest != nil {
				roots = decl.Forest.Roots
			}
			writeForest(&buf, decl.Name, roots)
		case KindIndex:
			writeIndex(&buf, decl.Name, decl.Pages)
		case KindSetting:
			fmt.Fprintf(&buf, "var %s = %s;\n", decl.Name, quote(decl.Value, '\''))
		}
	}
	return buf.Bytes()
}

// Serialize writes the forest as a single assignment, or as a bare literal
// when it has no name.
func (f *Forest) Serialize() []byte {
	var buf bytes.Buffer
	writeForest(&buf, f.Name, f.Roots)
	return buf.Bytes()
}

func writeForest(buf *bytes.Buffer, name string, roots []*NavNode) {
	if name != "" {
		fmt.Fprintf(buf, "var %s =\n", name)
	}
	buf.WriteString("[\n")
	writeNodes(buf, roots, baseIndent)
	buf.WriteByte(']')
	if name != "" {
		buf.WriteByte(';')
	}
	buf.WriteByte('\n')
}

func writeNodes(buf *bytes.Buffer, nodes []*NavNode, indent int) {
	pad := strings.Repeat(" ", indent)
	for i, n := range nodes {
		buf.WriteString(pad)
		buf.WriteString("[ ")
		buf.WriteString(quote(n.Label, '"'))
		buf.WriteString(", ")
		if target, ok := n.Link(); ok {
			buf.WriteString(quote(target, '"'))
		} else {
			buf.WriteString("null")
		}
		buf.WriteString(", ")

		switch {
		case n.Children == nil && n.Ref != nil:
			buf.WriteString(quote(*n.Ref, '"'))
			buf.WriteString(" ]")
		case n.Children == nil:
			buf.WriteString("null ]")
		case len(n.Children) == 0:
			buf.WriteString("[] ]")
		default:
			buf.WriteString("[\n")
			writeNodes(buf, n.Children, indent+levelIndent)
			buf.WriteString(pad)
			buf.WriteString("] ]")
		}

		if i < len(nodes)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
}

func writeIndex(buf *bytes.Buffer, name string, pages []string) {
	fmt.Fprintf(buf, "var %s =\n[\n", name)
	for i, p := range pages {
		buf.WriteString(quote(p, '"'))
		if i < len(pages)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("];\n")
}

// quote renders s as a script string literal delimited by q.
func quote(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x2028 || r == 0x2029:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
