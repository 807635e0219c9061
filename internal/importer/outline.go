package importer

import "github.com/dgallion1/docnav/internal/navtree"

// outline nests nodes by heading level: each node becomes a child of the
// nearest preceding node with a lower level.
type outline struct {
	roots []*navtree.NavNode
	stack []outlineEntry
}

type outlineEntry struct {
	node  *navtree.NavNode
	level int
}

func (o *outline) add(level int, node *navtree.NavNode) {
	// Pop stack until we find a parent with lower level.
	for len(o.stack) > 0 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	if len(o.stack) == 0 {
		o.roots = append(o.roots, node)
	} else {
		parent := o.stack[len(o.stack)-1].node
		parent.Children = append(parent.Children, node)
	}
	o.stack = append(o.stack, outlineEntry{node: node, level: level})
}

// attach appends nodes under the most recent heading, or as roots before the
// first heading.
func (o *outline) attach(nodes ...*navtree.NavNode) {
	if len(o.stack) == 0 {
		o.roots = append(o.roots, nodes...)
		return
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, nodes...)
}
