package navtree

import (
	"iter"
	"slices"
)

type frame struct {
	node   *NavNode
	parent []string // labels of the ancestors
}

// walk visits nodes depth-first, pre-order, left to right, using an explicit
// stack. The path handed to visit is shared and must not be retained.
func (f *Forest) walk(visit func(path []string, n *NavNode) bool) {
	stack := make([]frame, 0, len(f.Roots))
	for i := len(f.Roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: f.Roots[i]})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Clip so siblings appending to the same parent never share storage.
		path := append(slices.Clip(top.parent), top.node.Label)
		if !visit(path, top.node) {
			return
		}
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: top.node.Children[i], parent: path})
		}
	}
}

// Walk yields every node with its root-to-node label path, in document order.
func (f *Forest) Walk() iter.Seq2[[]string, *NavNode] {
	return func(yield func([]string, *NavNode) bool) {
		f.walk(func(path []string, n *NavNode) bool {
			return yield(slices.Clone(path), n)
		})
	}
}

// Flatten lists every node with its nesting depth, in document order.
func (f *Forest) Flatten() []Entry {
	out := []Entry{}
	f.walk(func(path []string, n *NavNode) bool {
		out = append(out, Entry{Depth: len(path) - 1, Label: n.Label, Target: n.Target})
		return true
	})
	return out
}

// FindByTarget yields the label path of every node whose target equals
// target. Each range over the result starts a fresh traversal.
func (f *Forest) FindByTarget(target string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		f.walk(func(path []string, n *NavNode) bool {
			if t, ok := n.Link(); ok && t == target {
				return yield(slices.Clone(path))
			}
			return true
		})
	}
}

// Len counts the nodes of the forest.
func (f *Forest) Len() int {
	n := 0
	f.walk(func([]string, *NavNode) bool {
		n++
		return true
	})
	return n
}

// Targets returns every distinct target in first-seen order.
func (f *Forest) Targets() []string {
	seen := make(map[string]bool)
	var out []string
	f.walk(func(_ []string, n *NavNode) bool {
		if t, ok := n.Link(); ok && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
		return true
	})
	return out
}

// Equal reports whether two forests have the same labels, targets, references
// and child order. A null children list and an empty one compare equal.
func Equal(a, b *Forest) bool {
	if a == nil || b == nil {
		return a == b
	}
	return nodesEqual(a.Roots, b.Roots)
}

func nodesEqual(a, b []*NavNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Label != y.Label {
			return false
		}
		xr, xok := x.Reference()
		yr, yok := y.Reference()
		if xok != yok || xr != yr {
			return false
		}
		xt, xok := x.Link()
		yt, yok := y.Link()
		if xok != yok || xt != yt {
			return false
		}
		if !nodesEqual(x.Children, y.Children) {
			return false
		}
	}
	return true
}
