package navtree

import "fmt"

// Validate checks a forest built outside Parse against the same rules Parse
// enforces: no missing nodes, nesting within cfg.MaxDepth, and a reference
// tag only on nodes without children. A forest that passes serializes to
// text Parse accepts with the same limits.
func Validate(f *Forest, cfg ParseConfig) error {
	if f == nil {
		return malformed("", "missing forest")
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return validateNodes(f.Roots, f.Name, 0, cfg.MaxDepth)
}

// ValidateDocument validates every forest of doc.
func ValidateDocument(doc *Document, cfg ParseConfig) error {
	for _, decl := range doc.Decls {
		if decl.Kind != KindForest {
			continue
		}
		if decl.Forest == nil {
			return malformed(pathOrRoot(decl.Name), "missing forest")
		}
		if err := Validate(decl.Forest, cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateNodes(nodes []*NavNode, path string, depth, maxDepth int) error {
	if len(nodes) > 0 && depth > maxDepth {
		return &DepthExceededError{Limit: maxDepth, Path: path}
	}
	for i, n := range nodes {
		p := fmt.Sprintf("%s[%d]", path, i)
		if n == nil {
			return malformed(p, "entry is null")
		}
		if n.Ref != nil && n.Children != nil {
			return malformed(p, "node has both children and a reference tag")
		}
		if err := validateNodes(n.Children, p+".children", depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}
