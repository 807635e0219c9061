package navtree

import (
	"fmt"

	"github.com/flynn/json5"
)

// DefaultMaxDepth bounds node nesting for untrusted input.
const DefaultMaxDepth = 1000

// ParseConfig controls parsing.
type ParseConfig struct {
	MaxDepth int // Deepest allowed node level; root entries are level 0.
}

// DefaultParseConfig returns the default limits.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{MaxDepth: DefaultMaxDepth}
}

// Parse reads exchange-format text: either a sequence of assignments
//
//	var NAVTREE =
//	[
//	  [ "About", "index.html#about", null ],
//	  [ "Files", null, [ [ "File List", "files.html", "files" ] ] ]
//	];
//	var SYNCONMSG = 'click to disable panel synchronisation';
//
// or a single bare list literal, which yields one unnamed forest.
// The whole input is rejected on the first structural error.
func Parse(raw []byte, cfg ParseConfig) (*Document, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	stmts, err := scanStatements(raw, cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	doc := &Document{Decls: make([]Decl, 0, len(stmts))}
	for _, st := range stmts {
		var v any
		if err := json5.Unmarshal(st.value, &v); err != nil {
			return nil, malformed(pathOrRoot(st.name), "decode literal: %v", err)
		}
		decl, err := buildDecl(st.name, v, cfg.MaxDepth)
		if err != nil {
			return nil, err
		}
		doc.Decls = append(doc.Decls, decl)
	}
	return doc, nil
}

// ParseForest parses raw and returns its first forest.
func ParseForest(raw []byte, cfg ParseConfig) (*Forest, error) {
	doc, err := Parse(raw, cfg)
	if err != nil {
		return nil, err
	}
	forests := doc.Forests()
	if len(forests) == 0 {
		return nil, malformed("", "no forest found")
	}
	return forests[0], nil
}

func buildDecl(name string, v any, maxDepth int) (Decl, error) {
	switch val := v.(type) {
	case string:
		return Decl{Kind: KindSetting, Name: name, Value: val}, nil
	case []any:
		// A bare literal has no name to serialize an index under, so it is
		// always read as a forest.
		if pages, ok := stringList(val); ok && name != "" {
			return Decl{Kind: KindIndex, Name: name, Pages: pages}, nil
		}
		roots, err := buildNodes(val, name, 0, maxDepth)
		if err != nil {
			return Decl{}, err
		}
		return Decl{Kind: KindForest, Name: name, Forest: &Forest{Name: name, Roots: roots}}, nil
	default:
		return Decl{}, malformed(pathOrRoot(name), "expected a list or string, got %s", describe(v))
	}
}

// stringList reports whether items is a non-empty list of plain strings.
func stringList(items []any) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func buildNodes(items []any, path string, depth, maxDepth int) ([]*NavNode, error) {
	if len(items) > 0 && depth > maxDepth {
		return nil, &DepthExceededError{Limit: maxDepth, Path: path}
	}

	nodes := make([]*NavNode, 0, len(items))
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", path, i)

		tuple, ok := item.([]any)
		if !ok || len(tuple) != 3 {
			return nil, malformed(p, "entry is not a [label, target, children] tuple")
		}

		label, ok := tuple[0].(string)
		if !ok {
			return nil, malformed(p, "label must be a string, got %s", describe(tuple[0]))
		}
		node := &NavNode{Label: label}

		switch t := tuple[1].(type) {
		case nil:
		case string:
			node.Target = &t
		default:
			return nil, malformed(p, "target must be a string or null, got %s", describe(t))
		}

		switch c := tuple[2].(type) {
		case nil:
		case string:
			node.Ref = &c
		case []any:
			children, err := buildNodes(c, p+".children", depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			node.Children = children
		default:
			return nil, malformed(p, "children must be a list, null or reference string, got %s", describe(c))
		}

		nodes = append(nodes, node)
	}
	return nodes, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
