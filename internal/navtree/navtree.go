// Package navtree models documentation navigation trees: ordered forests of
// labelled nodes that optionally link to a page and optionally nest children.
//
// Forests are built once by Parse (or by an importer) and are read-only
// afterwards, so a *Forest can be shared between goroutines without locking.
package navtree

// NavNode is one entry of a navigation tree.
type NavNode struct {
	Label    string     `json:"label" yaml:"label"`
	Target   *string    `json:"target,omitempty" yaml:"target,omitempty"`     // nil for grouping nodes
	Ref      *string    `json:"ref,omitempty" yaml:"ref,omitempty"`           // external cross-reference tag, exclusive with Children
	Children []*NavNode `json:"children,omitempty" yaml:"children,omitempty"` // document order
}

// Link returns the node's target and whether it has one.
func (n *NavNode) Link() (string, bool) {
	if n.Target == nil {
		return "", false
	}
	return *n.Target, true
}

// Reference returns the node's cross-reference tag and whether it has one.
// An empty tag is still a tag.
func (n *NavNode) Reference() (string, bool) {
	if n.Ref == nil {
		return "", false
	}
	return *n.Ref, true
}

// Forest is an ordered sequence of independent trees.
type Forest struct {
	Name  string     `json:"name,omitempty" yaml:"name,omitempty"` // assignment identifier, empty for a bare literal
	Roots []*NavNode `json:"roots" yaml:"roots"`
}

// Entry is one row of a flattened forest.
type Entry struct {
	Depth  int     `json:"depth"`
	Label  string  `json:"label"`
	Target *string `json:"target"`
}

// DeclKind distinguishes the statements of an exchange file.
type DeclKind int

const (
	KindForest  DeclKind = iota // var NAVTREE = [ [ "label", "target", null ], ... ];
	KindIndex                   // var NAVTREEINDEX = [ "page.html", ... ];
	KindSetting                 // var SYNCONMSG = '...';
)

func (k DeclKind) String() string {
	switch k {
	case KindForest:
		return "forest"
	case KindIndex:
		return "index"
	case KindSetting:
		return "setting"
	}
	return "unknown"
}

// Decl is a single top-level assignment. Exactly one of Forest, Pages or
// Value is meaningful, according to Kind.
type Decl struct {
	Kind   DeclKind
	Name   string
	Forest *Forest
	Pages  []string
	Value  string
}

// Document is the ordered list of assignments found in one exchange file.
type Document struct {
	Decls []Decl
}

// NewDocument wraps forests in a document, one declaration each.
func NewDocument(forests ...*Forest) *Document {
	doc := &Document{}
	for _, f := range forests {
		doc.Decls = append(doc.Decls, Decl{Kind: KindForest, Name: f.Name, Forest: f})
	}
	return doc
}

// Forests returns the document's forests in declaration order.
func (d *Document) Forests() []*Forest {
	var out []*Forest
	for _, decl := range d.Decls {
		if decl.Kind == KindForest {
			out = append(out, decl.Forest)
		}
	}
	return out
}

// Forest looks up a forest by assignment name.
func (d *Document) Forest(name string) (*Forest, bool) {
	for _, decl := range d.Decls {
		if decl.Kind == KindForest && decl.Name == name {
			return decl.Forest, true
		}
	}
	return nil, false
}

// Setting returns the verbatim value of a string assignment such as SYNCONMSG.
func (d *Document) Setting(name string) (string, bool) {
	for _, decl := range d.Decls {
		if decl.Kind == KindSetting && decl.Name == name {
			return decl.Value, true
		}
	}
	return "", false
}

// Settings returns all string assignments keyed by name.
func (d *Document) Settings() map[string]string {
	out := make(map[string]string)
	for _, decl := range d.Decls {
		if _, dup := out[decl.Name]; decl.Kind == KindSetting && !dup {
			out[decl.Name] = decl.Value
		}
	}
	return out
}

// Index returns the pages of a flat string-list assignment such as NAVTREEINDEX.
func (d *Document) Index(name string) ([]string, bool) {
	for _, decl := range d.Decls {
		if decl.Kind == KindIndex && decl.Name == name {
			return decl.Pages, true
		}
	}
	return nil, false
}
