package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/docnav/internal/navtree"
	"gopkg.in/yaml.v3"
)

// outlineFile is the on-disk shape of YAML and JSON outlines. A file holds
// either a single forest ({name, roots}) or several ({forests: [...]}); a bare
// list of nodes is also accepted.
type outlineFile struct {
	Name    string             `json:"name" yaml:"name"`
	Roots   []*navtree.NavNode `json:"roots" yaml:"roots"`
	Forests []*navtree.Forest  `json:"forests" yaml:"forests"`
}

func (f outlineFile) document(filename string) *navtree.Document {
	if len(f.Forests) > 0 {
		var forests []*navtree.Forest
		for _, forest := range f.Forests {
			if forest == nil {
				continue
			}
			if forest.Name == "" {
				forest.Name = ForestName(filename)
			}
			forests = append(forests, forest)
		}
		return navtree.NewDocument(forests...)
	}
	name := f.Name
	if name == "" {
		name = ForestName(filename)
	}
	roots := f.Roots
	if roots == nil {
		roots = []*navtree.NavNode{}
	}
	return navtree.NewDocument(&navtree.Forest{Name: name, Roots: roots})
}

// YAMLImporter handles YAML outlines.
type YAMLImporter struct {
	Config navtree.ParseConfig
}

func (p *YAMLImporter) Import(r io.Reader, filename string) (*navtree.Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return validated(single(filename, nil), p.Config)
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	body := &root
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		body = root.Content[0]
	}

	if body.Kind == yaml.SequenceNode {
		var roots []*navtree.NavNode
		if err := body.Decode(&roots); err != nil {
			return nil, fmt.Errorf("decode yaml outline: %w", err)
		}
		return validated(single(filename, roots), p.Config)
	}

	var f outlineFile
	if err := body.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode yaml outline: %w", err)
	}
	return validated(f.document(filename), p.Config)
}

// JSONImporter handles JSON outlines.
type JSONImporter struct {
	Config navtree.ParseConfig
}

func (p *JSONImporter) Import(r io.Reader, filename string) (*navtree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src = bytes.TrimSpace(src)
	if len(src) == 0 {
		return validated(single(filename, nil), p.Config)
	}

	if src[0] == '[' {
		var roots []*navtree.NavNode
		if err := json.Unmarshal(src, &roots); err != nil {
			return nil, fmt.Errorf("decode json outline: %w", err)
		}
		return validated(single(filename, roots), p.Config)
	}

	var f outlineFile
	if err := json.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("decode json outline: %w", err)
	}
	return validated(f.document(filename), p.Config)
}
