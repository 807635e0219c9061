package importer

import (
	"fmt"
	"io"

	"github.com/dgallion1/docnav/internal/navtree"
)

// ExchangeImporter handles generator exchange files (navtreedata.js and
// friends).
type ExchangeImporter struct {
	Config navtree.ParseConfig
}

func (p *ExchangeImporter) Import(r io.Reader, filename string) (*navtree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	doc, err := navtree.Parse(src, p.Config)
	if err != nil {
		return nil, err
	}

	// A bare literal has no assignment name; borrow one from the file.
	for i := range doc.Decls {
		if doc.Decls[i].Kind == navtree.KindForest && doc.Decls[i].Name == "" {
			name := ForestName(filename)
			doc.Decls[i].Name = name
			doc.Decls[i].Forest.Name = name
		}
	}
	return doc, nil
}
