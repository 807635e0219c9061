package importer

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docnav/internal/navtree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFImporter turns a PDF's bookmark outline into a forest. Bookmarks carry
// no page link here, so nodes have labels only.
type PDFImporter struct {
	Config navtree.ParseConfig
}

func (p *PDFImporter) Import(r io.Reader, filename string) (*navtree.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docnav-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	return validated(single(filename, outlineNodes(reader.Outline().Child)), p.Config)
}

func outlineNodes(items []pdflib.Outline) []*navtree.NavNode {
	var nodes []*navtree.NavNode
	for _, it := range items {
		nodes = append(nodes, &navtree.NavNode{
			Label:    it.Title,
			Children: outlineNodes(it.Child),
		})
	}
	return nodes
}
