// Package importer builds navigation forests from documentation sources:
// generator exchange files, Markdown, HTML, PDF bookmarks, Word headings, and
// YAML or JSON outlines.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
)

// ErrUnsupportedFormat is returned by ForFile for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// Importer converts raw source bytes into a navigation document.
type Importer interface {
	Import(r io.Reader, filename string) (*navtree.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".js":       true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".yaml":     true,
	".yml":      true,
	".json":     true,
}

// ForFile returns the appropriate importer for a filename.
func ForFile(filename string, cfg navtree.ParseConfig) (Importer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".js":
		return &ExchangeImporter{Config: cfg}, nil
	case ".md", ".markdown":
		return &MarkdownImporter{Config: cfg}, nil
	case ".html", ".htm":
		return &HTMLImporter{Config: cfg}, nil
	case ".pdf":
		return &PDFImporter{Config: cfg}, nil
	case ".docx":
		return &DOCXImporter{Config: cfg}, nil
	case ".yaml", ".yml":
		return &YAMLImporter{Config: cfg}, nil
	case ".json":
		return &JSONImporter{Config: cfg}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ForestName derives a script identifier from a filename, so that imported
// forests serialize to valid assignments: "getting-started.md" becomes
// "getting_started".
func ForestName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "navtree"
	}
	return b.String()
}

// validated rejects documents whose forests would not survive a round trip
// through the exchange format under cfg.
func validated(doc *navtree.Document, cfg navtree.ParseConfig) (*navtree.Document, error) {
	if err := navtree.ValidateDocument(doc, cfg); err != nil {
		return nil, err
	}
	return doc, nil
}

// single wraps roots as the only forest of a document.
func single(filename string, roots []*navtree.NavNode) *navtree.Document {
	if roots == nil {
		roots = []*navtree.NavNode{}
	}
	return navtree.NewDocument(&navtree.Forest{Name: ForestName(filename), Roots: roots})
}
