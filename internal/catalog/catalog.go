// Package catalog keeps the navigation documents a process has loaded,
// keyed by name.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docnav/internal/importer"
	"github.com/dgallion1/docnav/internal/navtree"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrForestNotFound   = errors.New("forest not found")

	// ErrInvalidDocument wraps every failure to convert a readable source.
	ErrInvalidDocument = errors.New("invalid document")
)

// Entry is a loaded document plus its provenance.
type Entry struct {
	Name        string
	Filename    string
	ContentHash string
	LoadedAt    time.Time
	Doc         *navtree.Document
}

// ForestSummary describes one forest of a document.
type ForestSummary struct {
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
}

// Summary is a read-only, JSON-safe view of an entry.
type Summary struct {
	Name        string          `json:"name"`
	Filename    string          `json:"filename"`
	ContentHash string          `json:"content_hash"`
	LoadedAt    time.Time       `json:"loaded_at"`
	Forests     []ForestSummary `json:"forests"`
	Settings    int             `json:"settings"`
}

// Summary returns the JSON-safe view of e.
func (e *Entry) Summary() Summary {
	forests := e.Doc.Forests()
	fs := make([]ForestSummary, 0, len(forests))
	for _, f := range forests {
		fs = append(fs, ForestSummary{Name: f.Name, Nodes: f.Len()})
	}
	return Summary{
		Name:        e.Name,
		Filename:    e.Filename,
		ContentHash: e.ContentHash,
		LoadedAt:    e.LoadedAt,
		Forests:     fs,
		Settings:    len(e.Doc.Settings()),
	}
}

// Catalog is a thread-safe in-memory document registry.
type Catalog struct {
	mu    sync.RWMutex
	docs  map[string]*Entry
	cfg   navtree.ParseConfig
	stats *LoadStats
}

// New returns an empty catalog. stats may be nil.
func New(cfg navtree.ParseConfig, stats *LoadStats) *Catalog {
	if stats == nil {
		stats = NewLoadStats(time.Hour)
	}
	return &Catalog{
		docs:  make(map[string]*Entry),
		cfg:   cfg,
		stats: stats,
	}
}

// Stats returns the catalog's load latency tracker.
func (c *Catalog) Stats() *LoadStats { return c.stats }

// Import reads r, converts it with the importer for filename and stores the
// result under name, replacing any previous entry.
func (c *Catalog) Import(name, filename string, r io.Reader) (*Entry, error) {
	imp, err := importer.ForFile(filename, c.cfg)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	start := time.Now()
	doc, err := imp.Import(bytes.NewReader(data), filename)
	c.stats.Record(time.Since(start), int64(len(data)), err != nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, filename, err)
	}

	e := &Entry{
		Name:        name,
		Filename:    filename,
		ContentHash: ContentHashHex(data),
		LoadedAt:    time.Now(),
		Doc:         doc,
	}
	c.Put(e)
	return e, nil
}

func (c *Catalog) Put(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[e.Name] = e
}

func (c *Catalog) Get(name string) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDocumentNotFound, name)
	}
	return e, nil
}

// Delete removes a document, reporting whether it was present.
func (c *Catalog) Delete(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.docs[name]
	delete(c.docs, name)
	return ok
}

// List returns summaries of every document, sorted by name.
func (c *Catalog) List() []Summary {
	c.mu.RLock()
	entries := make([]*Entry, 0, len(c.docs))
	for _, e := range c.docs {
		entries = append(entries, e)
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Summary())
	}
	return out
}

// Forest looks up a forest by document and forest name. An empty forest name
// selects the document's first forest.
func (c *Catalog) Forest(doc, forest string) (*navtree.Forest, error) {
	e, err := c.Get(doc)
	if err != nil {
		return nil, err
	}
	if forest == "" {
		if fs := e.Doc.Forests(); len(fs) > 0 {
			return fs[0], nil
		}
		return nil, fmt.Errorf("%w: document %q has no forests", ErrForestNotFound, doc)
	}
	f, ok := e.Doc.Forest(forest)
	if !ok {
		return nil, fmt.Errorf("%w: %q in document %q", ErrForestNotFound, forest, doc)
	}
	return f, nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
