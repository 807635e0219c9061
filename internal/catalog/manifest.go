package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Manifest lists documents to preload.
//
//	documents:
//	  - name: sdk
//	    path: html/navtreedata.js
//	  - path: guide.md
type Manifest struct {
	Documents []ManifestEntry `yaml:"documents"`
}

type ManifestEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ReadManifest parses a manifest file. Relative paths are resolved against
// the manifest's directory and missing names default to the file stem.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	seen := make(map[string]bool, len(m.Documents))
	for i := range m.Documents {
		d := &m.Documents[i]
		if d.Path == "" {
			return nil, fmt.Errorf("manifest %s: document %d has no path", path, i)
		}
		if !filepath.IsAbs(d.Path) {
			d.Path = filepath.Join(dir, d.Path)
		}
		if d.Name == "" {
			base := filepath.Base(d.Path)
			d.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("manifest %s: duplicate document name %q", path, d.Name)
		}
		seen[d.Name] = true
	}
	return &m, nil
}

// LoadManifest imports every document listed in the manifest at path, reading
// up to concurrency files at once. The first failure cancels the remaining
// loads and is returned.
func (c *Catalog) LoadManifest(ctx context.Context, path string, concurrency int, logger *slog.Logger) error {
	m, err := ReadManifest(path)
	if err != nil {
		return err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, d := range m.Documents {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(d.Path)
			if err != nil {
				return fmt.Errorf("open %s: %w", d.Path, err)
			}
			defer f.Close()

			e, err := c.Import(d.Name, filepath.Base(d.Path), f)
			if err != nil {
				return fmt.Errorf("load %q: %w", d.Name, err)
			}
			logger.Info("document loaded",
				"name", e.Name,
				"path", d.Path,
				"forests", len(e.Doc.Forests()),
				"hash", e.ContentHash[:12],
			)
			return nil
		})
	}
	return g.Wait()
}
