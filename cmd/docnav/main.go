// Command docnav inspects, converts and serves documentation navigation trees.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/docnav/internal/importer"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docnav",
		Short: "Documentation navigation tree toolkit",
		Long: `docnav reads the navigation trees documentation generators emit
(var NAVTREE = [ [ "label", "target", children ], ... ];) and outlines from
Markdown, HTML, PDF, Word, YAML and JSON sources. It flattens, searches and
converts them, and serves them over HTTP or MCP.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().Int("max-depth", navtree.DefaultMaxDepth, "maximum nesting depth accepted when parsing")

	cmd.AddCommand(flattenCmd())
	cmd.AddCommand(findCmd())
	cmd.AddCommand(convertCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(mcpCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func parseConfig(cmd *cobra.Command) navtree.ParseConfig {
	depth, _ := cmd.Flags().GetInt("max-depth")
	return navtree.ParseConfig{MaxDepth: depth}
}

// loadDocument imports the file at path with the importer for its extension.
func loadDocument(cmd *cobra.Command, path string) (*navtree.Document, error) {
	imp, err := importer.ForFile(path, parseConfig(cmd))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := imp.Import(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// selectForest picks the named forest, or the first one when name is empty.
func selectForest(doc *navtree.Document, name string) (*navtree.Forest, error) {
	if name != "" {
		f, ok := doc.Forest(name)
		if !ok {
			return nil, fmt.Errorf("no forest named %q", name)
		}
		return f, nil
	}
	forests := doc.Forests()
	if len(forests) == 0 {
		return nil, fmt.Errorf("document has no forests")
	}
	return forests[0], nil
}

func loadForest(cmd *cobra.Command, path, name string) (*navtree.Forest, error) {
	doc, err := loadDocument(cmd, path)
	if err != nil {
		return nil, err
	}
	return selectForest(doc, name)
}
