package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	var (
		forest string
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Render a navigation tree in another format",
		Long: `Render a navigation tree as outline, markdown, html, json, yaml or js.

Converting to js without --forest writes every declaration of the source,
including index lists and settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, err := render.ParseFormat(to)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				out, cerr := os.Create(output)
				if cerr != nil {
					return cerr
				}
				defer func() {
					if cerr := out.Close(); err == nil {
						err = cerr
					}
				}()
				w = out
			}

			if format == render.FormatJS && forest == "" {
				_, err = w.Write(navtree.Serialize(doc))
				return err
			}
			f, err := selectForest(doc, forest)
			if err != nil {
				return err
			}
			if err := render.Render(w, f, format); err != nil {
				return fmt.Errorf("render %s: %w", f.Name, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&forest, "forest", "", "forest to convert (default: first forest)")
	cmd.Flags().StringVar(&to, "to", "outline", "output format: outline, markdown, html, json, yaml, js")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
