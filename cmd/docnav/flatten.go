package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func flattenCmd() *cobra.Command {
	var (
		forest string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "flatten FILE",
		Short: "List every node with its depth, label and target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadForest(cmd, args[0], forest)
			if err != nil {
				return err
			}
			entries := f.Flatten()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			for _, e := range entries {
				target := "-"
				if e.Target != nil {
					target = *e.Target
				}
				fmt.Fprintf(out, "%d\t%s%s\t%s\n", e.Depth, strings.Repeat("  ", e.Depth), e.Label, target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&forest, "forest", "", "forest to flatten (default: first forest)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	return cmd
}
