package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func findCmd() *cobra.Command {
	var forest string

	cmd := &cobra.Command{
		Use:   "find FILE TARGET",
		Short: "Print the label path to every node linking to TARGET",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadForest(cmd, args[0], forest)
			if err != nil {
				return err
			}

			found := 0
			for path := range f.FindByTarget(args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(path, " > "))
				found++
			}
			if found == 0 {
				return fmt.Errorf("no node in %s links to %q", f.Name, args[1])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&forest, "forest", "", "forest to search (default: first forest)")

	return cmd
}
