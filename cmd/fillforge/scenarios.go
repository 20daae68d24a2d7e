package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrhq/fillforge/pkg/dataset"
)

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Inspect the built-in scenario library",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in scenarios",
		RunE: func(c *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDATASETS\tDESCRIPTION")
			for _, sc := range dataset.BuiltinScenarios() {
				fmt.Fprintf(w, "%s\t%d\t%s\n", sc.Name, len(sc.Datasets), sc.Description)
			}
			return w.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a scenario's datasets",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sc, err := dataset.BuiltinScenario(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s: %s\n", sc.Name, sc.Description)
			for _, d := range sc.Datasets {
				fmt.Fprintf(c.OutOrStdout(), "  %s (%s, %d fields)\n", d.ID, d.Name, len(d.Data))
			}
			return nil
		},
	})
	return cmd
}
