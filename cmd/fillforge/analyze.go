package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrhq/fillforge/pkg/config"
	"github.com/entrhq/fillforge/pkg/driver/htmlform"
	"github.com/entrhq/fillforge/pkg/field"
	"github.com/entrhq/fillforge/pkg/fingerprint"
)

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var origin string

	cmd := &cobra.Command{
		Use:   "analyze <form.html>",
		Short: "Classify a form's fields without filling anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(*configPath); err != nil {
				return err
			}

			page, err := htmlform.ParseFile(origin, args[0])
			if err != nil {
				return err
			}
			controls, err := page.Controls()
			if err != nil {
				return err
			}

			classifier := field.NewClassifier()
			descs := make([]field.Descriptor, 0, len(controls))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tCONTROL\tIDENTIFIER\tSEMANTIC TYPE")
			for i, c := range controls {
				d := c.Descriptor()
				descs = append(descs, d)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, d.ControlType(), d.Identifier(), classifier.Classify(d))
			}
			w.Flush()

			fp := fingerprint.Compute(origin, descs)
			fmt.Fprintf(cmd.OutOrStdout(), "\nForm fingerprint: %s (%d fields on %s)\n", fp.Hash, fp.FieldCount, fp.Origin)
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "localhost", "origin attributed to the form")
	return cmd
}
