package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrhq/fillforge/pkg/config"
	"github.com/entrhq/fillforge/pkg/dataset"
	"github.com/entrhq/fillforge/pkg/field"
)

func newDatasetsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage the persona catalogue",
	}
	cmd.AddCommand(newDatasetsListCmd(configPath))
	cmd.AddCommand(newDatasetsShowCmd(configPath))
	cmd.AddCommand(newDatasetsAddCmd(configPath))
	cmd.AddCommand(newDatasetsDeleteCmd(configPath))
	return cmd
}

// withStore loads config, opens the persistent persona store, runs fn, then
// flushes and closes.
func withStore(configPath *string, fn func(*dataset.Store, *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		defer log.Close()

		store, cleanup, err := openDatasetStore(cfg, log, "")
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(store, cmd)
	}
}

func newDatasetsListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List personas",
		RunE: withStore(configPath, func(store *dataset.Store, cmd *cobra.Command) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tFIELDS")
			for _, d := range store.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.ID, d.Name, d.Category, len(d.Data))
			}
			return w.Flush()
		}),
	}
}

func newDatasetsShowCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one persona's values",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withStore(configPath, func(store *dataset.Store, c *cobra.Command) error {
			d, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s (%s)\n", d.Name, d.ID)
			keys := make([]string, 0, len(d.Data))
			for k := range d.Data {
				keys = append(keys, string(k))
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(c.OutOrStdout(), "  %-12s %s\n", k, d.Data[field.SemanticType(k)])
			}
			return nil
		})(c, args)
	}
	return cmd
}

func newDatasetsAddCmd(configPath *string) *cobra.Command {
	var (
		id       string
		name     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add [type=value ...]",
		Short: "Add a persona from type=value pairs",
		Long: "Add creates a persona whose values are given as semantic-type pairs,\n" +
			"for example: fillforge datasets add --name Kim email=kim@example.test firstName=Kim",
		Args: cobra.MinimumNArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		data := make(map[field.SemanticType]string, len(args))
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok || key == "" {
				return fmt.Errorf("invalid pair %q: expected type=value", arg)
			}
			data[field.SemanticType(key)] = value
		}

		return withStore(configPath, func(store *dataset.Store, c *cobra.Command) error {
			added, err := store.Add(dataset.Dataset{
				ID:       id,
				Name:     name,
				Category: category,
				Data:     data,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Added persona %s\n", added.ID)
			return nil
		})(c, args)
	}

	cmd.Flags().StringVar(&id, "id", "", "persona id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&category, "category", "", "persona category")
	return cmd
}

func newDatasetsDeleteCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a persona",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withStore(configPath, func(store *dataset.Store, c *cobra.Command) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Deleted persona %s\n", args[0])
			return nil
		})(c, args)
	}
	return cmd
}
