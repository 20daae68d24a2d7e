// Command fillforge fills web forms with realistic test data. It can drive a
// live browser page or run offline against static HTML, and manages the
// persona catalogue and scenario library from the command line.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/entrhq/fillforge/pkg/config"
	"github.com/entrhq/fillforge/pkg/dataset"
	"github.com/entrhq/fillforge/pkg/logging"
	"github.com/entrhq/fillforge/pkg/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "fillforge",
		Short: "Fill web forms with realistic test data",
		Long: "fillforge classifies form fields, selects a coherent test persona per\n" +
			"form, and fills values either instantly or with human-like typing.\n" +
			"Personas rotate per form so repeated fills exercise different data.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.fillforge/config.yaml)")

	root.AddCommand(newFillCmd(&configPath))
	root.AddCommand(newAnalyzeCmd(&configPath))
	root.AddCommand(newDatasetsCmd(&configPath))
	root.AddCommand(newScenariosCmd())
	return root
}

// newLogger opens the session logger, degrading to stderr with a warning.
func newLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New("cli", cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return log
}

// openBlobStore builds the configured persistence backend.
func openBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.Storage == config.StorageSQLite {
		path, err := sqlitePath(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLiteStore(path)
	}
	return storage.NewFileStore(cfg.DataDir)
}

func sqlitePath(cfg *config.Config) (string, error) {
	dir := cfg.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".fillforge", "data")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dir, "fillforge.db"), nil
}

// openDatasetStore returns the persona store for a command run. With a
// scenario the store is memory-only so scenario runs never disturb the
// organic rotation ledger; otherwise it is backed by the configured storage.
// The cleanup function flushes and closes whatever was opened.
func openDatasetStore(cfg *config.Config, log *logging.Logger, scenario string) (*dataset.Store, func(), error) {
	if scenario != "" {
		sc, err := resolveScenario(cfg, scenario)
		if err != nil {
			return nil, nil, err
		}
		return sc.NewStore(), func() {}, nil
	}

	blob, err := openBlobStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := dataset.NewStore(dataset.StoreOptions{Persist: blob, Logger: log})
	cleanup := func() {
		if err := store.Flush(); err != nil {
			log.Warnf("cli: flush dataset store: %v", err)
		}
		blob.Close()
	}
	return store, cleanup, nil
}

// resolveScenario accepts a built-in scenario name, a file in the configured
// scenario directory, or a direct path to a scenario YAML file.
func resolveScenario(cfg *config.Config, name string) (dataset.Scenario, error) {
	if sc, err := dataset.BuiltinScenario(name); err == nil {
		return sc, nil
	}
	if cfg.ScenarioDir != "" {
		path := filepath.Join(cfg.ScenarioDir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			return dataset.LoadScenarioFile(path)
		}
	}
	if _, err := os.Stat(name); err == nil {
		return dataset.LoadScenarioFile(name)
	}
	return dataset.Scenario{}, fmt.Errorf("unknown scenario %q", name)
}
