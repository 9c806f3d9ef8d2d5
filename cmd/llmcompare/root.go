package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	rootCatalogPath string
	rootPrefsDir    string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmcompare",
		Short: "llmcompare - browse, compare and pick LLMs",
		Long: `llmcompare is a command-line tool for exploring a catalog of large
language models.

It filters and sorts the catalog, suggests alternatives to a model, ranks
models for a task and priority, estimates what a workload would cost, and
serves the same data over a JSON API.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&rootCatalogPath, "catalog", "", "Catalog file to use instead of the built-in one")
	cmd.PersistentFlags().StringVar(&rootPrefsDir, "prefs-dir", "", "Directory for favorites, comparison and scenarios")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newAlternativesCommand())
	cmd.AddCommand(newRecommendCommand())
	cmd.AddCommand(newScenariosCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newCostCommand())
	cmd.AddCommand(newFavoritesCommand())
	cmd.AddCommand(newCatalogCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
