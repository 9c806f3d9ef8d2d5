package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	catalogFormat string
	catalogOutput string
	catalogGzip   bool
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and export model catalogs",
	}

	validate := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file against the catalog schema",
		Long: `Check a YAML or JSON catalog file.

The file is checked against the catalog JSON Schema, then for duplicate ids
and out-of-range values. Exits with status 1 when the file is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: catalogValidateE,
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as YAML, JSON or CSV",
		Long: `Write the active catalog (the built-in one, or --catalog) to stdout or a file.

YAML and JSON exports can be loaded back with --catalog; CSV is a flat table
for spreadsheets.`,
		Args: cobra.NoArgs,
		RunE: catalogExportE,
	}
	export.Flags().StringVarP(&catalogFormat, "format", "f", "yaml", "Output format: yaml, json or csv")
	export.Flags().StringVarP(&catalogOutput, "output", "o", "", "Write to a file instead of stdout")
	export.Flags().BoolVar(&catalogGzip, "gzip", false, "Compress the output with gzip")

	info := &cobra.Command{
		Use:   "info",
		Short: "Show where the active catalog came from",
		Args:  cobra.NoArgs,
		RunE:  catalogInfoE,
	}

	cmd.AddCommand(validate, export, info)
	return cmd
}

func catalogValidateE(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	format := catalog.FormatOf(path)

	out := cmd.OutOrStdout()
	problems := catalog.Validate(data, format)
	if len(problems) == 0 {
		c, err := catalog.Parse(data, format, catalog.WithSource(path))
		switch {
		case err == nil:
			fmt.Fprintf(out, "✅ %s: %d models, version %s\n", path, c.Len(), firstNonEmpty(c.Version(), "unset")) //nolint:errcheck
			return nil
		case errors.Is(err, catalog.ErrDuplicateID), errors.Is(err, catalog.ErrInvalidModel):
			problems = []string{err.Error()}
		default:
			return err
		}
	}

	fmt.Fprintf(out, "❌ %s\n", path) //nolint:errcheck
	for _, p := range problems {
		fmt.Fprintf(out, "   %s\n", p) //nolint:errcheck
	}
	return &InvalidCatalogError{Path: path, Problems: problems}
}

func catalogExportE(cmd *cobra.Command, _ []string) error {
	format, err := catalog.ParseFormat(catalogFormat)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if catalogOutput != "" {
		f, err := os.Create(catalogOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", catalogOutput, err)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	if catalogGzip {
		zw := gzip.NewWriter(w)
		zw.Name = exportName(format)
		if err := catalog.Export(zw, c.Version(), c.Models(), format); err != nil {
			return err
		}
		return zw.Close()
	}
	return catalog.Export(w, c.Version(), c.Models(), format)
}

// exportName is the file name recorded in the gzip header.
func exportName(format catalog.Format) string {
	if catalogOutput != "" {
		return strings.TrimSuffix(filepath.Base(catalogOutput), ".gz")
	}
	return "models." + string(format)
}

func catalogInfoE(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", padRight("Source:", 10), c.Source())                                 //nolint:errcheck
	fmt.Fprintf(out, "%s %s\n", padRight("Version:", 10), firstNonEmpty(c.Version(), "unset"))       //nolint:errcheck
	fmt.Fprintf(out, "%s %d\n", padRight("Models:", 10), c.Len())                                    //nolint:errcheck
	fmt.Fprintf(out, "%s %s\n", padRight("Loaded:", 10), c.LoadedAt().Format("2006-01-02 15:04:05")) //nolint:errcheck
	return nil
}
