package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spboyer/llmcompare/internal/query"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spf13/cobra"
)

var showFormat string

func newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <model-id>",
		Short: "Show everything the catalog knows about a model",
		Args:  cobra.ExactArgs(1),
		RunE:  showCommandE,
	}
	cmd.Flags().StringVarP(&showFormat, "format", "f", "", "Output format: table or json")
	return cmd
}

func showCommandE(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(showFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON); err != nil {
		return err
	}

	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	m, err := c.Get(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, webapi.ModelDetail{ModelView: webapi.ViewOf(m)})
	}

	fav, err := prefs.NewFavorites(e.store).Contains(m.ID)
	if err != nil {
		return err
	}
	printModelDetail(out, m, fav)
	return nil
}

func printModelDetail(w io.Writer, m models.Model, favorite bool) {
	title := m.Name + statusBadge(m)
	if favorite {
		title = "★ " + title
	}
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("═", 60)) //nolint:errcheck
	if m.Description != "" {
		fmt.Fprintf(w, "%s\n", m.Description) //nolint:errcheck
	}

	bucket := ""
	if b, ok := query.BucketFor(m.ContextWindow); ok {
		bucket = " (" + b.Label + ")"
	}
	released := m.Released
	if released == "" {
		released = "unknown"
	}

	section(w, "Overview")
	fmt.Fprintf(w, "  %s %s\n", padRight("ID:", 16), m.ID)                                                //nolint:errcheck
	fmt.Fprintf(w, "  %s %s\n", padRight("Provider:", 16), m.Provider)                                    //nolint:errcheck
	fmt.Fprintf(w, "  %s %s\n", padRight("Released:", 16), released)                                      //nolint:errcheck
	fmt.Fprintf(w, "  %s %s tokens%s\n", padRight("Context:", 16), formatTokens(m.ContextWindow), bucket) //nolint:errcheck
	fmt.Fprintf(w, "  %s ~%d\n", padRight("Books:", 16), m.BooksInContext())                              //nolint:errcheck

	section(w, "Pricing (per 1M tokens)")
	fmt.Fprintf(w, "  %s %s\n", padRight("Input:", 16), formatPrice(m.InputCostPer1M))       //nolint:errcheck
	fmt.Fprintf(w, "  %s %s\n", padRight("Output:", 16), formatPrice(m.OutputCostPer1M))     //nolint:errcheck
	fmt.Fprintf(w, "  %s %s\n", padRight("Average:", 16), formatPrice(m.AverageCostPer1M())) //nolint:errcheck

	section(w, "Benchmarks")
	fmt.Fprintf(w, "  %s %s\n", padRight("MMLU:", 16), formatScore(m.Benchmarks, models.BenchmarkMMLU))           //nolint:errcheck
	fmt.Fprintf(w, "  %s %s\n", padRight("HumanEval:", 16), formatScore(m.Benchmarks, models.BenchmarkHumanEval)) //nolint:errcheck

	printLabels(w, "Tags", m.Tags)
	printLabels(w, "Best for", m.BestFor)
	printLabels(w, "Key features", m.KeyFeatures)

	if s := m.Status; s != nil {
		section(w, "Status")
		if s.IsNew {
			fmt.Fprintf(w, "  New%s\n", since(s.AddedDate)) //nolint:errcheck
		}
		if s.PricingUpdated {
			fmt.Fprintf(w, "  Pricing updated%s\n", since(s.PricingUpdatedDate)) //nolint:errcheck
		}
		if s.IsDeprecated {
			fmt.Fprintf(w, "  Deprecated%s\n", since(s.DeprecationDate)) //nolint:errcheck
		}
	}
}

func printLabels(w io.Writer, title string, labels []string) {
	if len(labels) == 0 {
		return
	}
	section(w, title)
	for _, l := range labels {
		fmt.Fprintf(w, "  • %s\n", l) //nolint:errcheck
	}
}

func since(date string) string {
	if date == "" {
		return ""
	}
	return " (" + date + ")"
}
