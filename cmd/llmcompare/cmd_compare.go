package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spf13/cobra"
)

var (
	compareAdd    []string
	compareRemove []string
	compareClear  bool
	compareFormat string
)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [model-id...]",
		Short: "Compare up to four models side by side",
		Long: fmt.Sprintf(`Compare models side by side.

With model ids, compares those models. Without, compares the saved
selection, which --add, --remove and --clear edit. At most %d models can be
compared at once.

Examples:
  llmcompare compare gpt-4o claude-3-5-sonnet
  llmcompare compare --add gemini-1.5-pro --add llama-3.1-405b
  llmcompare compare --clear`, prefs.MaxCompared),
		RunE: compareCommandE,
	}

	cmd.Flags().StringSliceVar(&compareAdd, "add", nil, "Add models to the saved selection")
	cmd.Flags().StringSliceVar(&compareRemove, "remove", nil, "Remove models from the saved selection")
	cmd.Flags().BoolVar(&compareClear, "clear", false, "Empty the saved selection")
	cmd.Flags().StringVarP(&compareFormat, "format", "f", "", "Output format: table or json")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	editing := compareClear || len(compareAdd) > 0 || len(compareRemove) > 0
	if editing && len(args) > 0 {
		return fmt.Errorf("model ids cannot be combined with --add, --remove or --clear")
	}
	if len(args) > prefs.MaxCompared {
		return fmt.Errorf("%w: %d models given", prefs.ErrComparisonFull, len(args))
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(compareFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON); err != nil {
		return err
	}
	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		selection := prefs.NewComparison(e.store)
		if err := editSelection(selection, c); err != nil {
			return err
		}
		if ids, err = selection.List(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		if format == formatJSON {
			return writeJSON(out, webapi.CompareResponse{Models: []webapi.ModelView{}})
		}
		fmt.Fprintln(out, "No models selected. Add some with: llmcompare compare --add <model-id>") //nolint:errcheck
		return nil
	}

	ms := make([]models.Model, 0, len(ids))
	for _, id := range ids {
		m, err := c.Get(id)
		if err != nil {
			return err
		}
		ms = append(ms, m)
	}

	if format == formatJSON {
		return writeJSON(out, webapi.CompareResponse{Models: webapi.ViewsOf(ms)})
	}
	printComparison(out, ms)
	return nil
}

// editSelection applies --clear, --remove and --add in that order. Added ids
// must exist in the catalog.
func editSelection(selection *prefs.Comparison, c *catalog.Catalog) error {
	if compareClear {
		if err := selection.Clear(); err != nil {
			return err
		}
	}
	for _, id := range compareRemove {
		if err := selection.Remove(id); err != nil {
			return err
		}
	}
	for _, id := range compareAdd {
		if !c.Has(id) {
			return fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
		}
		if err := selection.Add(id); err != nil {
			return err
		}
	}
	return nil
}

// printComparison renders one column per model. The best value in each
// numeric row is marked with ✓.
func printComparison(w io.Writer, ms []models.Model) {
	headers := append([]string{""}, idsOf(ms)...)
	t := newTable(headers...)

	row := func(label string, cells func(m models.Model) string) {
		r := []string{label}
		for _, m := range ms {
			r = append(r, cells(m))
		}
		t.add(r...)
	}
	best := func(label string, value func(m models.Model) float64, higher bool, render func(m models.Model) string) {
		idx := bestIndex(ms, value, higher)
		r := []string{label}
		for i, m := range ms {
			cell := render(m)
			if i == idx {
				cell += " ✓"
			}
			r = append(r, cell)
		}
		t.add(r...)
	}

	row("Name", func(m models.Model) string { return m.Name })
	row("Provider", func(m models.Model) string { return m.Provider })
	row("Released", func(m models.Model) string { return firstNonEmpty(m.Released, "unknown") })
	best("Context", func(m models.Model) float64 { return float64(m.ContextWindow) }, true,
		func(m models.Model) string { return formatTokens(m.ContextWindow) })
	row("Books", func(m models.Model) string { return fmt.Sprintf("%d", m.BooksInContext()) })
	best("Input/1M", func(m models.Model) float64 { return m.InputCostPer1M }, false,
		func(m models.Model) string { return formatPrice(m.InputCostPer1M) })
	best("Output/1M", func(m models.Model) float64 { return m.OutputCostPer1M }, false,
		func(m models.Model) string { return formatPrice(m.OutputCostPer1M) })
	best("Average/1M", func(m models.Model) float64 { return m.AverageCostPer1M() }, false,
		func(m models.Model) string { return formatPrice(m.AverageCostPer1M()) })
	best("MMLU", func(m models.Model) float64 { return m.MMLU() }, true,
		func(m models.Model) string { return formatScore(m.Benchmarks, models.BenchmarkMMLU) })
	best("HumanEval", func(m models.Model) float64 { return m.HumanEval() }, true,
		func(m models.Model) string { return formatScore(m.Benchmarks, models.BenchmarkHumanEval) })
	row("Tags", func(m models.Model) string { return strings.Join(m.Tags, ", ") })

	t.render(w)
}

// bestIndex returns the index of the strictly best value, or -1 when fewer
// than two models are compared or the best is tied.
func bestIndex(ms []models.Model, value func(models.Model) float64, higher bool) int {
	if len(ms) < 2 {
		return -1
	}
	idx, tied := 0, false
	for i := 1; i < len(ms); i++ {
		a, b := value(ms[i]), value(ms[idx])
		switch {
		case a == b:
			tied = true
		case (higher && a > b) || (!higher && a < b):
			idx, tied = i, false
		}
	}
	if tied {
		return -1
	}
	return idx
}

func idsOf(ms []models.Model) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}
