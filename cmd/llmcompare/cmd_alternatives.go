package main

import (
	"fmt"
	"io"

	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/recommend"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spf13/cobra"
)

var (
	alternativesKind   string
	alternativesFormat string
)

func newAlternativesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alternatives <model-id>",
		Short: "Suggest similar, cheaper or stronger models",
		Long: `Suggest alternatives to a model.

  similar  share a tag and have a context window within 20%
  cheaper  share a tag and have a lower input price, closest price first
  better   beat it on MMLU or HumanEval, ranked by the sum of both

Each list holds at most five models and never includes the model itself.`,
		Args: cobra.ExactArgs(1),
		RunE: alternativesCommandE,
	}
	cmd.Flags().StringVar(&alternativesKind, "kind", "all", "Which list: similar, cheaper, better or all")
	cmd.Flags().StringVarP(&alternativesFormat, "format", "f", "", "Output format: table or json")
	return cmd
}

func alternativesCommandE(cmd *cobra.Command, args []string) error {
	kind, err := recommend.ParseAlternativeKind(alternativesKind)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(alternativesFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON); err != nil {
		return err
	}

	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	ref, err := c.Get(args[0])
	if err != nil {
		return err
	}
	alts := recommend.NewEngine().Alternatives(kind, ref, c.Models())

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, webapi.AlternativesResponse{Reference: ref.ID, Kind: kind, Alternatives: alts})
	}

	fmt.Fprintf(out, "Alternatives to %s (%s, avg %s/1M)\n", ref.Name, ref.Provider, formatPrice(ref.AverageCostPer1M())) //nolint:errcheck
	if kind == recommend.KindAll || kind == recommend.KindSimilar {
		printAlternatives(out, "Similar", alts.Similar)
	}
	if kind == recommend.KindAll || kind == recommend.KindCheaper {
		printAlternatives(out, "Cheaper", alts.Cheaper)
	}
	if kind == recommend.KindAll || kind == recommend.KindBetter {
		printAlternatives(out, "Better performance", alts.Better)
	}
	return nil
}

func printAlternatives(w io.Writer, title string, ms []models.Model) {
	section(w, title)
	if len(ms) == 0 {
		fmt.Fprintln(w, "  none") //nolint:errcheck
		return
	}
	t := newTable("ID", "Provider", "Avg/1M", "Context", "MMLU", "HumanEval")
	for _, m := range ms {
		t.add(
			m.ID,
			m.Provider,
			formatPrice(m.AverageCostPer1M()),
			formatTokens(m.ContextWindow),
			formatScore(m.Benchmarks, models.BenchmarkMMLU),
			formatScore(m.Benchmarks, models.BenchmarkHumanEval),
		)
	}
	t.render(w)
}
