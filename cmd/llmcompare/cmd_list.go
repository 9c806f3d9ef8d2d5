package main

import (
	"fmt"
	"strings"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spboyer/llmcompare/internal/query"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spf13/cobra"
)

var (
	listSearch        string
	listProviders     []string
	listYears         []string
	listContexts      []string
	listCapabilities  []string
	listMinMMLU       float64
	listMinHumanEval  float64
	listSort          string
	listOrder         string
	listFavoritesOnly bool
	listFormat        string
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and filter catalog models",
		Long: `List the models in the catalog.

Filters combine with AND. Within --provider, --year and --context any listed
value matches; every --capability must be satisfied. Models without a
benchmark score are treated as scoring 0 against --min-mmlu and
--min-humaneval.

Examples:
  llmcompare list --provider OpenAI --provider Anthropic
  llmcompare list --context 1M+ --sort inputCost
  llmcompare list --capability vision --capability coding -f json`,
		Args: cobra.NoArgs,
		RunE: listCommandE,
	}

	f := cmd.Flags()
	f.StringVarP(&listSearch, "search", "s", "", "Case-insensitive text search")
	f.StringSliceVar(&listProviders, "provider", nil, "Only these providers (repeatable)")
	f.StringSliceVar(&listYears, "year", nil, "Only models released in these years (repeatable)")
	f.StringSliceVar(&listContexts, "context", nil, "Context buckets: "+strings.Join(query.BucketLabels(), ", "))
	f.StringSliceVar(&listCapabilities, "capability", nil, "Required capabilities (repeatable)")
	f.Float64Var(&listMinMMLU, "min-mmlu", 0, "Minimum MMLU score")
	f.Float64Var(&listMinHumanEval, "min-humaneval", 0, "Minimum HumanEval score")
	f.StringVar(&listSort, "sort", "", "Sort key: "+joinSortKeys())
	f.StringVar(&listOrder, "order", "", "Sort order: asc or desc")
	f.BoolVar(&listFavoritesOnly, "favorites", false, "Only favorite models")
	f.StringVarP(&listFormat, "format", "f", "", "Output format: table, json or csv")

	return cmd
}

func joinSortKeys() string {
	parts := make([]string, len(query.SortKeys))
	for i, k := range query.SortKeys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

func listCommandE(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(listFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON, formatCSV); err != nil {
		return err
	}

	q := query.Query{
		Text:           listSearch,
		Providers:      listProviders,
		Years:          listYears,
		ContextBuckets: listContexts,
		Capabilities:   listCapabilities,
		MinMMLU:        listMinMMLU,
		MinHumanEval:   listMinHumanEval,
		Sort:           query.SortKey(firstNonEmpty(listSort, e.cfg.Defaults.Sort)),
		Direction:      query.Direction(firstNonEmpty(listOrder, e.cfg.Defaults.Order)),
	}
	if k, err := query.ParseSortKey(string(q.Sort)); err == nil {
		q.Sort = k
	}

	favorites := prefs.NewFavorites(e.store)
	favIDs, err := favorites.List()
	if err != nil {
		return err
	}
	if listFavoritesOnly {
		q.IDs = favIDs
		if q.IDs == nil {
			q.IDs = []string{}
		}
	}

	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	result, err := query.Apply(c.Models(), q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return writeJSON(out, webapi.ModelListResponse{
			Total:  c.Len(),
			Count:  len(result),
			Query:  q,
			Models: webapi.ViewsOf(result),
		})
	case formatCSV:
		return catalog.Export(out, c.Version(), result, catalog.FormatCSV)
	}

	if len(result) == 0 {
		fmt.Fprintf(out, "No models match (catalog has %d).\n", c.Len()) //nolint:errcheck
		return nil
	}
	printModelTable(cmd, result, toSet(favIDs))
	fmt.Fprintf(out, "\n%d of %d models\n", len(result), c.Len()) //nolint:errcheck
	return nil
}

func printModelTable(cmd *cobra.Command, ms []models.Model, favorites map[string]bool) {
	t := newTable("", "ID", "Provider", "Context", "Books", "In/1M", "Out/1M", "MMLU", "HumanEval", "Name")
	for _, m := range ms {
		mark := ""
		if favorites[m.ID] {
			mark = "★"
		}
		t.add(
			mark,
			m.ID,
			m.Provider,
			formatTokens(m.ContextWindow),
			fmt.Sprintf("%d", m.BooksInContext()),
			formatPrice(m.InputCostPer1M),
			formatPrice(m.OutputCostPer1M),
			formatScore(m.Benchmarks, models.BenchmarkMMLU),
			formatScore(m.Benchmarks, models.BenchmarkHumanEval),
			m.Name+statusBadge(m),
		)
	}
	t.render(cmd.OutOrStdout())
}

// statusBadge flags new, repriced and deprecated models.
func statusBadge(m models.Model) string {
	switch {
	case m.IsDeprecated():
		return " (deprecated)"
	case m.Status != nil && m.Status.IsNew:
		return " (new)"
	case m.Status != nil && m.Status.PricingUpdated:
		return " (price change)"
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
