package main

import (
	"fmt"
	"strconv"

	"github.com/spboyer/llmcompare/internal/cost"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spf13/cobra"
)

var (
	costInputTokens    int64
	costOutputTokens   int64
	costRequestsPerDay int64
	costDays           int
	costFormat         string
)

func newCostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost [model-id...]",
		Short: "Estimate what a workload costs on each model",
		Long: `Estimate the spend of a workload, cheapest model first.

Without model ids, estimates the saved comparison selection, or the whole
catalog when nothing is selected. Workload defaults come from the cost
section of .llmcompare.yaml.

Examples:
  llmcompare cost gpt-4o gpt-4o-mini --input-tokens 2000 --requests-per-day 5000
  llmcompare cost --days 365 -f json`,
		RunE: costCommandE,
	}

	f := cmd.Flags()
	f.Int64Var(&costInputTokens, "input-tokens", 0, "Input tokens per request")
	f.Int64Var(&costOutputTokens, "output-tokens", 0, "Output tokens per request")
	f.Int64Var(&costRequestsPerDay, "requests-per-day", 0, "Requests per day")
	f.IntVar(&costDays, "days", 0, "Projection period in days")
	f.StringVarP(&costFormat, "format", "f", "", "Output format: table or json")

	return cmd
}

func costCommandE(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(costFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON); err != nil {
		return err
	}

	usage := cost.Usage{
		InputTokens:    e.cfg.Cost.InputTokens,
		OutputTokens:   e.cfg.Cost.OutputTokens,
		RequestsPerDay: e.cfg.Cost.RequestsPerDay,
		Days:           e.cfg.Cost.Days,
	}
	flags := cmd.Flags()
	if flags.Changed("input-tokens") {
		usage.InputTokens = costInputTokens
	}
	if flags.Changed("output-tokens") {
		usage.OutputTokens = costOutputTokens
	}
	if flags.Changed("requests-per-day") {
		usage.RequestsPerDay = costRequestsPerDay
	}
	if flags.Changed("days") {
		usage.Days = costDays
	}
	if err := usage.Validate(); err != nil {
		return err
	}
	usage.Days = usage.PeriodDays()

	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		if ids, err = prefs.NewComparison(e.store).List(); err != nil {
			return err
		}
	}
	selected := c.Models()
	if len(ids) > 0 {
		selected = make([]models.Model, 0, len(ids))
		for _, id := range ids {
			m, err := c.Get(id)
			if err != nil {
				return err
			}
			selected = append(selected, m)
		}
	}

	estimates, err := cost.Compare(selected, usage)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, webapi.CostResponse{Usage: usage, Estimates: webapi.CostRowsOf(estimates)})
	}

	fmt.Fprintf(out, "%s input + %s output tokens per request, %s requests/day, %d days\n\n", //nolint:errcheck
		formatTokens(int(usage.InputTokens)), formatTokens(int(usage.OutputTokens)),
		formatTokens(int(usage.RequestsPerDay)), usage.Days)

	t := newTable("#", "ID", "Provider", "Per request", "Per day", "Per "+strconv.Itoa(usage.Days)+" days")
	for i, est := range estimates {
		t.add(
			strconv.Itoa(i+1),
			est.ModelID,
			est.Provider,
			cost.FormatUSD(est.PerRequest),
			cost.FormatUSD(est.Daily),
			cost.FormatUSD(est.Period),
		)
	}
	t.render(out)
	return nil
}
