package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spboyer/llmcompare/internal/recommend"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spboyer/llmcompare/internal/wizard"
	"github.com/spf13/cobra"
)

var (
	recommendTask        string
	recommendPriority    string
	recommendMaxCost     string
	recommendMinQuality  string
	recommendMinContext  string
	recommendLimit       int
	recommendInteractive bool
	recommendSave        string
	recommendScenario    string
	recommendFormat      string
)

func newRecommendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank models for a task and priority",
		Long: `Rank catalog models for a task type and priority.

Models above --max-cost (average USD per 1M tokens), below --min-quality
(MMLU) or below --min-context are excluded. Code generation and creative
writing additionally require a matching "best for" entry. Survivors are
scored on quality, cost and context using weights chosen by --priority.

Inputs can come from a saved scenario (--scenario), flags, or an
interactive form (--interactive); flags override the scenario and the form
starts from both. --save stores the final inputs as a scenario.

Examples:
  llmcompare recommend --task code-generation --priority quality
  llmcompare recommend --task chat --max-cost 1 --min-context 128k
  llmcompare recommend --scenario "support bot" -f json`,
		Args: cobra.NoArgs,
		RunE: recommendCommandE,
	}

	f := cmd.Flags()
	f.StringVarP(&recommendTask, "task", "t", "", "Task type: "+joinTaskTypes())
	f.StringVarP(&recommendPriority, "priority", "p", "", "Priority: quality, cost, balanced or speed")
	f.StringVar(&recommendMaxCost, "max-cost", "", "Maximum average USD per 1M tokens (blank for no limit)")
	f.StringVar(&recommendMinQuality, "min-quality", "", "Minimum MMLU score (0-100)")
	f.StringVar(&recommendMinContext, "min-context", "", "Minimum context window, e.g. 128k or 1m")
	f.IntVarP(&recommendLimit, "limit", "n", 0, "Number of results (1-5)")
	f.BoolVarP(&recommendInteractive, "interactive", "i", false, "Collect inputs with an interactive form")
	f.StringVar(&recommendSave, "save", "", "Save the inputs as a named scenario")
	f.StringVar(&recommendScenario, "scenario", "", "Start from a saved scenario")
	f.StringVarP(&recommendFormat, "format", "f", "", "Output format: table or json")

	return cmd
}

func joinTaskTypes() string {
	parts := make([]string, len(models.TaskTypes))
	for i, t := range models.TaskTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func recommendCommandE(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(recommendFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON); err != nil {
		return err
	}

	limit := recommendLimit
	if !cmd.Flags().Changed("limit") {
		limit = e.cfg.Defaults.Limit
	}
	if limit < 1 || limit > recommend.DefaultLimit {
		return fmt.Errorf("--limit must be between 1 and %d", recommend.DefaultLimit)
	}

	scenarios := prefs.NewScenarios(e.store)
	answers, err := recommendInputs(cmd, e, scenarios)
	if err != nil {
		return err
	}
	if recommendInteractive {
		answers, err = wizard.RunRecommendWizard(cmd.InOrStdin(), cmd.ErrOrStderr(), *answers)
		if err != nil {
			return err
		}
	}

	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	results := recommend.NewEngine().WithLimit(limit).Recommend(c.Models(), answers.Task, answers.Priority, answers.Constraints)

	if answers.SaveAs != "" {
		saved, err := scenarios.Save(prefs.NewScenario(answers.SaveAs, answers.Task, answers.Priority, answers.Constraints))
		if err != nil {
			return fmt.Errorf("saving scenario: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved scenario %q\n", saved.Name) //nolint:errcheck
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		resp := webapi.RecommendResponse{
			Task:     answers.Task,
			Priority: answers.Priority,
			Weights:  recommend.Weights(answers.Priority),
			Results:  results,
		}
		if !answers.Constraints.Unbounded() {
			budget := answers.Constraints.MaxCostPer1M
			resp.MaxCostPer1M = &budget
		}
		return writeJSON(out, resp)
	}

	printRecommendations(out, answers, results)
	return nil
}

// recommendInputs layers config defaults, the named scenario and explicit
// flags, in that order.
func recommendInputs(cmd *cobra.Command, e *env, scenarios *prefs.Scenarios) (*wizard.RecommendAnswers, error) {
	task := e.cfg.Defaults.Task
	priority := e.cfg.Defaults.Priority
	var budget, quality, context string

	if recommendScenario != "" {
		s, err := scenarios.Get(recommendScenario)
		if err != nil {
			return nil, err
		}
		c := s.Constraints()
		task, priority = s.Task, s.Priority
		budget = wizard.FormatBudget(c)
		quality = wizard.FormatOptional(c.MinQualityScore)
		context = wizard.FormatOptional(float64(c.MinContextWindow))
	}

	flags := cmd.Flags()
	if flags.Changed("task") {
		task = recommendTask
	}
	if flags.Changed("priority") {
		priority = recommendPriority
	}
	if flags.Changed("max-cost") {
		budget = recommendMaxCost
	}
	if flags.Changed("min-quality") {
		quality = recommendMinQuality
	}
	if flags.Changed("min-context") {
		context = recommendMinContext
	}
	if task == "" {
		return nil, errors.New("--task is required")
	}

	return wizard.Collect(task, priority, budget, quality, context, recommendSave)
}

func printRecommendations(w io.Writer, a *wizard.RecommendAnswers, results []models.ScoredModel) {
	fmt.Fprintf(w, "Recommendations for %s (priority: %s, budget: %s)\n", a.Task, a.Priority, formatBudget(a.Constraints)) //nolint:errcheck
	if a.Constraints.MinQualityScore > 0 || a.Constraints.MinContextWindow > 0 {
		fmt.Fprintf(w, "Minimum MMLU %s, minimum context %s tokens\n", //nolint:errcheck
			strconv.FormatFloat(a.Constraints.MinQualityScore, 'f', -1, 64), formatTokens(a.Constraints.MinContextWindow))
	}
	fmt.Fprintln(w) //nolint:errcheck

	if len(results) == 0 {
		fmt.Fprintln(w, "No models satisfy these constraints.") //nolint:errcheck
		return
	}

	t := newTable("#", "ID", "Provider", "Score", "Avg/1M", "Quality", "Value", "Context", "Why")
	for _, r := range results {
		t.add(
			strconv.Itoa(r.Rank),
			r.Model.ID,
			r.Model.Provider,
			fmt.Sprintf("%.1f", r.Score),
			formatPrice(r.AvgCost),
			fmt.Sprintf("%.1f", r.QualityScore),
			fmt.Sprintf("%.1f", r.ValueScore),
			formatTokens(r.ContextWindow),
			r.Reason,
		)
	}
	t.render(w)
}
