// Package wizard collects recommender inputs interactively.
package wizard

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/llmcompare/internal/models"
	"golang.org/x/term"
)

// RecommendAnswers holds all fields collected during the recommend wizard.
type RecommendAnswers struct {
	Task        models.TaskType
	Priority    models.Priority
	Constraints models.Constraints
	// SaveAs names a scenario to store the answers under; empty skips saving.
	SaveAs string
}

var taskLabels = map[models.TaskType]string{
	models.TaskCreativeWriting: "Creative writing",
	models.TaskCodeGeneration:  "Code generation",
	models.TaskDataAnalysis:    "Data analysis",
	models.TaskChat:            "Chat / assistant",
	models.TaskReasoning:       "Reasoning",
	models.TaskTranslation:     "Translation",
}

var priorityLabels = map[models.Priority]string{
	models.PriorityQuality:  "Best quality",
	models.PriorityCost:     "Lowest cost",
	models.PriorityBalanced: "Balanced",
	models.PrioritySpeed:    "Fastest (smaller models)",
}

// RunRecommendWizard runs an interactive huh form. Fields are pre-filled
// from initial.
func RunRecommendWizard(in io.Reader, out io.Writer, initial RecommendAnswers) (*RecommendAnswers, error) {
	var (
		task       = string(initial.Task)
		priority   = string(initial.Priority)
		budgetRaw  = FormatBudget(initial.Constraints)
		qualityRaw = FormatOptional(initial.Constraints.MinQualityScore)
		contextRaw = FormatOptional(float64(initial.Constraints.MinContextWindow))
		saveAs     = initial.SaveAs
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What will the model do?").
				Options(taskOptions()...).
				Value(&task),
			huh.NewSelect[string]().
				Title("What matters most?").
				Options(priorityOptions()...).
				Value(&priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget").
				Description("Maximum average USD per 1M tokens; leave blank for no limit").
				Placeholder("10").
				Value(&budgetRaw).
				Validate(func(s string) error {
					_, err := ParseBudget(s)
					return err
				}),
			huh.NewInput().
				Title("Minimum MMLU score").
				Description("0-100; leave blank for none").
				Value(&qualityRaw).
				Validate(func(s string) error {
					_, err := ParseQuality(s)
					return err
				}),
			huh.NewInput().
				Title("Minimum context window").
				Description("Tokens, e.g. 128k or 1m; leave blank for none").
				Value(&contextRaw).
				Validate(func(s string) error {
					_, err := ParseTokens(s)
					return err
				}),
			huh.NewInput().
				Title("Save as scenario").
				Description("Optional name to reuse these answers later").
				Value(&saveAs),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return Collect(task, priority, budgetRaw, qualityRaw, contextRaw, saveAs)
}

// Collect converts raw form answers into typed recommender inputs.
func Collect(task, priority, budget, quality, context, saveAs string) (*RecommendAnswers, error) {
	t, err := models.ParseTaskType(task)
	if err != nil {
		return nil, err
	}
	p, err := models.ParsePriority(priority)
	if err != nil {
		return nil, err
	}

	c := models.DefaultConstraints()
	if c.MaxCostPer1M, err = ParseBudget(budget); err != nil {
		return nil, err
	}
	if c.MinQualityScore, err = ParseQuality(quality); err != nil {
		return nil, err
	}
	if c.MinContextWindow, err = ParseTokens(context); err != nil {
		return nil, err
	}

	return &RecommendAnswers{
		Task:        t,
		Priority:    p,
		Constraints: c,
		SaveAs:      strings.TrimSpace(saveAs),
	}, nil
}

func taskOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.TaskTypes))
	for _, t := range models.TaskTypes {
		opts = append(opts, huh.NewOption(taskLabels[t], string(t)))
	}
	return opts
}

func priorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.Priorities))
	for _, p := range models.Priorities {
		opts = append(opts, huh.NewOption(priorityLabels[p], string(p)))
	}
	return opts
}

// ParseBudget parses a USD-per-1M ceiling. Blank means unlimited.
func ParseBudget(s string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return math.Inf(1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("budget must be a non-negative number, got %q", s)
	}
	return v, nil
}

// ParseQuality parses a benchmark floor in [0,100]. Blank means 0.
func ParseQuality(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("score must be between 0 and 100, got %q", s)
	}
	return v, nil
}

// ParseTokens parses a token count with an optional k or m suffix.
// Blank means 0.
func ParseTokens(s string) (int, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if s == "" {
		return 0, nil
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1_000, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1_000_000, strings.TrimSuffix(s, "m")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("token count must be a non-negative number, got %q", s)
	}
	return int(math.Round(v * mult)), nil
}

// FormatBudget is the inverse of ParseBudget.
func FormatBudget(c models.Constraints) string {
	if c.Unbounded() {
		return ""
	}
	return strconv.FormatFloat(c.MaxCostPer1M, 'f', -1, 64)
}

// FormatOptional renders v for a form field, leaving 0 blank.
func FormatOptional(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
