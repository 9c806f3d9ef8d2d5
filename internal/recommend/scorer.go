package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spboyer/llmcompare/internal/capability"
	"github.com/spboyer/llmcompare/internal/models"
)

const (
	// defaultQuality is assumed when a model has no MMLU score. The filter
	// stage uses 0 for the same missing score; the two defaults differ on
	// purpose and must not be unified.
	defaultQuality = 50.0

	// contextNormalizer and contextCap saturate the context score at 200k tokens.
	contextNormalizer = 100000.0
	contextCap        = 2.0

	// minValueCost keeps the value score finite for free models.
	minValueCost = 0.01
)

// taskLabels lists the best-for fragments that qualify a model for a gated
// task type. Task types without an entry are not gated.
var taskLabels = map[models.TaskType][]string{
	models.TaskCodeGeneration:  {"code", "coding", "programming", "developer", "software"},
	models.TaskCreativeWriting: {"creative", "writing", "content", "storytelling"},
}

// Weights returns the weighting applied for priority. Speed carries a size
// weight on top of cost and quality; balanced weighs the three evenly.
func Weights(priority models.Priority) models.RecommendationWeights {
	switch priority {
	case models.PriorityQuality:
		return models.RecommendationWeights{Quality: 0.6, Cost: 0.2, Context: 0.2}
	case models.PriorityCost:
		return models.RecommendationWeights{Quality: 0.3, Cost: 0.6, Context: 0.1}
	case models.PrioritySpeed:
		return models.RecommendationWeights{Quality: 0.2, Cost: 0.3, Size: 0.5}
	default:
		return models.RecommendationWeights{Quality: 1.0 / 3, Cost: 1.0 / 3, Context: 1.0 / 3}
	}
}

// components holds the 0–100 normalized inputs to the weighted total.
type components struct {
	quality float64
	cost    float64
	context float64
}

// Recommend filters the catalog by constraints and task type, scores the
// survivors for priority, and returns the best ones in descending score
// order. Ties keep catalog order.
func (e *Engine) Recommend(catalog []models.Model, task models.TaskType, priority models.Priority, constraints models.Constraints) []models.ScoredModel {
	results := make([]models.ScoredModel, 0, len(catalog))
	norms := make(map[string]components, len(catalog))

	for _, m := range catalog {
		if !admits(m, task, constraints) {
			continue
		}

		avgCost := m.AverageCostPer1M()
		quality := m.Benchmarks.ScoreOr(models.BenchmarkMMLU, defaultQuality)
		c := normalize(avgCost, quality, m.ContextWindow, constraints.MaxCostPer1M)
		norms[m.ID] = c

		results = append(results, models.ScoredModel{
			Model:         m,
			Score:         weightedTotal(priority, c),
			AvgCost:       avgCost,
			QualityScore:  quality,
			ValueScore:    quality / math.Max(avgCost, minValueCost),
			ContextWindow: m.ContextWindow,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > e.limit {
		results = results[:e.limit]
	}

	for i := range results {
		results[i].Rank = i + 1
		results[i].Reason = buildReason(priority, norms[results[i].Model.ID])
	}
	return results
}

// admits applies the hard filters. Missing MMLU counts as 0 here.
func admits(m models.Model, task models.TaskType, c models.Constraints) bool {
	if m.AverageCostPer1M() > c.MaxCostPer1M {
		return false
	}
	if m.MMLU() < c.MinQualityScore {
		return false
	}
	if m.ContextWindow < c.MinContextWindow {
		return false
	}
	return passesTaskGate(m.BestFor, task)
}

// passesTaskGate excludes a model for a gated task only when its best-for
// list is populated and names none of the task's labels. Untagged models get
// the benefit of the doubt.
func passesTaskGate(bestFor capability.Labels, task models.TaskType) bool {
	labels, gated := taskLabels[task]
	if !gated || bestFor.State() != capability.Populated {
		return true
	}
	return bestFor.MentionsAny(labels...)
}

func normalize(avgCost, quality float64, contextWindow int, maxCost float64) components {
	contextScore := math.Min(float64(contextWindow)/contextNormalizer, contextCap)
	return components{
		quality: quality,
		cost:    costScore(avgCost, maxCost),
		context: contextScore / contextCap * 100,
	}
}

// costScore maps spend against the budget onto 0–100. An infinite budget
// yields 100 through IEEE division; a zero budget only admits free models,
// which also score 100.
func costScore(avgCost, maxCost float64) float64 {
	if maxCost == 0 {
		return 100
	}
	return math.Max(0, 100-(avgCost/maxCost)*100)
}

func weightedTotal(priority models.Priority, c components) float64 {
	w := Weights(priority)
	switch priority {
	case models.PriorityQuality, models.PriorityCost:
		return w.Quality*c.quality + w.Cost*c.cost + w.Context*c.context
	case models.PrioritySpeed:
		size := 100 - 0.5*c.quality
		return w.Size*size + w.Cost*c.cost + w.Quality*c.quality
	default:
		return (c.quality + c.cost + c.context) / 3
	}
}

// buildReason names the component that contributed most to the total.
func buildReason(priority models.Priority, c components) string {
	w := Weights(priority)
	type part struct {
		label string
		value float64
		raw   float64
	}
	parts := []part{
		{"quality", w.Quality * c.quality, c.quality},
		{"cost efficiency", w.Cost * c.cost, c.cost},
		{"context capacity", w.Context * c.context, c.context},
	}
	if priority == models.PrioritySpeed {
		size := 100 - 0.5*c.quality
		parts = append(parts, part{"small footprint", w.Size * size, size})
	}

	best := parts[0]
	for _, p := range parts[1:] {
		if p.value > best.value {
			best = p
		}
	}

	var others []string
	for _, p := range parts {
		if p.label != best.label {
			others = append(others, fmt.Sprintf("%s %.0f", p.label, p.raw))
		}
	}
	return fmt.Sprintf("Strongest on %s (%.0f/100); %s", best.label, best.raw, strings.Join(others, ", "))
}
