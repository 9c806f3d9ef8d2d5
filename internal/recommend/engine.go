package recommend

import (
	"math"
	"sort"

	"github.com/spboyer/llmcompare/internal/models"
)

// DefaultLimit is the number of results each lookup returns.
const DefaultLimit = 5

// similarContextTolerance is the fraction of the reference context window a
// candidate may differ by and still count as similar.
const similarContextTolerance = 0.2

// Engine computes alternatives and recommendations over a catalog snapshot.
// It holds no state beyond its limit; every method is a pure function of its
// arguments and never modifies the catalog slice.
type Engine struct {
	limit int
}

// NewEngine creates an engine that returns DefaultLimit results.
func NewEngine() *Engine {
	return &Engine{limit: DefaultLimit}
}

// WithLimit sets the maximum number of results. Non-positive values reset
// it to DefaultLimit.
func (e *Engine) WithLimit(n int) *Engine {
	if n <= 0 {
		n = DefaultLimit
	}
	e.limit = n
	return e
}

// Limit returns the configured result limit.
func (e *Engine) Limit() int {
	return e.limit
}

// Similar returns models that share a tag with reference and whose context
// window is within 20% of it. Matches are returned in catalog order, not
// ranked by closeness, and truncated to the limit.
func (e *Engine) Similar(reference models.Model, catalog []models.Model) []models.Model {
	if len(reference.Tags) == 0 {
		return []models.Model{}
	}

	tolerance := similarContextTolerance * float64(reference.ContextWindow)
	result := make([]models.Model, 0, e.limit)
	for _, m := range catalog {
		if m.ID == reference.ID {
			continue
		}
		if !m.Tags.Overlaps(reference.Tags) {
			continue
		}
		if math.Abs(float64(m.ContextWindow-reference.ContextWindow)) > tolerance {
			continue
		}
		result = append(result, m)
		if len(result) == e.limit {
			break
		}
	}
	return result
}

// Cheaper returns models with a lower input cost than reference that share a
// tag with it, ordered from the closest price downwards.
func (e *Engine) Cheaper(reference models.Model, catalog []models.Model) []models.Model {
	if reference.InputCostPer1M <= 0 {
		return []models.Model{}
	}

	var matches []models.Model
	for _, m := range catalog {
		if m.ID == reference.ID {
			continue
		}
		if m.InputCostPer1M >= reference.InputCostPer1M {
			continue
		}
		if !m.Tags.Overlaps(reference.Tags) {
			continue
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].InputCostPer1M > matches[b].InputCostPer1M
	})
	return e.truncate(matches)
}

// BetterPerformance returns models that beat reference on MMLU or on
// HumanEval, ranked by the sum of both scores.
func (e *Engine) BetterPerformance(reference models.Model, catalog []models.Model) []models.Model {
	baseMMLU := reference.MMLU()
	baseHumanEval := reference.HumanEval()

	var matches []models.Model
	for _, m := range catalog {
		if m.ID == reference.ID {
			continue
		}
		if m.MMLU() > baseMMLU || m.HumanEval() > baseHumanEval {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return performanceSum(matches[a]) > performanceSum(matches[b])
	})
	return e.truncate(matches)
}

func performanceSum(m models.Model) float64 {
	return m.MMLU() + m.HumanEval()
}

func (e *Engine) truncate(ms []models.Model) []models.Model {
	if ms == nil {
		return []models.Model{}
	}
	if len(ms) > e.limit {
		return ms[:e.limit]
	}
	return ms
}
