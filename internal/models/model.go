package models

import (
	"github.com/spboyer/llmcompare/internal/capability"
)

// Well-known benchmark names.
const (
	BenchmarkMMLU      = "mmlu"
	BenchmarkHumanEval = "humanEval"
)

// TokensPerBook approximates how many tokens one book occupies.
const TokensPerBook = 100000

// Benchmarks maps a benchmark name to a score in [0,100].
type Benchmarks map[string]float64

// Score returns the named score and whether it is known.
func (b Benchmarks) Score(name string) (float64, bool) {
	v, ok := b[name]
	return v, ok
}

// ScoreOr returns the named score, or def when the score is unknown.
func (b Benchmarks) ScoreOr(name string, def float64) float64 {
	if v, ok := b[name]; ok {
		return v
	}
	return def
}

// ModelStatus carries lifecycle flags for a catalog entry.
type ModelStatus struct {
	IsNew              bool   `json:"isNew,omitempty" yaml:"isNew,omitempty"`
	PricingUpdated     bool   `json:"pricingUpdated,omitempty" yaml:"pricingUpdated,omitempty"`
	IsDeprecated       bool   `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
	AddedDate          string `json:"addedDate,omitempty" yaml:"addedDate,omitempty"`
	PricingUpdatedDate string `json:"pricingUpdatedDate,omitempty" yaml:"pricingUpdatedDate,omitempty"`
	DeprecationDate    string `json:"deprecationDate,omitempty" yaml:"deprecationDate,omitempty"`
}

// Model is a single LLM offering in the catalog. Values are read-only once
// they enter a catalog snapshot.
type Model struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Provider        string            `json:"provider" yaml:"provider"`
	Description     string            `json:"description,omitempty" yaml:"description,omitempty"`
	ContextWindow   int               `json:"contextWindow" yaml:"contextWindow"`
	InputCostPer1M  float64           `json:"inputCostPer1M" yaml:"inputCostPer1M"`   // USD per 1M tokens
	OutputCostPer1M float64           `json:"outputCostPer1M" yaml:"outputCostPer1M"` // USD per 1M tokens
	Benchmarks      Benchmarks        `json:"benchmarks,omitempty" yaml:"benchmarks,omitempty"`
	Tags            capability.Labels `json:"tags,omitempty" yaml:"tags,omitempty"`
	BestFor         capability.Labels `json:"bestFor,omitempty" yaml:"bestFor,omitempty"`
	KeyFeatures     capability.Labels `json:"keyFeatures,omitempty" yaml:"keyFeatures,omitempty"`
	Released        string            `json:"released,omitempty" yaml:"released,omitempty"`
	Status          *ModelStatus      `json:"status,omitempty" yaml:"status,omitempty"`
}

// AverageCostPer1M returns the mean of input and output cost per 1M tokens.
func (m Model) AverageCostPer1M() float64 {
	return (m.InputCostPer1M + m.OutputCostPer1M) / 2
}

// BooksInContext returns how many whole books fit in the context window.
func (m Model) BooksInContext() int {
	if m.ContextWindow <= 0 {
		return 0
	}
	return m.ContextWindow / TokensPerBook
}

// MMLU returns the MMLU score, or 0 when unknown.
func (m Model) MMLU() float64 {
	return m.Benchmarks.ScoreOr(BenchmarkMMLU, 0)
}

// HumanEval returns the HumanEval score, or 0 when unknown.
func (m Model) HumanEval() float64 {
	return m.Benchmarks.ScoreOr(BenchmarkHumanEval, 0)
}

// Capabilities returns the label sets used for capability matching.
func (m Model) Capabilities() capability.Profile {
	return capability.Profile{
		Tags:        m.Tags,
		BestFor:     m.BestFor,
		KeyFeatures: m.KeyFeatures,
	}
}

// IsDeprecated reports whether the status marks the model deprecated.
func (m Model) IsDeprecated() bool {
	return m.Status != nil && m.Status.IsDeprecated
}
