// Package query filters and orders catalog entries against a composite,
// user-specified predicate. All functions are pure: they never modify the
// slice they are given and always return a new one.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
)

var (
	// ErrUnknownBucket is returned for a context bucket label that is not canonical.
	ErrUnknownBucket = errors.New("unknown context bucket")
	// ErrUnknownSortKey is returned for an unrecognised sort key.
	ErrUnknownSortKey = errors.New("unknown sort key")
	// ErrUnknownDirection is returned for a sort direction other than asc or desc.
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// Query is a composite filter plus an ordering. Zero-valued fields impose no
// constraint; populated filters are ANDed together.
type Query struct {
	// Text is matched case-insensitively against name, provider,
	// description, tags, best-for entries and key features.
	Text string `json:"search,omitempty"`

	// Providers, Years and ContextBuckets each match if the model is in
	// any of the selected values.
	Providers      []string `json:"providers,omitempty"`
	Years          []string `json:"years,omitempty"`
	ContextBuckets []string `json:"contextBuckets,omitempty"`

	// Capabilities must all be satisfied.
	Capabilities []string `json:"capabilities,omitempty"`

	// Benchmark floors. Models without a score are compared as 0.
	MinMMLU      float64 `json:"minMmlu,omitempty"`
	MinHumanEval float64 `json:"minHumanEval,omitempty"`

	// IDs restricts the result to the given model ids (e.g. favorites).
	// A nil slice means no restriction; an empty non-nil slice matches nothing.
	IDs []string `json:"ids,omitempty"`

	Sort      SortKey   `json:"sort,omitempty"`
	Direction Direction `json:"order,omitempty"`
}

// Validate checks that every option is recognised.
func (q Query) Validate() error {
	for _, label := range q.ContextBuckets {
		if _, err := LookupBucket(label); err != nil {
			return err
		}
	}
	if _, err := ParseSortKey(string(q.Sort)); err != nil {
		return err
	}
	if _, err := ParseDirection(string(q.Direction)); err != nil {
		return err
	}
	return nil
}

// Apply returns the models matching q in the order q requests.
func Apply(catalog []models.Model, q Query) ([]models.Model, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	p, err := compile(q)
	if err != nil {
		return nil, err
	}

	result := make([]models.Model, 0, len(catalog))
	for _, m := range catalog {
		if p.matches(m) {
			result = append(result, m)
		}
	}

	Sort(result, q.Sort, q.Direction)
	return result, nil
}

// predicate is a Query prepared for repeated evaluation.
type predicate struct {
	text         string
	providers    map[string]bool
	years        map[string]bool
	buckets      []ContextBucket
	capabilities []string
	minMMLU      float64
	minHumanEval float64
	ids          map[string]bool
}

func compile(q Query) (*predicate, error) {
	p := &predicate{
		text:         strings.ToLower(strings.TrimSpace(q.Text)),
		capabilities: q.Capabilities,
		minMMLU:      q.MinMMLU,
		minHumanEval: q.MinHumanEval,
	}

	if len(q.Providers) > 0 {
		p.providers = make(map[string]bool, len(q.Providers))
		for _, v := range q.Providers {
			p.providers[strings.ToLower(v)] = true
		}
	}
	if len(q.Years) > 0 {
		p.years = make(map[string]bool, len(q.Years))
		for _, v := range q.Years {
			p.years[v] = true
		}
	}
	for _, label := range q.ContextBuckets {
		b, err := LookupBucket(label)
		if err != nil {
			return nil, fmt.Errorf("compiling query: %w", err)
		}
		p.buckets = append(p.buckets, b)
	}
	if q.IDs != nil {
		p.ids = make(map[string]bool, len(q.IDs))
		for _, id := range q.IDs {
			p.ids[id] = true
		}
	}
	return p, nil
}

func (p *predicate) matches(m models.Model) bool {
	if p.ids != nil && !p.ids[m.ID] {
		return false
	}
	if !MatchesText(m, p.text) {
		return false
	}
	if p.providers != nil && !p.providers[strings.ToLower(m.Provider)] {
		return false
	}
	if p.years != nil && (m.Released == "" || !p.years[m.Released]) {
		return false
	}
	if len(p.buckets) > 0 && !inAnyBucket(m.ContextWindow, p.buckets) {
		return false
	}
	if !m.Capabilities().SatisfiesAll(p.capabilities) {
		return false
	}
	if m.MMLU() < p.minMMLU || m.HumanEval() < p.minHumanEval {
		return false
	}
	return true
}

func inAnyBucket(tokens int, buckets []ContextBucket) bool {
	for _, b := range buckets {
		if b.Contains(tokens) {
			return true
		}
	}
	return false
}

// MatchesText reports whether the lower-cased needle occurs in any of the
// model's searchable fields. An empty needle matches every model.
func MatchesText(m models.Model, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Name), needle) ||
		strings.Contains(strings.ToLower(m.Provider), needle) ||
		strings.Contains(strings.ToLower(m.Description), needle) {
		return true
	}
	return m.Tags.Mentions(needle) || m.BestFor.Mentions(needle) || m.KeyFeatures.Mentions(needle)
}
