package query

import (
	"sort"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
)

// Facets lists the distinct values a user can filter on.
type Facets struct {
	Providers      []string `json:"providers"`
	Years          []string `json:"years"`
	Tags           []string `json:"tags"`
	ContextBuckets []string `json:"contextBuckets"`
}

// FacetsOf collects the distinct providers, release years and tags in ms.
// Providers and tags are sorted case-insensitively, years newest first.
func FacetsOf(ms []models.Model) Facets {
	providers := make(map[string]bool)
	years := make(map[string]bool)
	tags := make(map[string]bool)

	for _, m := range ms {
		if m.Provider != "" {
			providers[m.Provider] = true
		}
		if m.Released != "" {
			years[m.Released] = true
		}
		for _, t := range m.Tags {
			tags[t] = true
		}
	}

	f := Facets{
		Providers:      keys(providers),
		Years:          keys(years),
		Tags:           keys(tags),
		ContextBuckets: BucketLabels(),
	}
	sortFold(f.Providers)
	sortFold(f.Tags)
	sort.Sort(sort.Reverse(sort.StringSlice(f.Years)))
	return f
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func sortFold(s []string) {
	sort.Slice(s, func(i, j int) bool {
		a, b := strings.ToLower(s[i]), strings.ToLower(s[j])
		if a == b {
			return s[i] < s[j]
		}
		return a < b
	})
}
