package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
)

// SortKey names the column a result is ordered by.
type SortKey string

const (
	SortNone           SortKey = ""
	SortName           SortKey = "name"
	SortProvider       SortKey = "provider"
	SortContextWindow  SortKey = "contextWindow"
	SortBooksInContext SortKey = "booksInContext"
	SortInputCost      SortKey = "inputCost"
	SortOutputCost     SortKey = "outputCost"
	SortQuality        SortKey = "quality"
)

// SortKeys lists every recognised sort key.
var SortKeys = []SortKey{
	SortName, SortProvider, SortContextWindow, SortBooksInContext,
	SortInputCost, SortOutputCost, SortQuality,
}

// ParseSortKey validates s as a sort key. Matching is case-insensitive; an
// empty string keeps catalog order.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNone, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection validates s as a direction. Empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Sort orders ms in place by key and direction. The sort is stable, so
// models with equal keys keep their relative catalog order in both
// directions. Unrecognised keys leave ms untouched.
func Sort(ms []models.Model, key SortKey, dir Direction) {
	k, err := ParseSortKey(string(key))
	if err != nil || k == SortNone {
		return
	}
	d, err := ParseDirection(string(dir))
	if err != nil {
		d = Ascending
	}

	cmp := comparator(k)
	sort.SliceStable(ms, func(a, b int) bool {
		if d == Descending {
			return cmp(ms[b], ms[a]) < 0
		}
		return cmp(ms[a], ms[b]) < 0
	})
}

// Sorted returns a sorted copy of ms.
func Sorted(ms []models.Model, key SortKey, dir Direction) []models.Model {
	out := make([]models.Model, len(ms))
	copy(out, ms)
	Sort(out, key, dir)
	return out
}

func comparator(key SortKey) func(a, b models.Model) int {
	switch key {
	case SortName:
		return func(a, b models.Model) int { return compareFold(a.Name, b.Name) }
	case SortProvider:
		return func(a, b models.Model) int { return compareFold(a.Provider, b.Provider) }
	case SortContextWindow:
		return func(a, b models.Model) int { return compareNum(a.ContextWindow, b.ContextWindow) }
	case SortBooksInContext:
		return func(a, b models.Model) int { return compareNum(a.BooksInContext(), b.BooksInContext()) }
	case SortInputCost:
		return func(a, b models.Model) int { return compareNum(a.InputCostPer1M, b.InputCostPer1M) }
	case SortOutputCost:
		return func(a, b models.Model) int { return compareNum(a.OutputCostPer1M, b.OutputCostPer1M) }
	case SortQuality:
		return func(a, b models.Model) int { return compareNum(a.MMLU(), b.MMLU()) }
	default:
		return func(models.Model, models.Model) int { return 0 }
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareNum[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
