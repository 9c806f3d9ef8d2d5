package recommend

import (
	"fmt"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
)

// AlternativeKind selects which alternative lists to compute.
type AlternativeKind string

const (
	KindSimilar AlternativeKind = "similar"
	KindCheaper AlternativeKind = "cheaper"
	KindBetter  AlternativeKind = "better"
	KindAll     AlternativeKind = "all"
)

// ParseAlternativeKind validates s. Empty means all.
func ParseAlternativeKind(s string) (AlternativeKind, error) {
	switch k := AlternativeKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAll, nil
	case KindSimilar, KindCheaper, KindBetter, KindAll:
		return k, nil
	default:
		return "", fmt.Errorf("unknown alternative kind %q: must be one of similar, cheaper, better, all", s)
	}
}

// Alternatives groups the lists returned for one reference model. Lists
// that were not requested are nil.
type Alternatives struct {
	Similar []models.Model `json:"similar,omitempty"`
	Cheaper []models.Model `json:"cheaper,omitempty"`
	Better  []models.Model `json:"better,omitempty"`
}

// Alternatives runs the finders selected by kind.
func (e *Engine) Alternatives(kind AlternativeKind, reference models.Model, catalog []models.Model) Alternatives {
	var a Alternatives
	if kind == KindAll || kind == KindSimilar {
		a.Similar = e.Similar(reference, catalog)
	}
	if kind == KindAll || kind == KindCheaper {
		a.Cheaper = e.Cheaper(reference, catalog)
	}
	if kind == KindAll || kind == KindBetter {
		a.Better = e.BetterPerformance(reference, catalog)
	}
	return a
}
