package webapi

import (
	"time"

	"github.com/spboyer/llmcompare/internal/cost"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/query"
	"github.com/spboyer/llmcompare/internal/recommend"
)

// ModelView is a catalog model plus the values the UI derives from it.
type ModelView struct {
	models.Model
	AvgCostPer1M   float64 `json:"avgCostPer1M"`
	BooksInContext int     `json:"booksInContext"`
	ContextBucket  string  `json:"contextBucket"`
}

// ModelDetail is the response for a single model.
type ModelDetail struct {
	ModelView
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

// ModelListResponse is the response for the filtered model list.
type ModelListResponse struct {
	Total  int         `json:"total"`
	Count  int         `json:"count"`
	Query  query.Query `json:"query"`
	Models []ModelView `json:"models"`
}

// AlternativesResponse lists alternatives for a reference model.
type AlternativesResponse struct {
	Reference string                    `json:"reference"`
	Kind      recommend.AlternativeKind `json:"kind"`
	recommend.Alternatives
}

// RecommendResponse is the response for a recommendation request.
type RecommendResponse struct {
	Task         models.TaskType              `json:"task"`
	Priority     models.Priority              `json:"priority"`
	Weights      models.RecommendationWeights `json:"weights"`
	MaxCostPer1M *float64                     `json:"maxCostPer1M,omitempty"`
	Results      []models.ScoredModel         `json:"results"`
}

// CostRow is one model's estimate with display strings.
type CostRow struct {
	cost.Estimate
	PerRequestUSD string `json:"perRequestUsd"`
	DailyUSD      string `json:"dailyUsd"`
	PeriodUSD     string `json:"periodUsd"`
}

// CostResponse is the response for a cost comparison.
type CostResponse struct {
	Usage     cost.Usage `json:"usage"`
	Estimates []CostRow  `json:"estimates"`
}

// CompareResponse holds models for side-by-side display, in request order.
type CompareResponse struct {
	Models []ModelView `json:"models"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	Models        int       `json:"models"`
	CatalogSource string    `json:"catalogSource"`
	LoadedAt      time.Time `json:"loadedAt"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ViewOf derives the display values of m.
func ViewOf(m models.Model) ModelView {
	v := ModelView{
		Model:          m,
		AvgCostPer1M:   m.AverageCostPer1M(),
		BooksInContext: m.BooksInContext(),
	}
	if b, ok := query.BucketFor(m.ContextWindow); ok {
		v.ContextBucket = b.Label
	}
	return v
}

// ViewsOf applies ViewOf to each model.
func ViewsOf(ms []models.Model) []ModelView {
	out := make([]ModelView, len(ms))
	for i, m := range ms {
		out[i] = ViewOf(m)
	}
	return out
}

// CostRowsOf attaches rounded display strings to estimates.
func CostRowsOf(estimates []cost.Estimate) []CostRow {
	rows := make([]CostRow, len(estimates))
	for i, e := range estimates {
		rows[i] = CostRow{
			Estimate:      e,
			PerRequestUSD: cost.FormatUSD(e.PerRequest),
			DailyUSD:      cost.FormatUSD(e.Daily),
			PeriodUSD:     cost.FormatUSD(e.Period),
		}
	}
	return rows
}
