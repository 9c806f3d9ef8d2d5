// Package cost projects what a workload would spend on each model.
package cost

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spboyer/llmcompare/internal/models"
)

// DefaultDays is the projection period used when Usage.Days is zero.
const DefaultDays = 30

// ErrInvalidUsage is returned for negative usage figures.
var ErrInvalidUsage = errors.New("invalid usage")

var perMillion = decimal.NewFromInt(1_000_000)

// Usage describes a workload: tokens per request and request volume.
type Usage struct {
	InputTokens    int64 `json:"inputTokens" yaml:"inputTokens"`
	OutputTokens   int64 `json:"outputTokens" yaml:"outputTokens"`
	RequestsPerDay int64 `json:"requestsPerDay" yaml:"requestsPerDay"`
	Days           int   `json:"days,omitempty" yaml:"days,omitempty"`
}

// Validate rejects negative figures.
func (u Usage) Validate() error {
	if u.InputTokens < 0 || u.OutputTokens < 0 || u.RequestsPerDay < 0 || u.Days < 0 {
		return fmt.Errorf("%w: token counts, requests and days must not be negative", ErrInvalidUsage)
	}
	return nil
}

// PeriodDays returns Days, or DefaultDays when unset.
func (u Usage) PeriodDays() int {
	if u.Days == 0 {
		return DefaultDays
	}
	return u.Days
}

// Estimate is the projected spend of one model. Amounts are exact; round
// only when displaying them.
type Estimate struct {
	ModelID    string          `json:"modelId"`
	ModelName  string          `json:"modelName"`
	Provider   string          `json:"provider"`
	PerRequest decimal.Decimal `json:"perRequest"`
	Daily      decimal.Decimal `json:"daily"`
	Period     decimal.Decimal `json:"period"`
	Days       int             `json:"days"`
}

// EstimateFor computes the spend of m under u.
func EstimateFor(m models.Model, u Usage) (Estimate, error) {
	if err := u.Validate(); err != nil {
		return Estimate{}, err
	}

	input := decimal.NewFromFloat(m.InputCostPer1M).Mul(decimal.NewFromInt(u.InputTokens)).Div(perMillion)
	output := decimal.NewFromFloat(m.OutputCostPer1M).Mul(decimal.NewFromInt(u.OutputTokens)).Div(perMillion)
	perRequest := input.Add(output)
	daily := perRequest.Mul(decimal.NewFromInt(u.RequestsPerDay))
	days := u.PeriodDays()

	return Estimate{
		ModelID:    m.ID,
		ModelName:  m.Name,
		Provider:   m.Provider,
		PerRequest: perRequest,
		Daily:      daily,
		Period:     daily.Mul(decimal.NewFromInt(int64(days))),
		Days:       days,
	}, nil
}

// Compare estimates every model and orders them cheapest first. Models with
// equal cost keep their input order.
func Compare(ms []models.Model, u Usage) ([]Estimate, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	out := make([]Estimate, 0, len(ms))
	for _, m := range ms {
		e, err := EstimateFor(m, u)
		if err != nil {
			return nil, fmt.Errorf("estimating %s: %w", m.ID, err)
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Period.LessThan(out[j].Period)
	})
	return out, nil
}

var cent = decimal.New(1, -2)

// FormatUSD renders d as dollars. Amounts under a cent keep four decimal
// places so they do not collapse to $0.00.
func FormatUSD(d decimal.Decimal) string {
	if !d.IsZero() && d.Abs().LessThan(cent) {
		return "$" + d.StringFixed(4)
	}
	return "$" + d.StringFixed(2)
}
