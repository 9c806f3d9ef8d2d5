package cost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEstimateFor(t *testing.T) {
	m := models.Model{ID: "gpt-4o", Name: "GPT-4o", Provider: "OpenAI", InputCostPer1M: 2.5, OutputCostPer1M: 10}
	u := Usage{InputTokens: 1000, OutputTokens: 500, RequestsPerDay: 100}

	e, err := EstimateFor(m, u)
	require.NoError(t, err)

	assert.True(t, dec("0.0075").Equal(e.PerRequest), e.PerRequest.String())
	assert.True(t, dec("0.75").Equal(e.Daily), e.Daily.String())
	assert.True(t, dec("22.5").Equal(e.Period), e.Period.String())
	assert.Equal(t, DefaultDays, e.Days)
	assert.Equal(t, "gpt-4o", e.ModelID)
}

func TestEstimateFor_NoFloatDrift(t *testing.T) {
	m := models.Model{ID: "tiny", InputCostPer1M: 0.1, OutputCostPer1M: 0.2}
	e, err := EstimateFor(m, Usage{InputTokens: 3_000_000, OutputTokens: 0, RequestsPerDay: 1, Days: 1})
	require.NoError(t, err)
	assert.Equal(t, "0.3", e.Period.String())
}

func TestEstimateFor_RejectsNegativeUsage(t *testing.T) {
	_, err := EstimateFor(models.Model{}, Usage{InputTokens: -1})
	assert.ErrorIs(t, err, ErrInvalidUsage)

	_, err = Compare([]models.Model{{ID: "a"}}, Usage{Days: -3})
	assert.ErrorIs(t, err, ErrInvalidUsage)
}

func TestCompare_CheapestFirstStable(t *testing.T) {
	ms := []models.Model{
		{ID: "pricey", InputCostPer1M: 15, OutputCostPer1M: 75},
		{ID: "free-a"},
		{ID: "mid", InputCostPer1M: 1, OutputCostPer1M: 2},
		{ID: "free-b"},
	}
	got, err := Compare(ms, Usage{InputTokens: 2000, OutputTokens: 1000, RequestsPerDay: 10, Days: 7})
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ModelID
	}
	assert.Equal(t, []string{"free-a", "free-b", "mid", "pricey"}, ids)
	assert.Equal(t, 7, got[0].Days)
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"22.5", "$22.50"},
		{"0.0075", "$0.0075"},
		{"0.004999", "$0.0050"},
		{"1234.567", "$1234.57"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(dec(tt.in)), tt.in)
	}
}
