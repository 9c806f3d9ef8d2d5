package wizard

import (
	"math"
	"testing"

	"github.com/spboyer/llmcompare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"", math.Inf(1), false},
		{"  ", math.Inf(1), false},
		{"10", 10, false},
		{"$2.5", 2.5, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"cheap", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBudget(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuality(t *testing.T) {
	v, err := ParseQuality("85%")
	require.NoError(t, err)
	assert.Equal(t, 85.0, v)

	v, err = ParseQuality("")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = ParseQuality("101")
	assert.Error(t, err)
}

func TestParseTokens(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"128000", 128000},
		{"128,000", 128000},
		{"128k", 128000},
		{"1M", 1000000},
		{"1.5m", 1500000},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTokens(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTokens("lots")
	assert.Error(t, err)
}

func TestCollect(t *testing.T) {
	a, err := Collect("code-generation", "cost", "25", "80", "128k", " weekly ")
	require.NoError(t, err)

	assert.Equal(t, models.TaskCodeGeneration, a.Task)
	assert.Equal(t, models.PriorityCost, a.Priority)
	assert.Equal(t, 25.0, a.Constraints.MaxCostPer1M)
	assert.Equal(t, 80.0, a.Constraints.MinQualityScore)
	assert.Equal(t, 128000, a.Constraints.MinContextWindow)
	assert.Equal(t, "weekly", a.SaveAs)
}

func TestCollect_BlankAnswersAreUnconstrained(t *testing.T) {
	a, err := Collect("chat", "", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityBalanced, a.Priority)
	assert.True(t, a.Constraints.Unbounded())
	assert.Equal(t, models.DefaultConstraints(), a.Constraints)
}

func TestCollect_InvalidTask(t *testing.T) {
	_, err := Collect("poetry", "quality", "", "", "", "")
	assert.ErrorContains(t, err, "unknown task type")
}

func TestOptionsCoverEveryValue(t *testing.T) {
	assert.Len(t, taskOptions(), len(models.TaskTypes))
	assert.Len(t, priorityOptions(), len(models.Priorities))
	for _, tt := range models.TaskTypes {
		assert.NotEmpty(t, taskLabels[tt], tt)
	}
}

func TestFormatBudget(t *testing.T) {
	assert.Equal(t, "", FormatBudget(models.DefaultConstraints()))
	assert.Equal(t, "12.5", FormatBudget(models.Constraints{MaxCostPer1M: 12.5}))
}
