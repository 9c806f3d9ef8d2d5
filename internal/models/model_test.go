package models

import (
	"math"
	"testing"

	"github.com/spboyer/llmcompare/internal/capability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_DerivedValues(t *testing.T) {
	m := Model{
		ID:              "m",
		ContextWindow:   250000,
		InputCostPer1M:  3,
		OutputCostPer1M: 15,
		Benchmarks:      Benchmarks{BenchmarkMMLU: 88.7},
	}

	assert.Equal(t, 9.0, m.AverageCostPer1M())
	assert.Equal(t, 2, m.BooksInContext())
	assert.Equal(t, 88.7, m.MMLU())
	assert.Equal(t, 0.0, m.HumanEval())
	assert.Equal(t, 0, Model{ContextWindow: 99999}.BooksInContext())
}

func TestBenchmarks_ScoreOr(t *testing.T) {
	var b Benchmarks
	assert.Equal(t, 50.0, b.ScoreOr(BenchmarkMMLU, 50))

	_, ok := b.Score(BenchmarkMMLU)
	assert.False(t, ok)

	b = Benchmarks{BenchmarkHumanEval: 0}
	v, ok := b.Score(BenchmarkHumanEval)
	assert.True(t, ok, "a zero score is still a known score")
	assert.Equal(t, 0.0, v)
}

func TestModel_Capabilities(t *testing.T) {
	m := Model{
		Tags:    capability.Labels{"Vision"},
		BestFor: capability.Labels{"Coding assistants"},
	}
	p := m.Capabilities()
	assert.True(t, p.Satisfies("vision"))
	assert.True(t, p.Satisfies("coding"))
	assert.Equal(t, capability.Absent, p.KeyFeatures.State())
}

func TestModel_IsDeprecated(t *testing.T) {
	assert.False(t, Model{}.IsDeprecated())
	assert.True(t, Model{Status: &ModelStatus{IsDeprecated: true}}.IsDeprecated())
}

func TestParseTaskType(t *testing.T) {
	for _, tt := range TaskTypes {
		got, err := ParseTaskType(string(tt))
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}

	got, err := ParseTaskType(" Code-Generation ")
	require.NoError(t, err)
	assert.Equal(t, TaskCodeGeneration, got)

	_, err = ParseTaskType("poetry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task type")
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityBalanced, got)

	got, err = ParsePriority("SPEED")
	require.NoError(t, err)
	assert.Equal(t, PrioritySpeed, got)

	_, err = ParsePriority("latency")
	assert.Error(t, err)
}

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints()
	assert.True(t, math.IsInf(c.MaxCostPer1M, 1))
	assert.True(t, c.Unbounded())
	assert.Equal(t, 0.0, c.MinQualityScore)
	assert.Equal(t, 0, c.MinContextWindow)
	assert.False(t, Constraints{}.Unbounded())
}
