package prefs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedScenarios(s Store) *Scenarios {
	ss := NewScenarios(s)
	ss.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return ss
}

func TestScenarios_SaveGetList(t *testing.T) {
	ss := fixedScenarios(NewFileStore(t.TempDir()))

	c := models.DefaultConstraints()
	c.MaxCostPer1M = 10
	c.MinContextWindow = 200000
	saved, err := ss.Save(NewScenario(" Budget coding ", models.TaskCodeGeneration, models.PriorityCost, c))
	require.NoError(t, err)
	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budget coding", saved.Name)

	_, err = ss.Save(NewScenario("Accurate chat", models.TaskChat, models.PriorityQuality, models.DefaultConstraints()))
	require.NoError(t, err)

	all, err := ss.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Accurate chat", all[0].Name)
	assert.Nil(t, all[0].MaxCostPer1M)

	got, err := ss.Get("budget CODING")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 200000, got.MinContextWindow)
	assert.True(t, got.CreatedAt.Equal(saved.CreatedAt))

	constraints := got.Constraints()
	assert.InDelta(t, 10.0, constraints.MaxCostPer1M, 1e-9)
	assert.Equal(t, 200000, constraints.MinContextWindow)

	task, prio, err := got.Inputs()
	require.NoError(t, err)
	assert.Equal(t, models.TaskCodeGeneration, task)
	assert.Equal(t, models.PriorityCost, prio)
}

func TestScenarios_SaveReplacesByNameKeepingID(t *testing.T) {
	ss := fixedScenarios(NewMemoryStore())
	first, err := ss.Save(Scenario{Name: "daily", Task: "chat", Priority: "speed"})
	require.NoError(t, err)

	second, err := ss.Save(Scenario{Name: "DAILY", Task: "chat", Priority: "cost"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := ss.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "cost", all[0].Priority)
}

func TestScenarios_Delete(t *testing.T) {
	ss := fixedScenarios(NewMemoryStore())
	_, err := ss.Save(Scenario{Name: "a", Task: "chat"})
	require.NoError(t, err)

	require.NoError(t, ss.Delete("A"))
	assert.ErrorIs(t, ss.Delete("a"), ErrScenarioNotFound)

	_, err = ss.Get("a")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestScenarios_RejectsEmptyName(t *testing.T) {
	_, err := fixedScenarios(NewMemoryStore()).Save(Scenario{Name: "  "})
	assert.Error(t, err)
}

func TestScenarios_DecodesLooselyTypedDocuments(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save(scenariosKey, []byte(`{"scenarios":[{
		"id": "legacy",
		"name": "old",
		"task": "data-analysis",
		"maxCostPer1M": "5.5",
		"minContextWindow": "128000",
		"createdAt": "2024-06-01T00:00:00Z"
	}]}`)))

	got, err := NewScenarios(s).Get("old")
	require.NoError(t, err)
	require.NotNil(t, got.MaxCostPer1M)
	assert.InDelta(t, 5.5, *got.MaxCostPer1M, 1e-9)
	assert.Equal(t, 128000, got.MinContextWindow)
	assert.Equal(t, 2024, got.CreatedAt.Year())

	_, prio, err := got.Inputs()
	require.NoError(t, err)
	assert.Equal(t, models.PriorityBalanced, prio, "missing priority defaults to balanced")
}

func TestScenario_InvalidTask(t *testing.T) {
	_, _, err := Scenario{Name: "x", Task: "poetry"}.Inputs()
	assert.Error(t, err)
}
