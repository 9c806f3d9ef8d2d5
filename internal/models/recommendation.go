package models

import (
	"fmt"
	"math"
	"strings"
)

// TaskType is the kind of work a recommendation is made for.
type TaskType string

const (
	TaskCreativeWriting TaskType = "creative-writing"
	TaskCodeGeneration  TaskType = "code-generation"
	TaskDataAnalysis    TaskType = "data-analysis"
	TaskChat            TaskType = "chat"
	TaskReasoning       TaskType = "reasoning"
	TaskTranslation     TaskType = "translation"
)

// TaskTypes lists every recognised task type in display order.
var TaskTypes = []TaskType{
	TaskCreativeWriting,
	TaskCodeGeneration,
	TaskDataAnalysis,
	TaskChat,
	TaskReasoning,
	TaskTranslation,
}

// ParseTaskType validates s as a task type.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TaskTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown task type %q: must be one of %s", s, joinTaskTypes())
}

func joinTaskTypes() string {
	parts := make([]string, len(TaskTypes))
	for i, t := range TaskTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Priority selects the weighting applied by the recommender.
type Priority string

const (
	PriorityQuality  Priority = "quality"
	PriorityCost     Priority = "cost"
	PriorityBalanced Priority = "balanced"
	PrioritySpeed    Priority = "speed"
)

// Priorities lists every recognised priority in display order.
var Priorities = []Priority{PriorityQuality, PriorityCost, PriorityBalanced, PrioritySpeed}

// ParsePriority validates s as a priority. An empty string means balanced.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityBalanced, nil
	}
	for _, known := range Priorities {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q: must be one of quality, cost, balanced, speed", s)
}

// Constraints bound the candidates the recommender considers.
// Use DefaultConstraints rather than the zero value: a zero MaxCostPer1M
// admits only free models.
type Constraints struct {
	MaxCostPer1M     float64
	MinQualityScore  float64
	MinContextWindow int
}

// DefaultConstraints returns constraints that admit every model.
func DefaultConstraints() Constraints {
	return Constraints{MaxCostPer1M: math.Inf(1)}
}

// Unbounded reports whether the cost ceiling is infinite.
func (c Constraints) Unbounded() bool {
	return math.IsInf(c.MaxCostPer1M, 1)
}

// RecommendationWeights defines the weighting scheme applied for a priority.
type RecommendationWeights struct {
	Quality float64 `json:"quality"`
	Cost    float64 `json:"cost"`
	Context float64 `json:"context"`
	Size    float64 `json:"size,omitempty"`
}

// ScoredModel is a recommender result: the model plus the numbers that
// produced its rank.
type ScoredModel struct {
	Model         Model   `json:"model"`
	Rank          int     `json:"rank"`
	Score         float64 `json:"score"`
	AvgCost       float64 `json:"avgCost"`
	QualityScore  float64 `json:"qualityScore"`
	ValueScore    float64 `json:"valueScore"`
	ContextWindow int     `json:"contextWindow"`
	Reason        string  `json:"reason,omitempty"`
}
