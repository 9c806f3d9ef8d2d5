package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/spboyer/llmcompare/internal/models"
)

const scenariosKey = "scenarios"

// ErrScenarioNotFound is returned when no scenario has the requested name.
var ErrScenarioNotFound = errors.New("scenario not found")

// Scenario is a saved set of recommender inputs.
type Scenario struct {
	ID        string    `json:"id" mapstructure:"id"`
	Name      string    `json:"name" mapstructure:"name"`
	Task      string    `json:"task" mapstructure:"task"`
	Priority  string    `json:"priority" mapstructure:"priority"`
	CreatedAt time.Time `json:"createdAt" mapstructure:"createdAt"`

	// MaxCostPer1M is nil when the scenario has no budget.
	MaxCostPer1M     *float64 `json:"maxCostPer1M,omitempty" mapstructure:"maxCostPer1M"`
	MinQualityScore  float64  `json:"minQualityScore,omitempty" mapstructure:"minQualityScore"`
	MinContextWindow int      `json:"minContextWindow,omitempty" mapstructure:"minContextWindow"`
}

// Constraints converts the scenario into recommender constraints.
func (s Scenario) Constraints() models.Constraints {
	c := models.DefaultConstraints()
	if s.MaxCostPer1M != nil {
		c.MaxCostPer1M = *s.MaxCostPer1M
	}
	c.MinQualityScore = s.MinQualityScore
	c.MinContextWindow = s.MinContextWindow
	return c
}

// Inputs parses the stored task and priority.
func (s Scenario) Inputs() (models.TaskType, models.Priority, error) {
	task, err := models.ParseTaskType(s.Task)
	if err != nil {
		return "", "", fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	prio, err := models.ParsePriority(s.Priority)
	if err != nil {
		return "", "", fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return task, prio, nil
}

// NewScenario builds a scenario from recommender inputs. An unbounded
// budget is stored as no budget.
func NewScenario(name string, task models.TaskType, prio models.Priority, c models.Constraints) Scenario {
	s := Scenario{
		Name:             strings.TrimSpace(name),
		Task:             string(task),
		Priority:         string(prio),
		MinQualityScore:  c.MinQualityScore,
		MinContextWindow: c.MinContextWindow,
	}
	if !c.Unbounded() {
		budget := c.MaxCostPer1M
		s.MaxCostPer1M = &budget
	}
	return s
}

// Scenarios stores named scenarios. Documents are read loosely so entries
// written by older versions (missing fields, numbers as strings) still load.
type Scenarios struct {
	store Store
	now   func() time.Time
}

// NewScenarios returns scenarios backed by s.
func NewScenarios(s Store) *Scenarios {
	return &Scenarios{store: s, now: time.Now}
}

type scenarioDoc struct {
	Scenarios []map[string]any `json:"scenarios"`
}

// List returns every scenario ordered by name.
func (ss *Scenarios) List() ([]Scenario, error) {
	data, ok, err := ss.store.Load(scenariosKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Scenario{}, nil
	}

	var doc scenarioDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding scenarios: %w", err)
	}

	out := make([]Scenario, 0, len(doc.Scenarios))
	for i, raw := range doc.Scenarios {
		s, err := decodeScenario(raw)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func decodeScenario(raw map[string]any) (Scenario, error) {
	var s Scenario
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
	})
	if err != nil {
		return Scenario{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Get returns the scenario with the given name (case-insensitive).
func (ss *Scenarios) Get(name string) (Scenario, error) {
	all, err := ss.List()
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range all {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
}

// Save stores s, replacing any scenario with the same name. A replaced
// scenario keeps its id; new scenarios get a fresh one.
func (ss *Scenarios) Save(s Scenario) (Scenario, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return Scenario{}, errors.New("scenario name is required")
	}

	all, err := ss.List()
	if err != nil {
		return Scenario{}, err
	}

	s.CreatedAt = ss.now().UTC()
	replaced := false
	for i := range all {
		if strings.EqualFold(all[i].Name, s.Name) {
			s.ID = all[i].ID
			all[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		s.ID = uuid.NewString()
		all = append(all, s)
	}
	return s, ss.write(all)
}

// Delete removes the named scenario.
func (ss *Scenarios) Delete(name string) error {
	all, err := ss.List()
	if err != nil {
		return err
	}
	n := len(all)
	all = removeScenario(all, name)
	if len(all) == n {
		return fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
	}
	return ss.write(all)
}

func removeScenario(all []Scenario, name string) []Scenario {
	out := all[:0]
	for _, s := range all {
		if !strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			out = append(out, s)
		}
	}
	return out
}

func (ss *Scenarios) write(all []Scenario) error {
	data, err := json.MarshalIndent(struct {
		Scenarios []Scenario `json:"scenarios"`
	}{all}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scenarios: %w", err)
	}
	return ss.store.Save(scenariosKey, data)
}
