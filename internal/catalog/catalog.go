// Package catalog owns the set of models the rest of the application reads.
//
// A Catalog is an immutable snapshot: once built by New, Parse or Load it is
// never modified, so it can be shared freely between goroutines. Providers
// hand out snapshots and swap them atomically when the source changes.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spboyer/llmcompare/internal/models"
)

var (
	// ErrDuplicateID is returned when two models share an id.
	ErrDuplicateID = errors.New("duplicate model id")
	// ErrInvalidModel is returned when a model violates a catalog invariant.
	ErrInvalidModel = errors.New("invalid model")
	// ErrSchema is returned when a catalog document fails schema validation.
	ErrSchema = errors.New("catalog does not match schema")
	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("model not found")
)

// Catalog is an ordered, read-only collection of models. Order is the order
// the source listed them in and is significant: tie-breaking everywhere in
// the application falls back to it.
type Catalog struct {
	version  string
	source   string
	loadedAt time.Time
	models   []models.Model
	index    map[string]int
}

// Option configures a Catalog built by New.
type Option func(*Catalog)

// WithVersion records the version string of the catalog document.
func WithVersion(v string) Option {
	return func(c *Catalog) { c.version = v }
}

// WithSource records where the catalog came from (a path or "embedded").
func WithSource(s string) Option {
	return func(c *Catalog) { c.source = s }
}

// New validates ms and returns a snapshot holding a private copy of them.
func New(ms []models.Model, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		loadedAt: time.Now(),
		models:   make([]models.Model, len(ms)),
		index:    make(map[string]int, len(ms)),
	}
	for _, o := range opts {
		o(c)
	}

	copy(c.models, ms)
	for i, m := range c.models {
		if err := checkModel(m); err != nil {
			return nil, fmt.Errorf("model %d (%q): %w", i, m.ID, err)
		}
		if prev, ok := c.index[m.ID]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, m.ID, prev, i)
		}
		c.index[m.ID] = i
	}
	return c, nil
}

func checkModel(m models.Model) error {
	switch {
	case strings.TrimSpace(m.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidModel)
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidModel)
	case m.ContextWindow < 0:
		return fmt.Errorf("%w: negative context window %d", ErrInvalidModel, m.ContextWindow)
	case !finiteNonNegative(m.InputCostPer1M):
		return fmt.Errorf("%w: input cost %v", ErrInvalidModel, m.InputCostPer1M)
	case !finiteNonNegative(m.OutputCostPer1M):
		return fmt.Errorf("%w: output cost %v", ErrInvalidModel, m.OutputCostPer1M)
	}
	for name, score := range m.Benchmarks {
		if math.IsNaN(score) || score < 0 || score > 100 {
			return fmt.Errorf("%w: benchmark %s score %v outside [0,100]", ErrInvalidModel, name, score)
		}
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Models returns the models in catalog order. The returned slice is a copy;
// callers may reorder it without affecting the snapshot.
func (c *Catalog) Models() []models.Model {
	out := make([]models.Model, len(c.models))
	copy(out, c.models)
	return out
}

// Get looks a model up by id.
func (c *Catalog) Get(id string) (models.Model, error) {
	i, ok := c.index[id]
	if !ok {
		return models.Model{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.models[i], nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of models.
func (c *Catalog) Len() int { return len(c.models) }

// Version returns the document version, if one was recorded.
func (c *Catalog) Version() string { return c.version }

// Source returns where the snapshot was loaded from.
func (c *Catalog) Source() string { return c.source }

// LoadedAt returns when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }
