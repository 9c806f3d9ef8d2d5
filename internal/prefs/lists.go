package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

const (
	favoritesKey  = "favorites"
	comparisonKey = "comparison"

	// MaxCompared is the most models a comparison can hold.
	MaxCompared = 4
)

// ErrComparisonFull is returned when adding to a full comparison.
var ErrComparisonFull = errors.New("comparison is full")

type idList struct {
	IDs []string `json:"ids"`
}

func loadIDs(s Store, key string) ([]string, error) {
	data, ok, err := s.Load(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var l idList
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	if l.IDs == nil {
		l.IDs = []string{}
	}
	return l.IDs, nil
}

func saveIDs(s Store, key string, ids []string) error {
	data, err := json.MarshalIndent(idList{IDs: ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Save(key, data)
}

// Favorites is the user's starred models, kept in the order they were added.
type Favorites struct {
	store Store
}

// NewFavorites returns favorites backed by s.
func NewFavorites(s Store) *Favorites {
	return &Favorites{store: s}
}

// List returns the favorite ids.
func (f *Favorites) List() ([]string, error) {
	return loadIDs(f.store, favoritesKey)
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(id string) (bool, error) {
	ids, err := f.List()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Add stars id. Adding an existing favorite is a no-op.
func (f *Favorites) Add(id string) error {
	ids, err := f.List()
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return saveIDs(f.store, favoritesKey, append(ids, id))
}

// Remove unstars id.
func (f *Favorites) Remove(id string) error {
	ids, err := f.List()
	if err != nil {
		return err
	}
	return saveIDs(f.store, favoritesKey, slices.DeleteFunc(ids, func(s string) bool { return s == id }))
}

// Toggle flips id and reports whether it is now a favorite.
func (f *Favorites) Toggle(id string) (bool, error) {
	ok, err := f.Contains(id)
	if err != nil {
		return false, err
	}
	if ok {
		return false, f.Remove(id)
	}
	return true, f.Add(id)
}

// Comparison is the ordered set of models selected for side-by-side view.
type Comparison struct {
	store Store
}

// NewComparison returns a comparison backed by s.
func NewComparison(s Store) *Comparison {
	return &Comparison{store: s}
}

// List returns the selected ids in selection order.
func (c *Comparison) List() ([]string, error) {
	return loadIDs(c.store, comparisonKey)
}

// Add appends id. Re-adding a selected id is a no-op; adding a fifth
// returns ErrComparisonFull.
func (c *Comparison) Add(id string) error {
	ids, err := c.List()
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	if len(ids) >= MaxCompared {
		return fmt.Errorf("%w: at most %d models", ErrComparisonFull, MaxCompared)
	}
	return saveIDs(c.store, comparisonKey, append(ids, id))
}

// Remove drops id from the selection.
func (c *Comparison) Remove(id string) error {
	ids, err := c.List()
	if err != nil {
		return err
	}
	return saveIDs(c.store, comparisonKey, slices.DeleteFunc(ids, func(s string) bool { return s == id }))
}

// Clear empties the selection.
func (c *Comparison) Clear() error {
	return c.store.Delete(comparisonKey)
}
