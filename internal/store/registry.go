// Package store holds the category registry (the in-memory query source)
// and optional load-snapshot persistence.
package store

import (
	"sync"

	"github.com/rotisserie/eris"

	"github.com/mile-high-maps/nearby-cli/internal/config"
	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// Registry holds the fixed category set. Its structure never changes after
// construction; only each category's Items slot is replaced, atomically and
// wholesale, by load operations. Reads return copies so callers can never
// alias internal state.
type Registry struct {
	mu         sync.RWMutex
	categories map[model.CategoryKey]*model.Category
	order      []model.CategoryKey
}

// View is the read-only surface handed to the query engine.
type View interface {
	Get(key model.CategoryKey) (model.Category, bool)
	All() []model.Category
}

// NewRegistry builds the registry from category definitions, seeding every
// category's Items with a copy of its fallback samples so the store is
// queryable before any load completes.
func NewRegistry(defs *config.CategoryDefs, search config.SearchConfig) (*Registry, error) {
	r := &Registry{
		categories: make(map[model.CategoryKey]*model.Category, len(model.CategoryKeys)),
		order:      model.CategoryKeys,
	}

	for _, key := range model.CategoryKeys {
		def, ok := defs.Categories[key]
		if !ok {
			return nil, eris.Errorf("store: no definition for category %q", key)
		}

		// A radius in the category definition wins; otherwise transit gets
		// its tighter configured radius and everything else the default.
		radius := def.RadiusMiles
		if radius == 0 {
			radius = search.DefaultRadiusMiles
			if key == model.CategoryTransit && search.TransitRadiusMiles > 0 {
				radius = search.TransitRadiusMiles
			}
		}
		if radius <= 0 {
			return nil, eris.Errorf("store: category %q has non-positive radius", key)
		}

		fallback := SampleItems(key)
		r.categories[key] = &model.Category{
			Key:           key,
			Label:         def.Label,
			Color:         def.Color,
			SourceLabel:   def.SourceLabel,
			RadiusMiles:   radius,
			Items:         copyItems(fallback),
			FallbackItems: fallback,
		}
	}

	return r, nil
}

// SetItems atomically replaces a category's entire item set. The slice is
// copied; the caller keeps ownership of its argument.
func (r *Registry) SetItems(key model.CategoryKey, items []model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat, ok := r.categories[key]
	if !ok {
		return eris.Errorf("store: unknown category %q", key)
	}
	cat.Items = copyItems(items)
	return nil
}

// Get returns a copy of the category.
func (r *Registry) Get(key model.CategoryKey) (model.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[key]
	if !ok {
		return model.Category{}, false
	}
	return copyCategory(cat), true
}

// All returns copies of every category in display order.
func (r *Registry) All() []model.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Category, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, copyCategory(r.categories[key]))
	}
	return out
}

// Fallback returns a copy of the category's fallback samples.
func (r *Registry) Fallback(key model.CategoryKey) []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[key]
	if !ok {
		return nil
	}
	return copyItems(cat.FallbackItems)
}

func copyCategory(c *model.Category) model.Category {
	out := *c
	out.Items = copyItems(c.Items)
	out.FallbackItems = copyItems(c.FallbackItems)
	return out
}

func copyItems(items []model.Item) []model.Item {
	return append([]model.Item(nil), items...)
}
