// Package attributes implements the override/unset overlay shared by the
// request and resource factories.
//
// Final attributes are computed as
//
//	definition  <  overrides  <  unset list
//
// A Set issued after an Unset of the same key cancels that Unset.
package attributes

import (
	"maps"
	"slices"
)

// Bag accumulates explicit overrides and deferred removals.
// The zero value is ready to use.
type Bag struct {
	overrides map[string]any
	unset     []string
}

// New returns an empty Bag.
func New() *Bag {
	return &Bag{}
}

// Set writes an override and cancels any pending unset of key.
func (b *Bag) Set(key string, value any) *Bag {
	if b.overrides == nil {
		b.overrides = make(map[string]any)
	}
	b.overrides[key] = value
	b.unset = slices.DeleteFunc(b.unset, func(k string) bool { return k == key })
	return b
}

// Unset schedules keys for removal at materialization. The override bag is
// left alone.
func (b *Bag) Unset(keys ...string) *Bag {
	for _, k := range keys {
		if !slices.Contains(b.unset, k) {
			b.unset = append(b.unset, k)
		}
	}
	return b
}

// State calls Set for every entry. A nil or empty map is a no-op.
func (b *Bag) State(values map[string]any) *Bag {
	for k, v := range values {
		b.Set(k, v)
	}
	return b
}

// Materialize applies overrides via State, then returns definition overlaid
// by the override bag with every unset key removed. The result is a new map.
func (b *Bag) Materialize(definition map[string]any, overrides map[string]any) map[string]any {
	b.State(overrides)

	out := make(map[string]any, len(definition)+len(b.overrides))
	maps.Copy(out, definition)
	maps.Copy(out, b.overrides)
	for _, k := range b.unset {
		delete(out, k)
	}
	return out
}

// Get returns the override stored for key.
func (b *Bag) Get(key string) (any, bool) {
	v, ok := b.overrides[key]
	return v, ok
}

// Has reports whether key is overridden and not pending removal.
func (b *Bag) Has(key string) bool {
	_, ok := b.overrides[key]
	return ok && !slices.Contains(b.unset, key)
}
