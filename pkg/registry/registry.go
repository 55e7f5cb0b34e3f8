// Package registry provides a small concurrency-safe name → value map used to
// bind subject and factory names to constructors.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("registry: empty name provided")
	// ErrConflictingRegistration indicates an attempt to register a name twice.
	ErrConflictingRegistration = errors.New("registry: conflicting registration")
	// ErrNotFound is wrapped by NotFoundError.
	ErrNotFound = errors.New("registry: not found")
)

// NotFoundError reports a name with no registration.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("registry: %q not found", e.Name)
	}
	return fmt.Sprintf("registry: %s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Registry maps names to values of type T.
type Registry[T any] struct {
	kind    string
	mu      sync.RWMutex
	entries map[string]T
}

// New creates an empty registry. kind is used in error messages ("factory", "subject").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, entries: make(map[string]T)}
}

// Register binds name to v. Registering an existing name fails.
func (r *Registry[T]) Register(name string, v T) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s %q", ErrConflictingRegistration, r.kind, name)
	}
	r.entries[name] = v
	return nil
}

// Lookup returns the value registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[name]
	return v, ok
}

// Get is Lookup returning a *NotFoundError for unknown names.
func (r *Registry[T]) Get(name string) (T, error) {
	v, ok := r.Lookup(name)
	if !ok {
		return v, &NotFoundError{Kind: r.kind, Name: name}
	}
	return v, nil
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registrations.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
