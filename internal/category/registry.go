// Package category maintains the working set of category labels offered for
// filtering. The set is independent of which records currently use a label:
// it is seeded from the record set (plus an optional starter list), grows when
// a user adds a name, and never shrinks within a session.
package category

import (
	"sort"
	"strings"
	"sync"

	"stocktrack/internal/model"
)

// Registry is the session-scoped category set plus the active filter
// selection. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	names  map[string]struct{}
	active string
}

// NewRegistry creates a registry seeded with the given starter names.
// Empty names are dropped; the rest are trimmed.
func NewRegistry(seed []string) *Registry {
	r := &Registry{
		names: make(map[string]struct{}, len(seed)),
	}
	for _, name := range seed {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.names[trimmed] = struct{}{}
		}
	}
	return r
}

// MergeProducts folds the distinct categories present on the given records
// into the set. Called after load and after every successful create or
// update, so the set stays a superset of the categories in use.
func (r *Registry) MergeProducts(products []model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		if p.Category != "" {
			r.names[p.Category] = struct{}{}
		}
	}
}

// Add inserts a name and selects it as the active filter. Adding a name
// already present is a no-op for the set but still re-selects it. Returns
// false when the trimmed name is empty.
func (r *Registry) Add(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[trimmed] = struct{}{}
	r.active = trimmed
	return true
}

// Contains checks if a name exists in the set.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.names[name]
	return exists
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of registered names.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Active returns the currently selected filter category, empty for "all".
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetActive selects the filter category without growing the set.
func (r *Registry) SetActive(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = name
}
