package collectors

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry manages a set of named collectors and their run history. It is
// safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	collectors map[string]Collector
	statuses   map[string]*Status
}

// NewRegistry returns an empty registry ready for collector registration.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]Collector),
		statuses:   make(map[string]*Status),
	}
}

// Register adds a collector to the registry. It returns an error if a
// collector with the same name is already registered.
func (r *Registry) Register(c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.collectors[name]; exists {
		return fmt.Errorf("collectors: %q already registered", name)
	}

	r.collectors[name] = c
	r.statuses[name] = &Status{
		Name:    name,
		Healthy: true,
	}
	return nil
}

// Unregister removes a collector by name. It is a no-op if the name is not
// found.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.collectors, name)
	delete(r.statuses, name)
}

// Get returns the collector with the given name, or false if not found.
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collectors[name]
	return c, ok
}

// List returns a sorted slice of all registered collector names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collectors))
	for name := range r.collectors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Status returns a copy of the runtime status for the named collector, or
// false if the collector is not registered.
func (r *Registry) Status(name string) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statuses[name]
	if !ok {
		return Status{}, false
	}
	return *s, true
}

// Record folds the outcome of one collection into the status of its
// source. Updates from unregistered collectors are ignored.
func (r *Registry) Record(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.statuses[u.Source]
	if !ok {
		return
	}
	s.LastRun = u.Timestamp
	s.LastLatency = u.Latency
	s.LastError = u.Error
	s.RunCount++
	if u.Error != nil {
		s.ErrorCount++
	}
	if c, ok := r.collectors[u.Source]; ok {
		s.Healthy = c.Healthy()
	}
}

// All returns the registered collectors sorted by name.
func (r *Registry) All() []Collector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Collector, 0, len(r.collectors))
	for _, name := range slices.Sorted(maps.Keys(r.collectors)) {
		out = append(out, r.collectors[name])
	}
	return out
}
