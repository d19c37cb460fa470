// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/tileatlas"
)

// SoftwareBackend is the registry name of the in-memory provider.
const SoftwareBackend = "software"

// Standard backend priorities. Higher is preferred by Best.
const (
	PriorityGPU      = 100
	PrioritySoftware = 10
)

// Registry errors.
var (
	// ErrNoBackend is returned by Best when no registered backend is
	// available.
	ErrNoBackend = errors.New("surface: no backend available")

	// ErrUnknownBackend is matched by a BackendError for a name that was
	// never registered.
	ErrUnknownBackend = errors.New("surface: backend not registered")

	// ErrBackendUnavailable is matched by a BackendError for a backend
	// whose Available check fails on this system.
	ErrBackendUnavailable = errors.New("surface: backend unavailable")
)

// BackendError reports why a named backend produced no provider.
type BackendError struct {
	Name string
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("surface: backend %q: %v", e.Name, e.Err)
}

// Unwrap returns the registry sentinel or the factory failure.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Factory creates a provider for a backend.
type Factory func() (tileatlas.Provider, error)

// Backend describes a registered provider backend.
type Backend struct {
	// Name is the unique key the backend is selected by.
	Name string

	// Priority orders backends for Best, highest first.
	Priority int

	// New creates a provider.
	New Factory

	// Available reports whether the backend can run here. Nil means
	// always.
	Available func() bool
}

func (b Backend) available() bool {
	return b.Available == nil || b.Available()
}

// Registry maps backend names to provider factories.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry. Most code uses the package
// registry through Register and NewProviderByName.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

var defaultRegistry = NewRegistry()

func init() {
	Register(Backend{
		Name:     SoftwareBackend,
		Priority: PrioritySoftware,
		New: func() (tileatlas.Provider, error) {
			return NewProvider(), nil
		},
	})
}

// Register adds b to the package registry, replacing a backend of the
// same name.
func Register(b Backend) { defaultRegistry.Register(b) }

// Unregister removes a backend from the package registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// Lookup returns a backend of the package registry.
func Lookup(name string) (Backend, bool) { return defaultRegistry.Lookup(name) }

// Names returns every backend of the package registry in priority order.
func Names() []string { return defaultRegistry.Names() }

// Available returns the package registry backends that can run here, in
// priority order.
func Available() []string { return defaultRegistry.Available() }

// NewProviderByName creates a provider from a backend of the package
// registry.
func NewProviderByName(name string) (tileatlas.Provider, error) {
	return defaultRegistry.NewProviderByName(name)
}

// Best creates a provider from the highest-priority backend of the
// package registry that works, and returns its name.
func Best() (tileatlas.Provider, string, error) { return defaultRegistry.Best() }

// Register adds b, replacing a backend of the same name.
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	r.backends[b.Name] = b
	r.mu.Unlock()
}

// Unregister removes the named backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.backends, name)
	r.mu.Unlock()
}

// Lookup returns the named backend.
func (r *Registry) Lookup(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	return b, ok
}

// Names returns every backend name, highest priority first and then by
// name.
func (r *Registry) Names() []string {
	return r.names(false)
}

// Available is Names restricted to backends that can run here.
func (r *Registry) Available() []string {
	return r.names(true)
}

// NewProviderByName creates a provider from the named backend. The
// result is a *BackendError unless the factory succeeds.
func (r *Registry) NewProviderByName(name string) (tileatlas.Provider, error) {
	b, ok := r.Lookup(name)
	if !ok {
		return nil, &BackendError{Name: name, Err: ErrUnknownBackend}
	}
	if !b.available() {
		return nil, &BackendError{Name: name, Err: ErrBackendUnavailable}
	}
	p, err := b.New()
	if err != nil {
		return nil, &BackendError{Name: name, Err: err}
	}
	return p, nil
}

// Best tries the available backends in priority order and returns the
// first provider created, with its backend name.
func (r *Registry) Best() (tileatlas.Provider, string, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, "", ErrNoBackend
	}
	var errs []error
	for _, name := range names {
		p, err := r.NewProviderByName(name)
		if err == nil {
			return p, name, nil
		}
		tileatlas.Logger().Debug("surface: backend failed, trying next", "backend", name, "error", err)
		errs = append(errs, err)
	}
	return nil, "", errors.Join(errs...)
}

func (r *Registry) names(onlyAvailable bool) []string {
	r.mu.RLock()
	backends := make([]Backend, 0, len(r.backends))
	for _, b := range r.backends {
		backends = append(backends, b)
	}
	r.mu.RUnlock()

	// Available may open a device; it runs outside the lock.
	if onlyAvailable {
		backends = slices.DeleteFunc(backends, func(b Backend) bool { return !b.available() })
	}
	slices.SortFunc(backends, func(a, b Backend) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name
	}
	return names
}
