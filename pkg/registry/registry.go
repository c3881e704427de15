// Package registry manages named models, views and middleware so manifest
// configuration files can reference them by name.
package registry

import (
	"fmt"
	"sync"

	"github.com/avral/tessera/pkg/domain"
)

// ModelEntry pairs a model function with its declared parameters.
type ModelEntry struct {
	Model  domain.Model
	Params []domain.Param
}

// Registry holds the registered building blocks. Register everything at
// startup; lookups during manifest construction are read-only.
type Registry struct {
	mu         sync.RWMutex
	models     map[string]ModelEntry
	views      map[string]domain.Renderer
	middleware map[string]domain.Middleware
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		models:     make(map[string]ModelEntry),
		views:      make(map[string]domain.Renderer),
		middleware: make(map[string]domain.Middleware),
	}
}

// RegisterModel adds a model under name. An existing entry is overwritten.
func (r *Registry) RegisterModel(name string, model domain.Model, params ...domain.Param) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[name] = ModelEntry{Model: model, Params: params}
}

// RegisterView adds a renderer under name.
func (r *Registry) RegisterView(name string, v domain.Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[name] = v
}

// RegisterMiddleware adds a middleware unit under name.
func (r *Registry) RegisterMiddleware(name string, m domain.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware[name] = m
}

// Model looks up a registered model.
func (r *Registry) Model(name string) (ModelEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.models[name]
	if !ok {
		return ModelEntry{}, fmt.Errorf("model not registered: %s", name)
	}
	return entry, nil
}

// View looks up a registered renderer.
func (r *Registry) View(name string) (domain.Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[name]
	if !ok {
		return nil, fmt.Errorf("view not registered: %s", name)
	}
	return v, nil
}

// Middleware looks up a registered middleware unit.
func (r *Registry) Middleware(name string) (domain.Middleware, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.middleware[name]
	if !ok {
		return domain.Middleware{}, fmt.Errorf("middleware not registered: %s", name)
	}
	return m, nil
}
