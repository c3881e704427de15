package tessera

import (
	"context"
	"io"
	"log/slog"

	"github.com/avral/tessera/pkg/dispatch"
	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/manifest"
	"github.com/avral/tessera/pkg/ports"
)

// App is the high-level entry point for the Tessera library. It wraps the
// dispatch core and provides a simplified API for transport adapters.
type App struct {
	manifest   *manifest.Node
	dispatcher *dispatch.Dispatcher
	cache      ports.Cache
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	mockMode   bool
	Name       string
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithCache wires a response cache (memory, redis, ...).
func WithCache(cache ports.Cache) Option {
	return func(a *App) {
		a.cache = cache
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithMockMode substitutes declared mocks for model execution, for
// offline demos and tests.
func WithMockMode(enabled bool) Option {
	return func(a *App) {
		a.mockMode = enabled
	}
}

// WithName labels the application in logs.
func WithName(name string) Option {
	return func(a *App) {
		a.Name = name
	}
}

// New initializes an App around a manifest tree. The manifest must be
// fully constructed; it is read-only from here on.
func New(m *manifest.Node, opts ...Option) *App {
	app := &App{
		manifest: m,
		cache:    ports.NopCache{},
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if app.Name != "" {
		app.logger = app.logger.With("app", app.Name)
	}

	app.dispatcher = dispatch.New(m,
		dispatch.WithCache(app.cache),
		dispatch.WithLogger(app.logger),
		dispatch.WithLifecycleHooks(app.hooks),
		dispatch.WithMockMode(app.mockMode),
	)
	return app
}

// Resolve runs one invocation through the full pipeline.
func (a *App) Resolve(ctx context.Context, ctrl ports.Controller, req *domain.Request) (*domain.Response, error) {
	return a.dispatcher.Resolve(ctx, ctrl, req)
}

// Dispatcher returns the underlying dispatch core for adapters that take
// it directly.
func (a *App) Dispatcher() *dispatch.Dispatcher {
	return a.dispatcher
}

// URLs enumerates every path reachable by a controller tag.
func (a *App) URLs(controllerTag string) []string {
	return a.manifest.URLs(controllerTag)
}

// Manifest returns the routing tree.
func (a *App) Manifest() *manifest.Node {
	return a.manifest
}
