// Package dispatch drives a resolved program through the full request
// pipeline: manifest resolution, middleware, data negotiation, cache,
// model execution, view rendering and output middleware.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/manifest"
	"github.com/avral/tessera/pkg/ports"
)

// Dispatcher binds a manifest tree to a cache and logger. It is immutable
// after New and safe for unrestricted concurrent use.
type Dispatcher struct {
	manifest *manifest.Node
	cache    ports.Cache
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	mockMode bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCache wires the response cache collaborator.
func WithCache(cache ports.Cache) Option {
	return func(d *Dispatcher) {
		d.cache = cache
	}
}

// WithLogger sets a structured logger for dispatch events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithMockMode substitutes declared mock values for model execution.
// Programs without a mock fail with ErrMockNotFound.
func WithMockMode(enabled bool) Option {
	return func(d *Dispatcher) {
		d.mockMode = enabled
	}
}

// New creates a Dispatcher for a manifest.
func New(m *manifest.Node, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		manifest: m,
		cache:    ports.NopCache{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve runs one invocation end to end and returns the final response.
// Typed errors (ErrProgramNotFound, ErrTooManyArguments, ...) are surfaced
// to the transport; control signals come back as the response body.
func (d *Dispatcher) Resolve(ctx context.Context, ctrl ports.Controller, req *domain.Request) (*domain.Response, error) {
	match, err := d.manifest.ParseInvocation(req.Invocation, ctrl.Tag())
	if err != nil {
		return nil, err
	}
	program := match.Program

	mimetype := match.SuperformatMime
	if mimetype == "" {
		mimetype = ctrl.MimetypeOverride(req)
	}
	if mimetype == "" {
		mimetype = ctrl.DefaultMimetype()
	}

	event := &domain.DispatchEvent{
		Timestamp:  time.Now(),
		Controller: ctrl.Tag(),
		Program:    program.Name(),
		Path:       match.Path,
		Mimetype:   mimetype,
	}
	d.fire(d.hooks.OnResolve, ctx, event)
	d.logger.Debug("invocation resolved",
		"controller", ctrl.Tag(),
		"program", program.Name(),
		"path", match.Path,
		"args", match.Args,
		"mimetype", mimetype)

	req, signal := program.ExecuteInput(ctx, ctrl.Family(), req)

	resp, err := d.concreteResponse(ctx, ctrl, req, match, mimetype, signal, event)
	if err != nil {
		event.Err = err
		d.fire(d.hooks.OnResponse, ctx, event)
		return nil, err
	}

	resp = program.ExecuteOutput(ctx, ctrl.Family(), req, resp)
	d.fire(d.hooks.OnResponse, ctx, event)
	return resp, nil
}

// concreteResponse produces the pre-output-middleware response: either the
// middleware control signal, a cache hit, or a freshly rendered model
// result.
func (d *Dispatcher) concreteResponse(ctx context.Context, ctrl ports.Controller, req *domain.Request, match *manifest.Match, mimetype string, signal domain.Control, event *domain.DispatchEvent) (*domain.Response, error) {
	program := match.Program

	if signal != nil {
		// Middleware interrupted the pipeline; the signal is the body and
		// the model never runs.
		return &domain.Response{Body: signal, Mimetype: mimetype}, nil
	}

	if d.mockMode {
		mock, err := program.Mock()
		if err != nil {
			return nil, err
		}
		return program.ExecuteView(mock, mimetype, req.Errors)
	}

	args, err := d.dataForModel(ctx, ctrl, program, match.Args, req)
	if err != nil {
		return nil, err
	}

	cacheable := program.CacheSeconds() > 0 && req.Errors == nil
	var key string
	if cacheable {
		key = cacheKey(args, program.Name(), mimetype)
		if hit, ok, cerr := d.cache.Get(ctx, key); cerr != nil {
			d.logger.Warn("cache get failed", "key", key, "err", cerr)
		} else if ok {
			event.CacheHit = true
			d.fire(d.hooks.OnCacheHit, ctx, event)
			return hit, nil
		}
	}

	start := time.Now()
	result, err := program.ExecuteModel(ctx, args)
	event.Duration = time.Since(start)
	d.fire(d.hooks.OnModelReturn, ctx, event)

	errs := req.Errors
	if err != nil {
		inv, ok := domain.AsInvalidInput(err)
		if !ok {
			return nil, err
		}
		// Validation failures render through the view so forms can show
		// inline messages; they never populate the cache.
		errs = inv
		result = nil
		cacheable = false
	}

	resp, err := program.ExecuteView(result, mimetype, errs)
	if err != nil {
		return nil, err
	}

	if cacheable && errs == nil {
		ttl := time.Duration(program.CacheSeconds()) * time.Second
		if cerr := d.cache.Set(ctx, key, resp, ttl); cerr != nil {
			d.logger.Warn("cache set failed", "key", key, "err", cerr)
		}
	}
	return resp, nil
}

func (d *Dispatcher) fire(hook func(context.Context, *domain.DispatchEvent), ctx context.Context, event *domain.DispatchEvent) {
	if hook != nil {
		hook(ctx, event)
	}
}
