package domain

import (
	"context"
	"fmt"
	"regexp"
)

// Model is the business function a program dispatches to. It receives the
// negotiated keyword arguments and returns an arbitrary value for the view.
// Models report validation failures by returning *InvalidInput.
type Model func(ctx context.Context, args Args) (any, error)

// Args holds the negotiated keyword arguments for a model call.
type Args map[string]any

// Renderer is the view contract. Views turn a model result into a Response
// for the negotiated mimetype. errs is non-nil when the model rejected the
// input and the view should re-render with inline messages.
type Renderer interface {
	Render(result any, mimetype string, errs *InvalidInput) (*Response, error)
	CanRender(partialMimetype string) bool
}

// Param declares one model parameter. Declaration order matters: parameters
// without defaults bind positional path arguments by index.
type Param struct {
	Name string

	// Default is the value used when neither a path argument nor raw data
	// supplies one. A Primitive default is resolved through the controller
	// at negotiation time instead of being used literally.
	Default any

	// HasDefault distinguishes a declared nil default from no default.
	HasDefault bool
}

// Required reports whether the parameter must be supplied by the request.
func (p Param) Required() bool { return !p.HasDefault }

// Optional is shorthand for a defaulted parameter.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Positional is shorthand for a required parameter.
func Positional(name string) Param {
	return Param{Name: name}
}

var paramName = regexp.MustCompile(`^\w+$`)

// ProgramConfig enumerates every recognized program field. Unknown fields
// cannot exist by construction; validation happens once in NewProgram.
type ProgramConfig struct {
	Name   string
	Model  Model
	Params []Param

	// Mock is an optional canned model result for offline/test execution.
	Mock    any
	HasMock bool

	View Renderer

	PreInput []Middleware
	Input    []Middleware
	Output   []Middleware

	// Controllers restricts which controller tags may reach this program.
	// Empty means every controller.
	Controllers []string

	// CacheSeconds enables response caching when > 0.
	CacheSeconds int
}

// Program is an immutable descriptor bundling a model, a view, middleware
// chains, cache policy and controller applicability. Programs are built at
// configuration time and owned by a manifest node.
type Program struct {
	name         string
	model        Model
	params       []Param
	mock         any
	hasMock      bool
	view         Renderer
	preInput     []Middleware
	input        []Middleware
	output       []Middleware
	controllers  map[string]bool
	cacheSeconds int
}

// NewProgram validates the configuration and freezes it into a Program.
// Configuration errors are fatal at startup by design.
func NewProgram(cfg ProgramConfig) (*Program, error) {
	if cfg.Model == nil && cfg.View == nil {
		return nil, fmt.Errorf("program %q: model or view required", cfg.Name)
	}
	if cfg.CacheSeconds < 0 {
		return nil, fmt.Errorf("program %q: negative cache ttl %d", cfg.Name, cfg.CacheSeconds)
	}
	seenDefault := false
	seen := map[string]bool{}
	for _, p := range cfg.Params {
		if !paramName.MatchString(p.Name) {
			return nil, fmt.Errorf("program %q: invalid parameter name %q", cfg.Name, p.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("program %q: duplicate parameter %q", cfg.Name, p.Name)
		}
		seen[p.Name] = true
		if p.HasDefault {
			seenDefault = true
		} else if seenDefault {
			return nil, fmt.Errorf("program %q: required parameter %q after defaulted parameter", cfg.Name, p.Name)
		}
	}
	controllers := make(map[string]bool, len(cfg.Controllers))
	for _, tag := range cfg.Controllers {
		controllers[tag] = true
	}
	return &Program{
		name:         cfg.Name,
		model:        cfg.Model,
		params:       append([]Param(nil), cfg.Params...),
		mock:         cfg.Mock,
		hasMock:      cfg.HasMock,
		view:         cfg.View,
		preInput:     append([]Middleware(nil), cfg.PreInput...),
		input:        append([]Middleware(nil), cfg.Input...),
		output:       append([]Middleware(nil), cfg.Output...),
		controllers:  controllers,
		cacheSeconds: cfg.CacheSeconds,
	}, nil
}

// MustProgram is NewProgram that panics on configuration errors. Meant for
// static manifests built at init time.
func MustProgram(cfg ProgramConfig) *Program {
	p, err := NewProgram(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Program) Name() string { return p.name }

// Params returns the declared parameters in declaration order.
func (p *Program) Params() []Param {
	return append([]Param(nil), p.params...)
}

// CacheSeconds returns the cache TTL; 0 disables caching.
func (p *Program) CacheSeconds() int { return p.cacheSeconds }

// View returns the program's renderer, or nil.
func (p *Program) View() Renderer { return p.view }

// HasMock reports whether a mock result is declared.
func (p *Program) HasMock() bool { return p.hasMock }

// Mock returns the declared mock result, or ErrMockNotFound.
func (p *Program) Mock() (any, error) {
	if !p.hasMock {
		return nil, fmt.Errorf("program %q: %w", p.name, ErrMockNotFound)
	}
	return p.mock, nil
}

// ServesController reports whether the program is reachable from the given
// controller tag. Programs with no declared controllers serve every tag;
// the wildcard "*" tag likewise matches everything.
func (p *Program) ServesController(tag string) bool {
	if len(p.controllers) == 0 {
		return true
	}
	return p.controllers[tag] || p.controllers["*"]
}

// ExecuteModel runs the model with negotiated arguments. A nil model yields
// a nil result (view-only programs).
func (p *Program) ExecuteModel(ctx context.Context, args Args) (any, error) {
	if p.model == nil {
		return nil, nil
	}
	return p.model(ctx, args)
}

// ExecuteView renders the model result. A program without a view produces
// an empty response.
func (p *Program) ExecuteView(result any, mimetype string, errs *InvalidInput) (*Response, error) {
	if p.view == nil {
		return &Response{Body: "", Mimetype: ""}, nil
	}
	return p.view.Render(result, mimetype, errs)
}

// ExecuteInput runs the pre-input then input middleware chains for the
// given controller family. The first control signal short-circuits.
func (p *Program) ExecuteInput(ctx context.Context, family string, req *Request) (*Request, Control) {
	req, sig := RunInput(ctx, p.preInput, family, req)
	if sig != nil {
		return req, sig
	}
	return RunInput(ctx, p.input, family, req)
}

// ExecuteOutput runs the output middleware chain unconditionally.
func (p *Program) ExecuteOutput(ctx context.Context, family string, req *Request, resp *Response) *Response {
	return RunOutput(ctx, p.output, family, req, resp)
}
