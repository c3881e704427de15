// Package cmdline adapts the dispatch core to command-line execution: an
// argument list becomes an invocation plus raw data, and the response is
// written to stdout/stderr.
package cmdline

import (
	"context"
	"fmt"
	"strings"

	"github.com/avral/tessera/pkg/domain"
)

// PrimitiveFunc resolves one primitive name for command-line requests.
type PrimitiveFunc func() (any, error)

// Controller implements ports.Controller for the command line.
type Controller struct {
	primitives map[string]PrimitiveFunc
}

// Option configures the Controller.
type Option func(*Controller)

// WithPrimitive registers a primitive resolver.
func WithPrimitive(name domain.Primitive, fn PrimitiveFunc) Option {
	return func(c *Controller) {
		c.primitives[name.String()] = fn
	}
}

// NewController creates a command-line controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{primitives: make(map[string]PrimitiveFunc)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Tag() string    { return "cmd" }
func (c *Controller) Family() string { return "cmd" }

func (c *Controller) Primitive(ctx context.Context, name string) (any, error) {
	if fn, ok := c.primitives[name]; ok {
		return fn()
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPrimitive, name)
}

func (c *Controller) MimetypeOverride(req *domain.Request) string { return "" }

func (c *Controller) DefaultMimetype() string { return "text/x-cmd" }

// ParseArgs turns command-line arguments (without the binary name) into a
// transport request. The first non-flag token is the invocation; the rest
// are --key=value or --key value pairs. Bare --flags become "true".
//
//	["blog/5", "--title=Hi", "--draft"]  ->  /blog/5 {title: Hi, draft: true}
func ParseArgs(args []string) *domain.Request {
	req := &domain.Request{
		Invocation: "/",
		Data:       make(map[string]any),
		Origin:     args,
	}

	rest := args
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "--") {
		req.Invocation = rest[0]
		rest = rest[1:]
	}

	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		key := strings.TrimPrefix(arg, "--")
		if eq := strings.Index(key, "="); eq >= 0 {
			req.Data[key[:eq]] = key[eq+1:]
			continue
		}
		if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "--") {
			req.Data[key] = rest[i+1]
			i++
			continue
		}
		req.Data[key] = "true"
	}
	return req
}
