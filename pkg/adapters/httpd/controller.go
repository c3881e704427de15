// Package httpd adapts the dispatch core to HTTP using chi. Each request
// gets a Controller that translates the transport: URL path becomes the
// invocation, query/form/cookie values become raw data, the Accept header
// drives content negotiation, and control signals map to HTTP semantics.
package httpd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avral/tessera/pkg/domain"
)

// PrimitiveFunc resolves one primitive name from the live HTTP request.
type PrimitiveFunc func(r *http.Request) (any, error)

// Controller implements ports.Controller for one HTTP request.
type Controller struct {
	r          *http.Request
	primitives map[string]PrimitiveFunc
}

// NewController wraps an HTTP request. primitives may be nil.
func NewController(r *http.Request, primitives map[string]PrimitiveFunc) *Controller {
	return &Controller{r: r, primitives: primitives}
}

// Tag returns "http-get", "http-post", etc.
func (c *Controller) Tag() string {
	return "http-" + strings.ToLower(c.r.Method)
}

func (c *Controller) Family() string { return "http" }

// Primitive resolves configured primitives plus the built-in names.
func (c *Controller) Primitive(ctx context.Context, name string) (any, error) {
	if fn, ok := c.primitives[name]; ok {
		return fn(c.r)
	}
	switch domain.Primitive(name) {
	case domain.RawInvocation:
		return c.r.URL.Path, nil
	case domain.AllData:
		return rawData(c.r), nil
	case domain.LoggedInUser:
		// Anonymous unless the application wires a resolver.
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPrimitive, name)
}

// MimetypeOverride returns the Accept header when it names a single
// concrete type, so explicit API clients bypass the HTML default.
func (c *Controller) MimetypeOverride(req *domain.Request) string {
	accept := c.r.Header.Get("Accept")
	if accept == "" || accept == "*/*" {
		return ""
	}
	return accept
}

func (c *Controller) DefaultMimetype() string { return "text/html" }

// rawData flattens query parameters, form values and cookies into the raw
// data map. Form values win over query values, cookies never override
// either.
func rawData(r *http.Request) map[string]any {
	data := make(map[string]any)
	for _, cookie := range r.Cookies() {
		data[cookie.Name] = cookie.Value
	}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}
	if err := r.ParseForm(); err == nil {
		for key, values := range r.PostForm {
			if len(values) > 0 {
				data[key] = values[0]
			}
		}
	}
	return data
}
