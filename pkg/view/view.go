// Package view implements content-negotiated rendering of model results.
// A View is built once from an explicit, ordered list of renderer
// registrations; negotiation picks a renderer by MIME best-match, or
// directly by superformat name.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avral/tessera/pkg/domain"
	"github.com/munnerz/goautoneg"
)

// Rendered is a structured renderer return value. Renderers that need to
// control the response mimetype themselves return one of these; plain
// scalar returns are wrapped with the renderer's principal mimetype.
type Rendered struct {
	Body     any
	Mimetype string
}

// renderFn is the uniform internal renderer signature; registration
// adapts the accepted public forms onto it.
type renderFn func(result any, errs *domain.InvalidInput) (any, error)

type renderer struct {
	fn        renderFn
	control   domain.Control
	mimetypes []string
}

// principal is the renderer's first declared mimetype, used for scalar
// returns.
func (r renderer) principal() string {
	if len(r.mimetypes) == 0 {
		return ""
	}
	return r.mimetypes[0]
}

// View maps mimetypes and superformat names to renderers. Immutable after
// New; safe for unrestricted concurrent use.
type View struct {
	order     []renderer
	renderMap map[string]renderer
	rejectMap map[string]renderer
	persist   any
	persistFn func(result any) any
}

// Option is one registration step in building a View.
type Option func(*View) error

// Renders registers fn for the given mimetypes. Accepted forms:
//
//	func(result any) any
//	func(result any) (any, error)
//	func(result any, errs *domain.InvalidInput) any
//	func(result any, errs *domain.InvalidInput) (any, error)
//	domain.Control
//
// A control signal registered directly (e.g. a fixed Redirection) is
// returned as the body whenever that mimetype is selected. A mimetype
// without a "/" is a bare superformat name, reachable only by direct
// superformat lookup. Later registrations for the same mimetype win.
func Renders(fn any, mimetypes ...string) Option {
	return func(v *View) error {
		if len(mimetypes) == 0 {
			return fmt.Errorf("view: renderer registered with no mimetypes")
		}
		r := renderer{mimetypes: append([]string(nil), mimetypes...)}
		switch f := fn.(type) {
		case func(any) any:
			r.fn = func(result any, _ *domain.InvalidInput) (any, error) { return f(result), nil }
		case func(any) (any, error):
			r.fn = func(result any, _ *domain.InvalidInput) (any, error) { return f(result) }
		case func(any, *domain.InvalidInput) any:
			r.fn = func(result any, errs *domain.InvalidInput) (any, error) { return f(result, errs), nil }
		case func(any, *domain.InvalidInput) (any, error):
			r.fn = f
		case domain.Control:
			r.control = f
		default:
			return fmt.Errorf("view: unsupported renderer type %T for %v", fn, mimetypes)
		}
		v.order = append(v.order, r)
		return nil
	}
}

// Override registers fn under a superformat name ("html", "json"),
// replacing any renderer already registered for the corresponding
// mimetype. Unknown names register as bare superformats.
func Override(superformat string, fn any) Option {
	mime := domain.MimetypeForSuperformat(superformat)
	if mime == "" {
		mime = superformat
	}
	return Renders(fn, mime)
}

// Persist sets a constant persist value (e.g. a cookie payload) threaded
// into every response.
func Persist(value any) Option {
	return func(v *View) error {
		v.persist = value
		v.persistFn = nil
		return nil
	}
}

// PersistFunc derives the persist value from the model result.
func PersistFunc(fn func(result any) any) Option {
	return func(v *View) error {
		v.persistFn = fn
		return nil
	}
}

// New builds a View from ordered registrations. Registration errors are
// configuration errors, fatal at startup.
func New(opts ...Option) (*View, error) {
	v := &View{
		renderMap: make(map[string]renderer),
		rejectMap: make(map[string]renderer),
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	v.index()
	return v, nil
}

// MustNew is New that panics, for static views built at init.
func MustNew(opts ...Option) *View {
	v, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Extend builds a View on top of a base: the base's registrations come
// first, so the derived options win for any mimetype both declare. The
// base's persist settings carry over unless overridden.
func Extend(base *View, opts ...Option) (*View, error) {
	v := &View{
		order:     append([]renderer(nil), base.order...),
		renderMap: make(map[string]renderer),
		rejectMap: make(map[string]renderer),
		persist:   base.persist,
		persistFn: base.persistFn,
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	v.index()
	return v, nil
}

// MustExtend is Extend that panics.
func MustExtend(base *View, opts ...Option) *View {
	v, err := Extend(base, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *View) index() {
	for _, r := range v.order {
		for _, mime := range r.mimetypes {
			if !strings.Contains(mime, "/") {
				v.rejectMap[mime] = r
			}
			v.renderMap[mime] = r
		}
	}
}

// CanRender reports whether the view has a renderer matching a partial
// mimetype such as "json" or "text/html".
func (v *View) CanRender(partialMimetype string) bool {
	for mime := range v.renderMap {
		if mime == "*/*" {
			return true
		}
		if strings.Contains(mime, partialMimetype) {
			return true
		}
	}
	return false
}

// negotiate picks a renderer for an Accept-style mimetype selector.
// A registered "*/*" renderer matches anything, but only after no concrete
// mimetype matched.
func (v *View) negotiate(selector string) (string, renderer, bool) {
	alternatives := make([]string, 0, len(v.renderMap))
	for mime := range v.renderMap {
		if mime == "*/*" || !strings.Contains(mime, "/") {
			continue
		}
		alternatives = append(alternatives, mime)
	}
	sort.Strings(alternatives)
	if match := goautoneg.Negotiate(selector, alternatives); match != "" {
		return match, v.renderMap[match], true
	}
	if r, ok := v.renderMap["*/*"]; ok {
		return "*/*", r, true
	}
	return "", renderer{}, false
}

// Render turns a model result into a Response for the requested mimetype
// selector. A selector without "/" is a bare superformat name and bypasses
// MIME negotiation entirely, failing even when a "*/*" renderer exists.
func (v *View) Render(result any, mimetype string, errs *domain.InvalidInput) (*domain.Response, error) {
	var (
		chosen renderer
		target string
	)
	if !strings.Contains(mimetype, "/") {
		r, ok := v.rejectMap[mimetype]
		if !ok {
			return nil, fmt.Errorf("%w: unknown superformat %q", domain.ErrNoViewMethod, mimetype)
		}
		chosen, target = r, r.principal()
	} else {
		t, r, ok := v.negotiate(mimetype)
		if !ok {
			return nil, fmt.Errorf("%w: %q not supported by this view", domain.ErrNoViewMethod, mimetype)
		}
		chosen, target = r, t
	}

	persist := v.persist
	if v.persistFn != nil {
		persist = v.persistFn(result)
	}

	if chosen.control != nil {
		// Renderer declared as a bare control signal (e.g. a fixed
		// redirection): no rendering happens at all.
		return &domain.Response{Body: chosen.control, Persist: persist}, nil
	}

	data, err := chosen.fn(result, errs)
	if err != nil {
		return nil, err
	}

	if ctrl, ok := domain.AsControl(data); ok {
		return &domain.Response{Body: ctrl, Persist: persist}, nil
	}

	resp := &domain.Response{Persist: persist}
	switch d := data.(type) {
	case Rendered:
		resp.Body = d.Body
		resp.Mimetype = d.Mimetype
	case *Rendered:
		resp.Body = d.Body
		resp.Mimetype = d.Mimetype
	default:
		resp.Body = data
		if p := chosen.principal(); p != "*/*" {
			resp.Mimetype = p
		}
		return resp, nil
	}
	if resp.Mimetype == "" && target != "*/*" {
		resp.Mimetype = target
	}
	return resp, nil
}
