package domain

// Request is the transport-agnostic view of an incoming invocation.
// Adapters build one from their native request; input middleware may
// transform it before the model runs.
type Request struct {
	// Invocation is the slash-delimited path identifying the program,
	// e.g. "/blog/5/edit".
	Invocation string

	// Data is the raw key/value data supplied by the transport (query
	// string, form body, command-line flags). Values here win over path
	// arguments and declared defaults during data negotiation.
	Data map[string]any

	// Errors carries validation failures from a previous attempt so a view
	// can re-render with inline messages. Dispatches with errors bypass
	// the cache.
	Errors *InvalidInput

	// Origin is the underlying transport request (*http.Request, argv
	// slice, ...). Middleware that knows the transport may inspect it.
	Origin any
}

// Value returns the raw data under key, if present.
func (r *Request) Value(key string) (any, bool) {
	if r == nil || r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// Clone returns a shallow copy of the request with its own Data map.
// Middleware should clone before mutating so earlier pipeline stages keep
// a consistent view.
func (r *Request) Clone() *Request {
	out := *r
	out.Data = make(map[string]any, len(r.Data))
	for k, v := range r.Data {
		out.Data[k] = v
	}
	return &out
}

// Response is the transport-agnostic result of a dispatch. The Body is
// either a rendered value (string, []byte, structured data) or a Control
// signal the transport must honor.
type Response struct {
	Body     any    `json:"body"`
	Mimetype string `json:"mimetype"`

	// Persist is opaque transport-specific state to carry to the client,
	// e.g. a cookie payload. Threaded through from the view unconditionally.
	Persist any `json:"persist,omitempty"`
}

// Signal returns the control signal carried as the body, if any.
func (r *Response) Signal() (Control, bool) {
	if r == nil {
		return nil, false
	}
	return AsControl(r.Body)
}
