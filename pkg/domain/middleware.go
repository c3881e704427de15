package domain

import "context"

// InputFunc transforms a request before the model runs. It returns either
// the (possibly replaced) request to continue with, or a control signal
// that stops the pipeline.
type InputFunc func(ctx context.Context, req *Request) Decision

// OutputFunc transforms the response after the model and view have run.
// Output hooks run unconditionally, even when input middleware
// short-circuited the model.
type OutputFunc func(ctx context.Context, req *Request, resp *Response) *Response

// Decision is the explicit result of an input middleware hook: exactly one
// of Request or Signal is set. Short-circuiting is a value, not a panic.
type Decision struct {
	Request *Request
	Signal  Control
}

// Continue passes the (possibly transformed) request to the next hook.
func Continue(req *Request) Decision { return Decision{Request: req} }

// Interrupt stops the input pipeline with a control signal. The signal
// becomes the response body; the model never runs.
func Interrupt(sig Control) Decision { return Decision{Signal: sig} }

// Middleware is one unit in a program's middleware chain. Hooks are keyed
// by controller family ("http", "cmd", "irc"); a unit with no hook for the
// active family is skipped.
type Middleware struct {
	// Name identifies the unit in logs.
	Name string

	// Input holds the per-family input hooks.
	Input map[string]InputFunc

	// Output holds the per-family output hooks.
	Output map[string]OutputFunc
}

// RunInput drives units in declaration order for the given controller
// family. The first control signal stops the chain; remaining units do not
// execute. The returned request is the final transformed request.
func RunInput(ctx context.Context, units []Middleware, family string, req *Request) (*Request, Control) {
	for _, unit := range units {
		hook := unit.Input[family]
		if hook == nil {
			continue
		}
		d := hook(ctx, req)
		if d.Signal != nil {
			return req, d.Signal
		}
		if d.Request != nil {
			req = d.Request
		}
	}
	return req, nil
}

// RunOutput drives output hooks in declaration order. Each hook receives
// the response produced by the previous one; a hook returning nil leaves
// the response unchanged.
func RunOutput(ctx context.Context, units []Middleware, family string, req *Request, resp *Response) *Response {
	for _, unit := range units {
		hook := unit.Output[family]
		if hook == nil {
			continue
		}
		if out := hook(ctx, req, resp); out != nil {
			resp = out
		}
	}
	return resp
}
