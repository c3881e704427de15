package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrProgramNotFound is returned when no manifest path matches an invocation.
var ErrProgramNotFound = errors.New("program not found")

// ErrTooManyArguments is returned when an invocation supplies more positional
// arguments than the program's model declares.
var ErrTooManyArguments = errors.New("too many arguments")

// ErrMissingArguments is returned when data negotiation cannot resolve a
// value for every declared model parameter.
var ErrMissingArguments = errors.New("missing arguments")

// ErrNoViewMethod is returned when a view has no renderer for the requested
// mimetype or superformat.
var ErrNoViewMethod = errors.New("no view method")

// ErrMockNotFound is returned when mock execution is requested for a program
// that declares no mock value.
var ErrMockNotFound = errors.New("mock not found")

// ErrInvalidManifestKey is a construction-time error: a manifest key does not
// match ^\w*$. Fatal at startup, never recovered.
var ErrInvalidManifestKey = errors.New("invalid manifest key")

// ErrInvalidManifestValue is a construction-time error: a manifest value is
// nil, an alias points nowhere, or an alias chain cycles.
var ErrInvalidManifestValue = errors.New("invalid manifest value")

// ErrUnknownPrimitive is returned by controllers asked to resolve a primitive
// name they do not recognize.
var ErrUnknownPrimitive = errors.New("unknown primitive")

// FieldError describes a single field that failed model-level validation.
type FieldError struct {
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// InvalidInput is returned by models when domain validation fails. It carries
// per-field messages so views can re-render forms with inline errors.
// It is the only error kind that flows into view rendering instead of
// aborting the dispatch.
type InvalidInput struct {
	Message string
	Fields  map[string]FieldError
}

func (e *InvalidInput) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msg := e.Message
	for _, name := range names {
		msg += fmt.Sprintf("; %s: %s", name, e.Fields[name].Message)
	}
	return msg
}

// Field returns the error for a named field, or the zero FieldError.
func (e *InvalidInput) Field(name string) FieldError {
	if e == nil {
		return FieldError{}
	}
	return e.Fields[name]
}

// AsInvalidInput unwraps err into an *InvalidInput if it is one.
func AsInvalidInput(err error) (*InvalidInput, bool) {
	var inv *InvalidInput
	if errors.As(err, &inv) {
		return inv, true
	}
	return nil, false
}
