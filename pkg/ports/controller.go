package ports

import (
	"context"

	"github.com/avral/tessera/pkg/domain"
)

// Controller is the transport-side contract. One implementation exists per
// transport (HTTP, command line, IRC); the dispatcher never sees transport
// details beyond this interface.
type Controller interface {
	// Tag identifies the controller for manifest matching, e.g.
	// "http-get", "http-post", "cmd", "irc".
	Tag() string

	// Family names the middleware hook group for this transport: "http",
	// "cmd", "irc". Several tags may share a family.
	Family() string

	// Primitive resolves a named primitive (e.g. the authenticated
	// principal) from the transport request. Unknown names return
	// domain.ErrUnknownPrimitive.
	Primitive(ctx context.Context, name string) (any, error)

	// MimetypeOverride lets the transport force a response mimetype for a
	// request; "" means no override.
	MimetypeOverride(req *domain.Request) string

	// DefaultMimetype is used when neither a superformat nor an override
	// applies.
	DefaultMimetype() string
}
