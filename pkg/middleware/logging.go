// Package middleware provides reusable middleware units for program
// pipelines. Units declare hooks per controller family; the pipeline
// driver lives in pkg/domain.
package middleware

import (
	"context"
	"log/slog"

	"github.com/avral/tessera/pkg/domain"
)

// Logging returns a middleware unit that logs the incoming request and the
// outgoing response for the given controller families.
func Logging(logger *slog.Logger, families ...string) domain.Middleware {
	unit := domain.Middleware{
		Name:   "logging",
		Input:  make(map[string]domain.InputFunc, len(families)),
		Output: make(map[string]domain.OutputFunc, len(families)),
	}
	for _, family := range families {
		family := family
		unit.Input[family] = func(ctx context.Context, req *domain.Request) domain.Decision {
			logger.Info("request",
				"family", family,
				"invocation", req.Invocation,
				"keys", len(req.Data))
			return domain.Continue(req)
		}
		unit.Output[family] = func(ctx context.Context, req *domain.Request, resp *domain.Response) *domain.Response {
			logger.Info("response",
				"family", family,
				"invocation", req.Invocation,
				"mimetype", resp.Mimetype)
			return resp
		}
	}
	return unit
}

// RequireData returns an input middleware that interrupts with a
// redirection when a raw data key is absent. Typical use: sending
// unauthenticated browsers to a login form.
func RequireData(key, redirectTo string, families ...string) domain.Middleware {
	unit := domain.Middleware{
		Name:  "require_" + key,
		Input: make(map[string]domain.InputFunc, len(families)),
	}
	for _, family := range families {
		unit.Input[family] = func(ctx context.Context, req *domain.Request) domain.Decision {
			if _, ok := req.Value(key); !ok {
				return domain.Interrupt(domain.Redirection{Path: redirectTo})
			}
			return domain.Continue(req)
		}
	}
	return unit
}
