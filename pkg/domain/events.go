package domain

import (
	"context"
	"time"
)

// DispatchEvent describes one dispatch as seen by lifecycle hooks.
type DispatchEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Controller string        `json:"controller"`
	Program    string        `json:"program"`
	Path       string        `json:"path"`
	Mimetype   string        `json:"mimetype"`
	CacheHit   bool          `json:"cache_hit,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for dispatcher observability. Nil hooks
// are skipped; hooks must be safe for concurrent use.
type LifecycleHooks struct {
	// OnResolve fires after the manifest resolved the invocation.
	OnResolve func(context.Context, *DispatchEvent)

	// OnCacheHit fires when a cached response short-circuits the model.
	OnCacheHit func(context.Context, *DispatchEvent)

	// OnModelReturn fires after the model ran, with its duration.
	OnModelReturn func(context.Context, *DispatchEvent)

	// OnResponse fires once per dispatch with the final outcome.
	OnResponse func(context.Context, *DispatchEvent)
}
