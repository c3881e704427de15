// Package ports defines the interfaces between the dispatch core and its
// collaborators: response caches and transport controllers. Adapters under
// pkg/adapters implement them.
package ports

import (
	"context"
	"time"

	"github.com/avral/tessera/pkg/domain"
)

// Cache is the response cache collaborator. Implementations must support
// concurrent Get/Set from in-flight requests. Concurrent fills of the same
// key are allowed; there is no at-most-once guarantee.
type Cache interface {
	// Get returns the cached response for key, reporting whether it was
	// present and unexpired.
	Get(ctx context.Context, key string) (*domain.Response, bool, error)

	// Set stores resp under key for ttl. A non-positive ttl is a no-op.
	Set(ctx context.Context, key string, resp *domain.Response, ttl time.Duration) error
}

// NopCache discards everything. It is the default when no cache is wired.
type NopCache struct{}

func (NopCache) Get(ctx context.Context, key string) (*domain.Response, bool, error) {
	return nil, false, nil
}

func (NopCache) Set(ctx context.Context, key string, resp *domain.Response, ttl time.Duration) error {
	return nil
}
