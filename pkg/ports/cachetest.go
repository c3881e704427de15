package ports

import (
	"context"
	"testing"
	"time"

	"github.com/avral/tessera/pkg/domain"
)

// RunCacheContract verifies that a Cache implementation honors the port
// semantics. Adapter test files call it against their concrete cache.
func RunCacheContract(t *testing.T, cache Cache) {
	t.Helper()
	ctx := context.Background()

	t.Run("MissOnEmpty", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected miss for absent key")
		}
	})

	t.Run("SetThenGet", func(t *testing.T) {
		want := &domain.Response{Body: "hello", Mimetype: "text/plain"}
		if err := cache.Set(ctx, "greeting", want, time.Minute); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		got, ok, err := cache.Get(ctx, "greeting")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !ok {
			t.Fatal("expected hit after set")
		}
		if got.Body != want.Body || got.Mimetype != want.Mimetype {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("CallerCannotMutateStored", func(t *testing.T) {
		resp := &domain.Response{Body: "original", Mimetype: "text/plain"}
		if err := cache.Set(ctx, "isolated", resp, time.Minute); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		resp.Body = "mutated"

		got, ok, err := cache.Get(ctx, "isolated")
		if err != nil || !ok {
			t.Fatalf("get failed: ok=%v err=%v", ok, err)
		}
		if got.Body != "original" {
			t.Errorf("stored response was mutated through the caller's pointer: %v", got.Body)
		}
	})

	t.Run("NonPositiveTTLIsNoop", func(t *testing.T) {
		if err := cache.Set(ctx, "transient", &domain.Response{Body: "x"}, 0); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		_, ok, err := cache.Get(ctx, "transient")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if ok {
			t.Error("zero ttl entry should not be stored")
		}
	})
}
