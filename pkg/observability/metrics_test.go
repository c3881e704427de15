package observability

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avral/tessera/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	event := &domain.DispatchEvent{
		Program:    "blog",
		Controller: "http-get",
		Duration:   25 * time.Millisecond,
	}

	hooks.OnModelReturn(ctx, event)
	hooks.OnResponse(ctx, event)
	hooks.OnCacheHit(ctx, event)

	failed := &domain.DispatchEvent{Program: "blog", Controller: "http-get", Err: assert.AnError}
	hooks.OnResponse(ctx, failed)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.dispatches.WithLabelValues("blog", "http-get", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dispatches.WithLabelValues("blog", "http-get", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheHits.WithLabelValues("blog")))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.Hooks().OnResponse(context.Background(), &domain.DispatchEvent{
		Program:    "blog",
		Controller: "cmd",
	})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "tessera_dispatches_total"))
	assert.True(t, strings.Contains(body, `program="blog"`))
}

func TestMetricsRegistriesAreIndependent(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.Hooks().OnCacheHit(context.Background(), &domain.DispatchEvent{Program: "p"})

	assert.Equal(t, float64(1), testutil.ToFloat64(a.cacheHits.WithLabelValues("p")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.cacheHits.WithLabelValues("p")))
}
