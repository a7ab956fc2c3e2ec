package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistersIndependently(t *testing.T) {
	// Separate registries must not panic on duplicate registration.
	a := New()
	b := New()

	a.SearchQueriesTotal.WithLabelValues(OutcomeOK).Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.SearchQueriesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SearchQueriesTotal.WithLabelValues(OutcomeOK)))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.CacheHitsTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recipe_search_cache_hits_total 1")
}
