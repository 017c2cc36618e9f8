package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRecorder(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &StatusRecorder{ResponseWriter: rr, Status: http.StatusOK}

	rec.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, rec.Status)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestHandlerExposesCounters(t *testing.T) {
	UpstreamRequests.WithLabelValues("geocoding", "ok").Inc()
	CacheLookups.WithLabelValues("forecast", "miss").Inc()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `kolan_upstream_requests_total{gateway="geocoding",outcome="ok"}`)
	assert.Contains(t, rr.Body.String(), `kolan_cache_lookups_total{cache="forecast",result="miss"}`)
}
