// Package metrics exposes the Prometheus counters shared by the gateways, caches and the
// query API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueryRequests counts query API calls by action and response status.
	QueryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kolan_query_requests_total",
			Help: "Total query API requests by action and status code.",
		},
		[]string{"action", "status"},
	)

	// UpstreamRequests counts calls to the third-party gateways by outcome.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kolan_upstream_requests_total",
			Help: "Total upstream gateway calls by gateway and outcome.",
		},
		[]string{"gateway", "outcome"},
	)

	// CacheLookups counts cache hits and misses.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kolan_cache_lookups_total",
			Help: "Total cache lookups by cache and result.",
		},
		[]string{"cache", "result"},
	)

	// ReconcileFallbacks counts language slots that kept the original name.
	ReconcileFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kolan_reconcile_fallbacks_total",
			Help: "Name reconciliation slots that fell back to the seed name, by language and reason.",
		},
		[]string{"language", "reason"},
	)
)

func init() {
	prometheus.MustRegister(QueryRequests, UpstreamRequests, CacheLookups, ReconcileFallbacks)
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}
