// Package metrics holds the Prometheus instruments of the service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fipeval"

const (
	ResultHit  = "hit"
	ResultMiss = "miss"

	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by backend, key namespace and result",
	}, []string{"backend", "namespace", "result"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Upstream provider requests by provider, operation and outcome",
	}, []string{"provider", "operation", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of upstream provider requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider", "operation"})

	valuationSources = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolved_valuations_total",
		Help:      "Resolved plate valuations by the source of the final value",
	}, []string{"source"})

	historyPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "history_points",
		Help:      "Number of points in assembled valuation series",
		Buckets:   prometheus.LinearBuckets(0, 1, 13),
	})
)

// ObserveCacheLookup records a single cache lookup
func ObserveCacheLookup(backend, keyNamespace string, hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}

	cacheLookups.WithLabelValues(backend, keyNamespace, result).Inc()
}

// ObserveUpstream records a finished upstream request that started at start
func ObserveUpstream(provider, operation string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}

	upstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
	upstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
}

// ObserveValuationSource records which source supplied a resolved valuation
func ObserveValuationSource(source string) {
	valuationSources.WithLabelValues(source).Inc()
}

// ObserveHistoryPoints records the length of an assembled series
func ObserveHistoryPoints(n int) {
	historyPoints.Observe(float64(n))
}
