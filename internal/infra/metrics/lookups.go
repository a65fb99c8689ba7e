package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	lookupCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_calls_total",
			Help: "Upstream lookup API calls by outcome (ok/empty/error).",
		},
		[]string{"status"},
	)

	lookupLatencyMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lookup_latency_ms",
		Help:    "Upstream lookup API latency distribution in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 15000},
	})

	lookupCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lookup_cache_hits_total",
		Help: "Lookups served from the Redis result cache.",
	})
)

func init() {
	register(lookupCallsTotal, lookupLatencyMs, lookupCacheHitsTotal)
}

func ObserveLookup(status string, elapsed time.Duration) {
	lookupCallsTotal.WithLabelValues(norm(status)).Inc()
	lookupLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func IncLookupCacheHit() { lookupCacheHitsTotal.Inc() }
