package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventify_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventify_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheLookups counts cache-aside lookups by key class and outcome.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventify_cache_lookups_total",
		Help: "Total cache lookups by key class and outcome (hit/miss)",
	}, []string{"class", "outcome"})

	// MediaUploads counts object storage uploads by kind (cover/avatar) and result.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventify_media_uploads_total",
		Help: "Total media uploads by kind and result",
	}, []string{"kind", "result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
