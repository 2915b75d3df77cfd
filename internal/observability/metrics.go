package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commons_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// GroupOperations counts group operations by name and outcome code.
	GroupOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_group_operations_total",
		Help: "Total group operations by operation and result code",
	}, []string{"operation", "result"})

	// GroupOperationLatency records end-to-end latency of group operations.
	GroupOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commons_group_operation_latency_seconds",
		Help:    "Group operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// GroupLockWait records how long operations waited for a group lock.
	GroupLockWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commons_group_lock_wait_seconds",
		Help:    "Time spent waiting for a per-group lock",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"backend"})

	// MessageThroughput counts posted group messages by kind.
	MessageThroughput = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_message_throughput_total",
		Help: "Total number of group messages posted",
	}, []string{"kind"})

	// ListingCacheResults counts listing cache lookups by result.
	ListingCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_listing_cache_results_total",
		Help: "Listing cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	// EventPublishFailures counts best-effort event publishes that failed.
	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_event_publish_failures_total",
		Help: "Total number of group events that could not be published",
	}, []string{"event_type"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// TrackGroupOperation returns a function that records the operation's latency
// and result when called with the operation's final error code ("ok" on success).
func TrackGroupOperation(operation string) func(result string) {
	start := time.Now()
	return func(result string) {
		GroupOperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		GroupOperations.WithLabelValues(operation, result).Inc()
	}
}
