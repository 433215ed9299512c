package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts page responses served from Redis
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custval_cache_hits_total",
			Help: "Total number of page cache hits",
		},
	)

	// CacheMisses counts lookups that found nothing usable
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custval_cache_misses_total",
			Help: "Total number of page cache misses",
		},
	)

	// CacheStoredBytes counts bytes written to Redis
	CacheStoredBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custval_cache_stored_bytes_total",
			Help: "Total bytes of page responses written to the cache",
		},
	)

	// NotModifiedResponses counts 304 answers to conditional requests
	NotModifiedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custval_304_responses_total",
			Help: "Total number of 304 Not Modified responses",
		},
	)

	// ConditionalRequestsSent counts requests sent with If-None-Match or If-Modified-Since
	ConditionalRequestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custval_conditional_requests_total",
			Help: "Total number of conditional page requests",
		},
	)

	// CacheErrors counts failed cache operations
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custval_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
