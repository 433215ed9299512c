// Package metrics exposes the Prometheus registry used by the customer
// validator. Metrics are defined in their owning packages (client, cache,
// pagination, validator) and registered via promauto.
//
// This package provides the scrape handler and a reference of all metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "custval"

// Registry is the default Prometheus registry used by the validator.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer paired with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the scrape handler for Gatherer.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - custval_requests_total{status} (Counter): Page requests by HTTP status
//   - custval_request_duration_seconds (Histogram): Page request duration
//   - custval_request_errors_total{class} (Counter): Failures by class (client, server, network, unexpected)
//
// Cache Metrics (pkg/cache):
//   - custval_cache_hits_total (Counter): Cache hits
//   - custval_cache_misses_total (Counter): Cache misses
//   - custval_cache_stored_bytes_total (Counter): Bytes written to the cache
//   - custval_304_responses_total (Counter): 304 Not Modified responses
//   - custval_conditional_requests_total (Counter): Conditional requests sent
//   - custval_cache_errors_total{operation} (Counter): Cache operation errors
//
// Walk Metrics (pkg/pagination):
//   - custval_pages_processed_total (Counter): Pages fetched, decoded and handled
//   - custval_page_duration_seconds (Histogram): Time per page including validation
//
// Validation Metrics (pkg/validator):
//   - custval_customers_validated_total (Counter): Customers checked
//   - custval_invalid_customers_total (Counter): Customers with at least one invalid field
//   - custval_field_failures_total{check} (Counter): Field failures by check (missing, required, type, length)
//
// Example Prometheus Queries:
//
//   # Invalid customer ratio
//   rate(custval_invalid_customers_total[5m]) / rate(custval_customers_validated_total[5m])
//
//   # Cache Hit Rate
//   sum(rate(custval_cache_hits_total[5m])) /
//   (sum(rate(custval_cache_hits_total[5m])) + sum(rate(custval_cache_misses_total[5m])))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(custval_request_duration_seconds_bucket[5m]))
