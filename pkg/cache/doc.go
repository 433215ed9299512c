// Package cache keeps fetched customer page responses in Redis so repeated
// runs can revalidate pages with conditional requests instead of downloading
// them again.
//
// Only raw HTTP bodies are cached. Validation always runs on the page as
// fetched (or revalidated) for the current run.
//
// # Basic Usage
//
//	manager := cache.NewManager(redisClient, logger)
//
//	key := cache.KeyFromURL(req.URL)
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from the API
//	}
//
// # Conditional Requests
//
//	if cache.CanRevalidate(entry) {
//		cache.AddConditionalHeaders(req, entry)
//		// a 304 answer means entry.Response(req) can be used as-is
//	}
//
// # Metrics
//
//   - custval_cache_hits_total
//   - custval_cache_misses_total
//   - custval_cache_stored_bytes_total
//   - custval_304_responses_total
//   - custval_conditional_requests_total
//   - custval_cache_errors_total{operation}
//
// Entries expire at the response's Expires header, or after DefaultTTL when
// the API sends none.
package cache
