// Package pagination walks a paginated customer listing one page at a time.
//
// The listing is addressed by a base URL. The first request goes to the base
// URL unchanged; later requests add a page query parameter:
//
//	https://example.com/customers.json
//	https://example.com/customers.json?page=2
//	https://example.com/customers.json?page=3
//
// After each page the walker evaluates the page's pagination metadata with
// HasMore and stops once it reports false.
//
// Example usage:
//
//	paginator, err := pagination.NewPaginator(baseURL)
//	walker := pagination.NewWalker(httpClient, paginator, pagination.DefaultConfig(), logger)
//	pages, err := walker.Walk(ctx, func(ctx context.Context, n int, p *page.Page) error {
//		return process(p)
//	})
//
// The walker is strictly sequential: a page is fully handled before the next
// one is requested, and the first error ends the walk.
package pagination
