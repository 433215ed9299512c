package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces every cache key in Redis.
const KeyPrefix = "custval"

// Key identifies a cached page response.
type Key struct {
	// Host is the API host, including port if any.
	Host string

	// Path is the listing path (e.g. "/customers.json").
	Path string

	// Query holds the request's query parameters (e.g. page=2).
	Query url.Values
}

// KeyFromURL builds the cache key for a request URL.
func KeyFromURL(u *url.URL) Key {
	return Key{
		Host:  u.Host,
		Path:  u.Path,
		Query: u.Query(),
	}
}

// String renders a deterministic Redis key.
// Format: custval:host/path:param1=val1:param2=val2
//
// Example:
//
//	custval:example.com/customers.json:page=2
func (k Key) String() string {
	parts := []string{KeyPrefix}

	location := strings.Trim(k.Host+"/"+strings.Trim(k.Path, "/"), "/")
	if location != "" {
		parts = append(parts, location)
	}

	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, strings.Join(k.Query[name], ",")))
		}
	}

	return strings.Join(parts, ":")
}
