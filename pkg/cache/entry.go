package cache

import (
	"time"
)

// Entry is a cached page response.
type Entry struct {
	// Body is the raw page document.
	Body []byte `json:"body"`

	// ETag is sent back as If-None-Match on revalidation.
	ETag string `json:"etag,omitempty"`

	// LastModified is sent back as If-Modified-Since when there is no ETag.
	LastModified time.Time `json:"last_modified,omitempty"`

	// ContentType of the original response.
	ContentType string `json:"content_type,omitempty"`

	// Expires is when the entry must be revalidated.
	Expires time.Time `json:"expires"`

	// CachedAt is when the response was stored.
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired reports whether the entry has passed its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time left until expiry, or 0 once expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
