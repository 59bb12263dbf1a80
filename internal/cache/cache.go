// Package cache memoizes repeatable query results. Caching is a performance
// optimization only: every implementation degrades to direct execution when
// the backing store misbehaves.
package cache

import (
	"context"
	"strings"
	"time"
)

// TTLs per query class.
const (
	TTLAggregate       = 30 * time.Minute
	TTLListing         = 2 * time.Minute
	TTLPersonalization = 10 * time.Minute
)

// Cache stores serialized query results under derived keys. Get returns
// (nil, false) on a miss; implementations must also report storage failures
// as misses so callers fall through to the store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Key derives a cache key from a query-class prefix and its canonical
// argument parts.
func Key(class string, parts ...string) string {
	if len(parts) == 0 {
		return class
	}
	return class + ":" + strings.Join(parts, ":")
}
