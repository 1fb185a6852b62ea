// Package cachemanager provides a small generic caching layer. Its one
// consumer today is the dispatcher's grammar cache, which spares repeat
// invocations the cost of re-deriving a command's flag grammar.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
