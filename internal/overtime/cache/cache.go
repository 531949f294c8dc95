package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss reports that a key was not present in the cache.
var ErrMiss = errors.New("cache: miss")

// Cache is a small byte-oriented cache used for read-through views like the
// dashboard overview. Implementations must be safe for concurrent use and
// should fail fast; callers treat every error as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
