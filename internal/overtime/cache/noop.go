package cache

import (
	"context"
	"time"
)

// Noop satisfies Cache without storing anything. Used when no Redis address
// is configured.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrMiss
}

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}
